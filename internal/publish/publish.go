// Package publish formats and delivers the bot's issue comments.
package publish

import (
	"context"
	"fmt"

	"github.com/threadsage/threadsage/internal/logging"
	"github.com/threadsage/threadsage/internal/models"
)

// CommentStore is the slice of the GitHub client the publisher needs.
type CommentStore interface {
	CreateComment(ctx context.Context, owner, repo string, number int, body string) (*models.IssueComment, error)
	UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) (*models.IssueComment, error)
}

// Publisher posts comment bodies, preferring to edit the placeholder
// comment the triggering workflow may have created.
type Publisher struct {
	store CommentStore
}

// NewPublisher creates a publisher over the given store.
func NewPublisher(store CommentStore) *Publisher {
	return &Publisher{store: store}
}

// Publish delivers a body to the event's issue. When the event carries a
// processing-comment id the comment is updated in place; an update failure
// is recovered by creating a fresh comment so the body is never lost. It
// returns the id of the comment that finally holds the body.
func (p *Publisher) Publish(ctx context.Context, ev *models.TriggerEvent, body string) (int64, error) {
	if ev.ProcessingCommentID > 0 {
		updated, err := p.store.UpdateComment(ctx, ev.Owner, ev.Repo, ev.ProcessingCommentID, body)
		if err == nil {
			logging.Info("Updated processing comment", "comment_id", updated.ID)
			return updated.ID, nil
		}
		logging.Warn("Failed to update processing comment, creating a new one",
			"comment_id", ev.ProcessingCommentID,
			"error", err)
	}

	created, err := p.store.CreateComment(ctx, ev.Owner, ev.Repo, ev.IssueNumber, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create comment on issue #%d: %w", ev.IssueNumber, err)
	}

	logging.Info("Created comment", "comment_id", created.ID, "issue", ev.IssueNumber)
	return created.ID, nil
}
