// Package thread rebuilds issue conversations for the response generator.
package thread

import (
	"context"
	"fmt"
	"strings"

	"github.com/threadsage/threadsage/internal/command"
	"github.com/threadsage/threadsage/internal/logging"
	"github.com/threadsage/threadsage/internal/models"
)

// IssueReader is the slice of the GitHub client the builder needs.
type IssueReader interface {
	GetIssue(ctx context.Context, owner, repo string, number int) (*models.Issue, error)
	ListComments(ctx context.Context, owner, repo string, number int) ([]*models.IssueComment, error)
}

// Builder assembles an IssueContext from the live issue thread.
type Builder struct {
	reader  IssueReader
	trigger string
}

// NewBuilder creates a context builder reading through the given reader.
func NewBuilder(reader IssueReader, trigger string) *Builder {
	return &Builder{reader: reader, trigger: trigger}
}

// Build fetches the issue and its comments and classifies every comment
// into the conversation history, oldest first.
func (b *Builder) Build(ctx context.Context, owner, repo string, number int) (*models.IssueContext, error) {
	issue, err := b.reader.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}

	comments, err := b.reader.ListComments(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments for issue #%d: %w", number, err)
	}

	ic := &models.IssueContext{
		Owner:   owner,
		Repo:    repo,
		Number:  number,
		Title:   issue.Title,
		Body:    issue.Body,
		History: make([]models.ConversationEntry, 0, len(comments)),
	}
	for _, comment := range comments {
		ic.History = append(ic.History, b.Classify(comment))
	}

	logging.Info("Issue context built",
		"issue", number,
		"title", issue.Title,
		"entries", len(ic.History))

	return ic, nil
}

// Classify maps one comment onto its conversation role. This is the only
// place classification happens: a comment starting with the trigger is a
// user prompt, a comment carrying the answer marker is an assistant
// response, everything else is a plain comment.
func (b *Builder) Classify(comment *models.IssueComment) models.ConversationEntry {
	entry := models.ConversationEntry{
		Author:    comment.User,
		CreatedAt: comment.CreatedAt,
	}

	switch {
	case command.HasTrigger(comment.Body, b.trigger):
		entry.Role = models.RoleUserPrompt
		entry.Content = command.StripTrigger(comment.Body, b.trigger)
	case models.HasAnswerMarker(comment.Body):
		entry.Role = models.RoleAssistantResponse
		entry.Content = stripMention(models.StripAnswerMarker(comment.Body))
	default:
		entry.Role = models.RolePlainComment
		entry.Content = comment.Body
	}

	return entry
}

// stripMention drops the leading "@user" line a published answer opens with.
func stripMention(body string) string {
	first, rest, found := strings.Cut(body, "\n")
	if found && strings.HasPrefix(strings.TrimSpace(first), "@") {
		return strings.TrimSpace(rest)
	}
	return body
}

// Serialize renders the context as a plain-text transcript for the model.
// Identical input data yields byte-identical output.
func Serialize(ic *models.IssueContext) string {
	var transcript strings.Builder

	transcript.WriteString(fmt.Sprintf("ISSUE #%d: %s\n\n", ic.Number, ic.Title))
	transcript.WriteString("ISSUE DESCRIPTION:\n")
	transcript.WriteString(ic.Body)
	transcript.WriteString("\n\n")

	if len(ic.History) > 0 {
		transcript.WriteString("CONVERSATION:\n\n")
		for _, entry := range ic.History {
			transcript.WriteString(fmt.Sprintf("--- [%s] %s (%s) ---\n",
				entry.Role,
				entry.Author,
				entry.CreatedAt.UTC().Format("2006-01-02 15:04")))
			transcript.WriteString(entry.Content)
			transcript.WriteString("\n\n")
		}
	}

	return transcript.String()
}
