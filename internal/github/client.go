// Package github wraps the GitHub REST API for issue reading and comment
// publishing.
package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v45/github"
	"golang.org/x/oauth2"

	"github.com/threadsage/threadsage/internal/logging"
	"github.com/threadsage/threadsage/internal/models"
)

// Client handles GitHub API interactions
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub client
func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

// GetIssue fetches one issue
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*models.Issue, error) {
	issue, _, err := c.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}

	result := &models.Issue{
		Owner:     owner,
		Repo:      repo,
		Number:    number,
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		User:      issue.GetUser().GetLogin(),
		State:     issue.GetState(),
		CreatedAt: issue.GetCreatedAt(),
		URL:       issue.GetHTMLURL(),
	}

	logging.Debug("Fetched issue", "issue", number, "title", result.Title)
	return result, nil
}

// ListComments returns every comment on the issue, oldest first
func (c *Client) ListComments(ctx context.Context, owner, repo string, number int) ([]*models.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		Sort:      github.String("created"),
		Direction: github.String("asc"),
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var allComments []*models.IssueComment
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for issue #%d: %w", number, err)
		}

		for _, comment := range comments {
			allComments = append(allComments, convertComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("Listed issue comments", "issue", number, "count", len(allComments))
	return allComments, nil
}

// CreateComment posts a new comment on the issue
func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, body string) (*models.IssueComment, error) {
	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue comment: %w", err)
	}

	return convertComment(comment), nil
}

// UpdateComment replaces the body of an existing comment
func (c *Client) UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) (*models.IssueComment, error) {
	comment, _, err := c.client.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}

	return convertComment(comment), nil
}

func convertComment(comment *github.IssueComment) *models.IssueComment {
	return &models.IssueComment{
		ID:        comment.GetID(),
		User:      comment.GetUser().GetLogin(),
		Body:      comment.GetBody(),
		CreatedAt: comment.GetCreatedAt(),
	}
}
