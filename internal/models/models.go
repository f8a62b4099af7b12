package models

import (
	"time"
)

// TriggerEvent carries everything the pipeline knows about the comment that
// started the run. ProcessingCommentID is optional; when set it names a
// placeholder comment the publisher edits in place instead of creating a
// new one.
type TriggerEvent struct {
	Owner               string
	Repo                string
	IssueNumber         int
	CommentBody         string
	CommentAuthor       string
	ProcessingCommentID int64
}

// Issue represents a GitHub issue with the data the responder needs
type Issue struct {
	Owner     string
	Repo      string
	Number    int
	Title     string
	Body      string
	User      string
	State     string
	CreatedAt time.Time
	URL       string
}

// IssueComment represents a comment on a GitHub issue
type IssueComment struct {
	ID        int64
	User      string
	Body      string
	CreatedAt time.Time
}

// Role classifies a conversation entry. Classification happens in the
// thread package only; everything else treats the role as opaque.
type Role string

const (
	RolePlainComment      Role = "plain_comment"
	RoleUserPrompt        Role = "user_prompt"
	RoleAssistantResponse Role = "assistant_response"
)

// ConversationEntry is one classified comment in an issue's history.
type ConversationEntry struct {
	Role      Role
	Author    string
	CreatedAt time.Time
	Content   string
}

// IssueContext is the rebuilt conversation handed to the response generator.
type IssueContext struct {
	Owner   string
	Repo    string
	Number  int
	Title   string
	Body    string
	History []ConversationEntry
}

// ParsedCommand is the outcome of parsing a triggering comment: the alias
// the author named (or "default"), the model identifier it resolved to, and
// the prompt text. Prompt is never empty once parsing succeeds.
type ParsedCommand struct {
	Alias  string
	Model  string
	Prompt string
}
