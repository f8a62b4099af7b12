package command

import (
	"errors"
	"testing"

	"github.com/threadsage/threadsage/internal/models"
)

func TestHasTrigger(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "bare trigger", body: "/ai", want: true},
		{name: "trigger with prompt", body: "/ai what is this repo for?", want: true},
		{name: "leading whitespace", body: "  \n/ai hello", want: true},
		{name: "newline after trigger", body: "/ai\nexplain this", want: true},
		{name: "longer word sharing the prefix", body: "/aid hello", want: false},
		{name: "mid sentence", body: "you can ask /ai for help", want: false},
		{name: "plain comment", body: "looks good to me", want: false},
		{name: "empty body", body: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasTrigger(tt.body, "/ai"); got != tt.want {
				t.Errorf("HasTrigger(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	table := models.AliasTable{
		"default": "openai/gpt-4o",
		"claude":  "anthropic/claude-3.5-sonnet",
	}

	tests := []struct {
		name       string
		body       string
		wantAlias  string
		wantPrompt string
		wantErr    error
	}{
		{
			name:       "prompt under default",
			body:       "/ai what is this repo for?",
			wantAlias:  "default",
			wantPrompt: "what is this repo for?",
		},
		{
			name:       "named alias",
			body:       "/ai claude explain this error",
			wantAlias:  "claude",
			wantPrompt: "explain this error",
		},
		{
			name:       "alias matching ignores case",
			body:       "/ai Claude explain this error",
			wantAlias:  "claude",
			wantPrompt: "explain this error",
		},
		{
			name:       "unknown first token is prompt text",
			body:       "/ai gemini explain this error",
			wantAlias:  "default",
			wantPrompt: "gemini explain this error",
		},
		{
			name:       "multiline prompt keeps internal formatting",
			body:       "/ai claude explain\nthis stack trace",
			wantAlias:  "claude",
			wantPrompt: "explain\nthis stack trace",
		},
		{name: "bare trigger", body: "/ai", wantErr: ErrEmptyPrompt},
		{name: "trigger with only whitespace", body: "/ai   \n", wantErr: ErrEmptyPrompt},
		{name: "alias with no prompt", body: "/ai claude", wantErr: ErrEmptyPrompt},
		{name: "no trigger", body: "what is this?", wantErr: ErrNoTrigger},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Parse(tt.body, "/ai", table)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.body, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.body, err)
			}
			if cmd.Alias != tt.wantAlias {
				t.Errorf("Alias = %q, want %q", cmd.Alias, tt.wantAlias)
			}
			if cmd.Prompt != tt.wantPrompt {
				t.Errorf("Prompt = %q, want %q", cmd.Prompt, tt.wantPrompt)
			}
		})
	}
}

func TestParseCustomTrigger(t *testing.T) {
	table := models.AliasTable{"default": "openai/gpt-4o"}

	cmd, err := Parse("/bot summarize the thread", "/bot", table)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cmd.Prompt != "summarize the thread" {
		t.Errorf("Prompt = %q, want %q", cmd.Prompt, "summarize the thread")
	}
	if HasTrigger("/bot summarize the thread", "/ai") {
		t.Error("the default trigger should not match a /bot command")
	}
}

func TestParseUnknownAliasWithoutDefault(t *testing.T) {
	// The parser never rejects an unknown token; resolution is where a
	// missing default surfaces.
	table := models.AliasTable{"claude": "anthropic/claude-3.5-sonnet"}

	cmd, err := Parse("/ai gemini explain this", "/ai", table)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cmd.Alias != models.DefaultAlias {
		t.Fatalf("Alias = %q, want %q", cmd.Alias, models.DefaultAlias)
	}

	var unknownErr *models.UnknownModelError
	if _, err := table.Resolve(cmd.Alias); !errors.As(err, &unknownErr) {
		t.Fatalf("Resolve(default) error = %v, want *models.UnknownModelError", err)
	}
}
