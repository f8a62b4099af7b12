package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeModelsFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write models file: %v", err)
	}
	return path
}

func setRunEnv(t *testing.T, modelsFile string) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_REPOSITORY", "testowner/testrepo")
	t.Setenv("THREADSAGE_ISSUE_NUMBER", "12")
	t.Setenv("THREADSAGE_COMMENT_BODY", "/ai what is this repo for?")
	t.Setenv("THREADSAGE_COMMENT_AUTHOR", "alice")
	t.Setenv("THREADSAGE_MODELS_FILE", modelsFile)
}

func TestLoad(t *testing.T) {
	modelsFile := writeModelsFile(t, "models.json",
		`{"default": "openai/gpt-4o", "Claude": "anthropic/claude-3.5-sonnet"}`)
	setRunEnv(t, modelsFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Event.Owner != "testowner" || cfg.Event.Repo != "testrepo" {
		t.Errorf("repository = %s/%s, want testowner/testrepo", cfg.Event.Owner, cfg.Event.Repo)
	}
	if cfg.Event.IssueNumber != 12 {
		t.Errorf("IssueNumber = %d, want 12", cfg.Event.IssueNumber)
	}
	if cfg.Event.CommentAuthor != "alice" {
		t.Errorf("CommentAuthor = %q, want alice", cfg.Event.CommentAuthor)
	}
	if cfg.Event.ProcessingCommentID != 0 {
		t.Errorf("ProcessingCommentID = %d, want 0 when unset", cfg.Event.ProcessingCommentID)
	}
	if cfg.Trigger != "/ai" {
		t.Errorf("Trigger = %q, want default /ai", cfg.Trigger)
	}
	if cfg.LLM.Provider != "openrouter" {
		t.Errorf("Provider = %q, want default openrouter", cfg.LLM.Provider)
	}
	if cfg.LLM.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("BaseURL = %q, want the OpenRouter default", cfg.LLM.BaseURL)
	}
	if got := cfg.Models["claude"]; got != "anthropic/claude-3.5-sonnet" {
		t.Errorf("Models[claude] = %q, want the alias key lowercased", got)
	}
	if got := cfg.Models["default"]; got != "openai/gpt-4o" {
		t.Errorf("Models[default] = %q, want openai/gpt-4o", got)
	}
}

func TestLoadProcessingCommentID(t *testing.T) {
	modelsFile := writeModelsFile(t, "models.json", `{"default": "openai/gpt-4o"}`)

	t.Run("set", func(t *testing.T) {
		setRunEnv(t, modelsFile)
		t.Setenv("THREADSAGE_PROCESSING_COMMENT_ID", "987654")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Event.ProcessingCommentID != 987654 {
			t.Errorf("ProcessingCommentID = %d, want 987654", cfg.Event.ProcessingCommentID)
		}
	})

	t.Run("empty expression value", func(t *testing.T) {
		setRunEnv(t, modelsFile)
		t.Setenv("THREADSAGE_PROCESSING_COMMENT_ID", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Event.ProcessingCommentID != 0 {
			t.Errorf("ProcessingCommentID = %d, want 0 for an empty value", cfg.Event.ProcessingCommentID)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		setRunEnv(t, modelsFile)
		t.Setenv("THREADSAGE_PROCESSING_COMMENT_ID", "not-a-number")

		if _, err := Load(); err == nil {
			t.Fatal("Load() should reject a non-numeric comment id")
		}
	})
}

func TestLoadMissingRequired(t *testing.T) {
	modelsFile := writeModelsFile(t, "models.json", `{"default": "openai/gpt-4o"}`)

	tests := []struct {
		name    string
		mutate  func(t *testing.T)
		wantSub string
	}{
		{
			name:    "missing token",
			mutate:  func(t *testing.T) { t.Setenv("GITHUB_TOKEN", "") },
			wantSub: "GITHUB_TOKEN",
		},
		{
			name:    "missing repository",
			mutate:  func(t *testing.T) { t.Setenv("GITHUB_REPOSITORY", "") },
			wantSub: "GITHUB_REPOSITORY",
		},
		{
			name:    "malformed repository",
			mutate:  func(t *testing.T) { t.Setenv("GITHUB_REPOSITORY", "justowner") },
			wantSub: "GITHUB_REPOSITORY",
		},
		{
			name:    "zero issue number",
			mutate:  func(t *testing.T) { t.Setenv("THREADSAGE_ISSUE_NUMBER", "0") },
			wantSub: "THREADSAGE_ISSUE_NUMBER",
		},
		{
			name:    "non-numeric issue number",
			mutate:  func(t *testing.T) { t.Setenv("THREADSAGE_ISSUE_NUMBER", "twelve") },
			wantSub: "THREADSAGE_ISSUE_NUMBER",
		},
		{
			name:    "missing comment body",
			mutate:  func(t *testing.T) { t.Setenv("THREADSAGE_COMMENT_BODY", "") },
			wantSub: "THREADSAGE_COMMENT_BODY",
		},
		{
			name:    "missing comment author",
			mutate:  func(t *testing.T) { t.Setenv("THREADSAGE_COMMENT_AUTHOR", "") },
			wantSub: "THREADSAGE_COMMENT_AUTHOR",
		},
		{
			name:    "missing models file",
			mutate:  func(t *testing.T) { t.Setenv("THREADSAGE_MODELS_FILE", "/nonexistent/models.json") },
			wantSub: "model alias table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRunEnv(t, modelsFile)
			tt.mutate(t)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadAliasTable(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeModelsFile(t, "models.json", `{"default": "openai/gpt-4o", "GPT4": " openai/gpt-4o "}`)

		table, err := LoadAliasTable(path)
		if err != nil {
			t.Fatalf("LoadAliasTable() error = %v", err)
		}
		if got := table["gpt4"]; got != "openai/gpt-4o" {
			t.Errorf("table[gpt4] = %q, want key lowercased and value trimmed", got)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeModelsFile(t, "models.yaml", "default: openai/gpt-4o\nclaude: anthropic/claude-3.5-sonnet\n")

		table, err := LoadAliasTable(path)
		if err != nil {
			t.Fatalf("LoadAliasTable() error = %v", err)
		}
		if got := table["claude"]; got != "anthropic/claude-3.5-sonnet" {
			t.Errorf("table[claude] = %q", got)
		}
	})

	t.Run("undecodable", func(t *testing.T) {
		path := writeModelsFile(t, "models.json", `{"default": ["not", "a", "string"]}`)

		if _, err := LoadAliasTable(path); err == nil {
			t.Fatal("LoadAliasTable() should reject non-string identifiers")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadAliasTable(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Fatal("LoadAliasTable() should fail on a missing file")
		}
	})
}

func TestWriteAliasTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".github", "threadsage", "models.json")
	table := map[string]string{"default": "openai/gpt-4o", "claude": "anthropic/claude-3.5-sonnet"}

	if err := WriteAliasTable(path, table); err != nil {
		t.Fatalf("WriteAliasTable() error = %v", err)
	}

	loaded, err := LoadAliasTable(path)
	if err != nil {
		t.Fatalf("LoadAliasTable() after write error = %v", err)
	}
	if loaded["claude"] != table["claude"] || loaded["default"] != table["default"] {
		t.Errorf("loaded table %v does not match written table %v", loaded, table)
	}
}
