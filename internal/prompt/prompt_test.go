package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/threadsage/threadsage/internal/config"
)

func TestResolveChain(t *testing.T) {
	t.Run("override file wins", func(t *testing.T) {
		t.Chdir(t.TempDir())
		path := filepath.Join(t.TempDir(), "prompt.md")
		if err := os.WriteFile(path, []byte("Custom instructions.\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg := &config.Config{}
		cfg.Prompt.OverridePath = path
		cfg.Prompt.Inline = "inline instructions"

		text, source := Resolve(cfg)
		if text != "Custom instructions." {
			t.Errorf("text = %q", text)
		}
		if source != "override file" {
			t.Errorf("source = %q, want override file", source)
		}
	})

	t.Run("repository file when no override", func(t *testing.T) {
		t.Chdir(t.TempDir())
		if err := os.MkdirAll(filepath.Dir(DefaultPromptFile), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(DefaultPromptFile, []byte("Repo instructions.\n"), 0644); err != nil {
			t.Fatal(err)
		}

		text, source := Resolve(&config.Config{})
		if text != "Repo instructions." {
			t.Errorf("text = %q", text)
		}
		if source != "repository file" {
			t.Errorf("source = %q, want repository file", source)
		}
	})

	t.Run("inline environment value", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg := &config.Config{}
		cfg.Prompt.Inline = "Answer in haiku."

		text, source := Resolve(cfg)
		if text != "Answer in haiku." {
			t.Errorf("text = %q", text)
		}
		if source != "environment" {
			t.Errorf("source = %q, want environment", source)
		}
	})

	t.Run("embedded fallback", func(t *testing.T) {
		t.Chdir(t.TempDir())

		text, source := Resolve(&config.Config{})
		if text == "" {
			t.Error("embedded fallback prompt should never be empty")
		}
		if source != "built-in" {
			t.Errorf("source = %q, want built-in", source)
		}
	})

	t.Run("unreadable override falls through", func(t *testing.T) {
		t.Chdir(t.TempDir())

		cfg := &config.Config{}
		cfg.Prompt.OverridePath = filepath.Join(t.TempDir(), "missing.md")
		cfg.Prompt.Inline = "Fallback inline."

		text, source := Resolve(cfg)
		if text != "Fallback inline." {
			t.Errorf("text = %q", text)
		}
		if source != "environment" {
			t.Errorf("source = %q, want environment", source)
		}
	})
}
