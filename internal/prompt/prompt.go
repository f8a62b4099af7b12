// Package prompt resolves the system prompt through an ordered source chain.
package prompt

import (
	_ "embed"
	"os"
	"strings"

	"github.com/threadsage/threadsage/internal/config"
	"github.com/threadsage/threadsage/internal/logging"
)

// DefaultPromptFile is the in-repo prompt consulted when no explicit
// prompt file is configured.
const DefaultPromptFile = ".github/threadsage/system-prompt.md"

//go:embed system_prompt.md
var fallbackPrompt string

// Resolve walks the source chain and returns the first prompt it finds
// together with the name of the source that produced it: the configured
// override file, then the in-repo default file, then the inline
// environment value, then the embedded fallback.
func Resolve(cfg *config.Config) (text string, source string) {
	sources := []struct {
		name string
		load func() (string, bool)
	}{
		{"override file", func() (string, bool) { return readPromptFile(cfg.Prompt.OverridePath, true) }},
		{"repository file", func() (string, bool) { return readPromptFile(DefaultPromptFile, false) }},
		{"environment", func() (string, bool) {
			s := strings.TrimSpace(cfg.Prompt.Inline)
			return s, s != ""
		}},
	}

	for _, src := range sources {
		if text, ok := src.load(); ok {
			logging.Debug("System prompt resolved", "source", src.name, "length", len(text))
			return text, src.name
		}
	}

	return strings.TrimSpace(fallbackPrompt), "built-in"
}

// readPromptFile loads a prompt file. An unreadable path is a gap to fall
// through, not a fatal error; it is only worth a warning when the operator
// named the path explicitly or the file exists but cannot be read.
func readPromptFile(path string, explicit bool) (string, bool) {
	if path == "" {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			logging.Warn("Skipping unreadable system prompt file", "path", path, "error", err)
		}
		return "", false
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		logging.Warn("Skipping empty system prompt file", "path", path)
		return "", false
	}
	return text, true
}
