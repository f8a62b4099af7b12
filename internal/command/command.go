// Package command parses triggering comment bodies into model commands.
package command

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/threadsage/threadsage/internal/models"
)

var (
	// ErrNoTrigger means the comment does not address the bot at all.
	ErrNoTrigger = errors.New("comment does not start with the trigger marker")
	// ErrEmptyPrompt means the bot was addressed with nothing to answer.
	ErrEmptyPrompt = errors.New("command contains no prompt text")
)

// HasTrigger reports whether the comment addresses the bot: after trimming
// surrounding whitespace the body must be exactly the trigger or start with
// the trigger followed by whitespace. A trigger mentioned mid-sentence does
// not fire, and neither does a longer word sharing the trigger as a prefix.
func HasTrigger(body, trigger string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == trigger {
		return true
	}
	if !strings.HasPrefix(trimmed, trigger) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(trimmed[len(trigger):])
	return unicode.IsSpace(r)
}

// StripTrigger removes the leading trigger marker and returns the trimmed
// remainder. Bodies without the trigger come back unchanged; callers are
// expected to check HasTrigger first.
func StripTrigger(body, trigger string) string {
	if !HasTrigger(body, trigger) {
		return body
	}
	trimmed := strings.TrimSpace(body)
	return strings.TrimSpace(trimmed[len(trigger):])
}

// Parse turns a triggering comment body into a ParsedCommand. The first
// token after the trigger is consumed as the model alias only when it names
// a configured alias and prompt text follows it; any other first token is
// prompt text under the default alias, never an error. The Model field is
// left for the resolver to fill.
func Parse(body, trigger string, table models.AliasTable) (*models.ParsedCommand, error) {
	if !HasTrigger(body, trigger) {
		return nil, ErrNoTrigger
	}

	rest := StripTrigger(body, trigger)
	if rest == "" {
		return nil, ErrEmptyPrompt
	}

	first, remainder := splitFirstToken(rest)
	if table.Has(first) {
		if remainder == "" {
			return nil, ErrEmptyPrompt
		}
		return &models.ParsedCommand{Alias: strings.ToLower(first), Prompt: remainder}, nil
	}

	return &models.ParsedCommand{Alias: models.DefaultAlias, Prompt: rest}, nil
}

// splitFirstToken cuts the leading whitespace-delimited token off an
// already-trimmed string.
func splitFirstToken(s string) (string, string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}
