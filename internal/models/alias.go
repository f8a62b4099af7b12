package models

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultAlias is the table entry used when a command names no alias.
const DefaultAlias = "default"

// AliasTable maps model aliases to provider-qualified model identifiers,
// e.g. "claude" -> "anthropic/claude-3.5-sonnet". Keys are lower case.
type AliasTable map[string]string

// Has reports whether the alias is configured with a usable identifier,
// ignoring case.
func (t AliasTable) Has(alias string) bool {
	id, ok := t[strings.ToLower(alias)]
	return ok && id != ""
}

// Resolve returns the model identifier for the alias, ignoring case. A
// missing alias or an empty identifier yields an UnknownModelError carrying
// the configured alias names.
func (t AliasTable) Resolve(alias string) (string, error) {
	id, ok := t[strings.ToLower(alias)]
	if !ok || id == "" {
		return "", &UnknownModelError{Alias: alias, Available: t.Aliases()}
	}
	return id, nil
}

// Aliases returns the configured alias names in sorted order.
func (t AliasTable) Aliases() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnknownModelError reports an alias that resolves to no model identifier.
type UnknownModelError struct {
	Alias     string
	Available []string
}

func (e *UnknownModelError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("model alias %q is not configured and the alias table is empty", e.Alias)
	}
	return fmt.Sprintf("model alias %q is not configured (available: %s)", e.Alias, strings.Join(e.Available, ", "))
}
