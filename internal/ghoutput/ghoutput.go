// Package ghoutput publishes step outputs for GitHub Actions workflows.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Result describes the outcome of a respond run for downstream workflow steps.
type Result struct {
	// Status is one of: skipped, help, unknown-model, answered, error.
	Status string
	// CommentID is the published comment, when one exists.
	CommentID int64
	// Model is the fully qualified model identifier that produced the answer.
	Model string
}

// WriteResult appends the non-empty fields of the result to GITHUB_OUTPUT.
func WriteResult(r Result) error {
	values := map[string]string{
		"status": r.Status,
		"model":  r.Model,
	}
	if r.CommentID > 0 {
		values["comment_id"] = strconv.FormatInt(r.CommentID, 10)
	}
	return Write(values)
}

// Write appends GitHub Actions outputs to the GITHUB_OUTPUT file when available.
func Write(values map[string]string) error {
	path := strings.TrimSpace(os.Getenv("GITHUB_OUTPUT"))
	if path == "" {
		return nil
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		if strings.TrimSpace(k) == "" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o600)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	for _, key := range keys {
		value := sanitize(values[key])
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}

func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
