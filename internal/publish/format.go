package publish

import (
	"fmt"
	"strings"

	"github.com/threadsage/threadsage/internal/models"
)

// FormatAnswer renders a generated answer: a mention of the asking user,
// the answer text, and the hidden marker later runs classify by.
func FormatAnswer(author, answer, model string) string {
	return fmt.Sprintf("@%s\n\n%s\n\n%s", author, strings.TrimSpace(answer), models.AnswerMarker(model))
}

// FormatUsageHelp explains the command shape after a trigger arrived with
// no prompt. Help comments carry no marker; later runs classify them as
// plain comments.
func FormatUsageHelp(author, trigger string, aliases []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s\n\n", author)
	b.WriteString("It looks like your command has no question in it.\n\n")
	fmt.Fprintf(&b, "Usage: `%s [model] <your question>`\n\n", trigger)
	b.WriteString(formatAliasList(aliases))
	return b.String()
}

// FormatUnknownModel reports an alias with no usable table entry.
func FormatUnknownModel(author, alias string, aliases []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@%s\n\n", author)
	if alias == models.DefaultAlias {
		b.WriteString("This repository's model table has no usable `default` entry, so I cannot pick a model for you.\n\n")
	} else {
		fmt.Fprintf(&b, "The model alias `%s` is not configured for this repository.\n\n", alias)
	}
	b.WriteString(formatAliasList(aliases))
	return b.String()
}

// FormatGenerationFailure reports a backend failure in a caution alert,
// quoting the backend's own message.
func FormatGenerationFailure(author, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "unknown error"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s\n\n", author)
	b.WriteString("> [!CAUTION]\n")
	b.WriteString("> The model backend reported an error while generating a response:\n")
	b.WriteString(">\n")
	for _, line := range strings.Split(message, "\n") {
		b.WriteString("> " + line + "\n")
	}
	return b.String()
}

// FormatGenericFailure is the last-resort notice for unexpected failures.
func FormatGenericFailure(author string) string {
	return fmt.Sprintf("@%s\n\nSomething went wrong while preparing a response. The workflow run's logs have the details; please try again.", author)
}

func formatAliasList(aliases []string) string {
	if len(aliases) == 0 {
		return "No model aliases are configured. Add a `default` entry to the model table to get started."
	}

	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = "`" + a + "`"
	}
	return "Available model aliases: " + strings.Join(quoted, ", ")
}
