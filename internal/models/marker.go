package models

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// answerMarkerPrefix identifies published answers. Detection keys on this
// prefix alone, so attribute contents never affect classification.
const answerMarkerPrefix = "<!-- threadsage:answer"

var answerMarkerRe = regexp.MustCompile(`(?s)<!--\s*threadsage:answer.*?-->`)

// AnswerMarker returns the hidden HTML comment appended to every generated
// answer, tagged with the model that produced it and a fresh id.
func AnswerMarker(model string) string {
	return fmt.Sprintf("%s model=%q id=%q -->", answerMarkerPrefix, model, uuid.NewString())
}

// HasAnswerMarker reports whether the comment body carries an answer marker.
func HasAnswerMarker(body string) bool {
	return strings.Contains(body, answerMarkerPrefix)
}

// StripAnswerMarker removes every answer marker from the body and trims
// surrounding whitespace.
func StripAnswerMarker(body string) string {
	return strings.TrimSpace(answerMarkerRe.ReplaceAllString(body, ""))
}
