// Package extract parses loosely structured documents into an ordered
// mapping of question identifiers to answer text.
package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/pavelanni/grader/internal/model"
)

var (
	// ErrEmptyDocument means the source text contained nothing to parse.
	ErrEmptyDocument = errors.New("document contains no text")
	// ErrNoQuestions means no question heading pattern matched.
	ErrNoQuestions = errors.New("no question-formatted content found")
)

// Heading conventions, tried in order; the first pattern that yields at
// least one entry wins and later patterns are not consulted. Each pattern
// captures the question identifier; the answer body runs from the end of
// the heading to the start of the next heading (or end of text).
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bQ(\d+)\s*:`),
	regexp.MustCompile(`(?i)\bQuestion\s+(\d+)\s*:`),
	regexp.MustCompile(`(?m)^\s*(\d+)\.`),
}

// Answers parses raw document text into an AnswerMap. The text is expected
// to be already decoded from its source format by the caller.
func Answers(raw string) (*model.AnswerMap, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyDocument
	}
	for _, re := range patterns {
		if m := scan(re, raw); m.Len() > 0 {
			return m, nil
		}
	}
	return nil, ErrNoQuestions
}

// scan applies one heading pattern. Bodies are sliced between consecutive
// heading matches, so a heading never bleeds into the previous answer and
// text before the first heading never becomes a spurious entry. Duplicate
// identifiers keep their first position with the last value winning.
func scan(re *regexp.Regexp, text string) *model.AnswerMap {
	out := model.NewAnswerMap()
	locs := re.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range locs {
		id := strings.TrimSpace(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])
		out.Set(id, body)
	}
	return out
}
