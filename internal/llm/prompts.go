package llm

import (
	"fmt"
	"strings"
)

// PromptVariant represents a grading prompt variant.
type PromptVariant string

const (
	// PromptStrict is a strict grading variant for majors.
	PromptStrict PromptVariant = "strict"
	// PromptStandard is the default grading variant.
	PromptStandard PromptVariant = "standard"
	// PromptLenient is a lenient grading variant for electives.
	PromptLenient PromptVariant = "lenient"
)

var validVariants = map[PromptVariant]bool{
	PromptStrict:   true,
	PromptStandard: true,
	PromptLenient:  true,
}

// IsValidVariant checks if a prompt variant name is valid.
func IsValidVariant(v string) bool {
	return validVariants[PromptVariant(v)]
}

func systemPrompt(variant PromptVariant) string {
	var sb strings.Builder
	sb.WriteString("You are a teacher grading free-text exam answers against an answer key.\n")
	switch variant {
	case PromptStrict:
		sb.WriteString("Grade strictly: award full credit only for complete, precise answers.\n")
	case PromptLenient:
		sb.WriteString("Grade leniently: give credit for partially correct answers and reward effort.\n")
	default:
		sb.WriteString("Be kind and educational, but grade accurately.\n")
	}
	sb.WriteString("Respond ONLY with a JSON object:\n")
	sb.WriteString(`{"score": <number 0 to 10>, "feedback": "<why you gave that score>"}`)
	sb.WriteString("\n")
	return sb.String()
}

func gradingPrompt(questionID, student, reference string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Grade the following student answer to Question %s.\n\n", questionID))
	sb.WriteString("Correct Answer:\n" + reference + "\n\n")
	sb.WriteString("Student's Answer:\n" + student + "\n\n")
	sb.WriteString("Give the student a score out of 10, and explain why you gave that score.\n")
	return sb.String()
}
