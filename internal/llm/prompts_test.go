package llm

import (
	"strings"
	"testing"
)

func TestIsValidVariant(t *testing.T) {
	for _, v := range []string{"strict", "standard", "lenient"} {
		if !IsValidVariant(v) {
			t.Errorf("IsValidVariant(%q) = false, want true", v)
		}
	}
	for _, v := range []string{"", "Strict", "harsh"} {
		if IsValidVariant(v) {
			t.Errorf("IsValidVariant(%q) = true, want false", v)
		}
	}
}

func TestSystemPromptVariants(t *testing.T) {
	strict := systemPrompt(PromptStrict)
	if !strings.Contains(strict, "Grade strictly") {
		t.Error("strict prompt should demand strict grading")
	}

	lenient := systemPrompt(PromptLenient)
	if !strings.Contains(lenient, "Grade leniently") {
		t.Error("lenient prompt should allow partial credit")
	}

	standard := systemPrompt(PromptStandard)
	if !strings.Contains(standard, "kind and educational") {
		t.Error("standard prompt should keep the kind-and-educational tone")
	}

	for _, p := range []string{strict, standard, lenient} {
		if !strings.Contains(p, `"score"`) || !strings.Contains(p, `"feedback"`) {
			t.Error("every variant must demand the JSON response shape")
		}
	}
}

func TestGradingPrompt(t *testing.T) {
	p := gradingPrompt("3", "student text", "reference text")
	if !strings.Contains(p, "Question 3") {
		t.Error("prompt should carry the question number")
	}
	if !strings.Contains(p, "student text") {
		t.Error("prompt should contain the student answer")
	}
	if !strings.Contains(p, "reference text") {
		t.Error("prompt should contain the reference answer")
	}
	if strings.Index(p, "reference text") > strings.Index(p, "student text") {
		t.Error("correct answer should precede the student answer")
	}
}
