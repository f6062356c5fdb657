package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestAnswersQPattern(t *testing.T) {
	m, err := Answers("Q1: cats\nQ2: dogs\nQ3: birds")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	wantKeys := []string{"1", "2", "3"}
	if !reflect.DeepEqual(m.Keys(), wantKeys) {
		t.Errorf("keys = %v, want %v", m.Keys(), wantKeys)
	}
	for id, want := range map[string]string{"1": "cats", "2": "dogs", "3": "birds"} {
		got, ok := m.Get(id)
		if !ok || got != want {
			t.Errorf("Get(%q) = %q, %v; want %q", id, got, ok, want)
		}
	}
}

func TestAnswersQuestionPattern(t *testing.T) {
	m, err := Answers("Question 1: alpha\nQuestion 2: beta")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if got, _ := m.Get("1"); got != "alpha" {
		t.Errorf("Get(1) = %q, want 'alpha'", got)
	}
	if got, _ := m.Get("2"); got != "beta" {
		t.Errorf("Get(2) = %q, want 'beta'", got)
	}
}

func TestAnswersNumberedPattern(t *testing.T) {
	m, err := Answers("1. alpha\n2. beta")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	wantKeys := []string{"1", "2"}
	if !reflect.DeepEqual(m.Keys(), wantKeys) {
		t.Errorf("keys = %v, want %v", m.Keys(), wantKeys)
	}
	if got, _ := m.Get("1"); got != "alpha" {
		t.Errorf("Get(1) = %q, want 'alpha'", got)
	}
}

func TestAnswersCaseInsensitive(t *testing.T) {
	m, err := Answers("q1: lower\nQ2: upper")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if got, _ := m.Get("1"); got != "lower" {
		t.Errorf("Get(1) = %q, want 'lower'", got)
	}
}

func TestAnswersFirstPatternWins(t *testing.T) {
	// Both Q-headings and numbered headings are present; only the first
	// successful pattern contributes entries.
	m, err := Answers("Q1: from q pattern\n5. from numbered pattern")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d (%v)", m.Len(), m.Keys())
	}
	if got, _ := m.Get("1"); got != "from q pattern\n5. from numbered pattern" {
		t.Errorf("Get(1) = %q", got)
	}
}

func TestAnswersBodyStopsAtNextHeading(t *testing.T) {
	m, err := Answers("Q1: first answer\nwith a second line\nQ2: second answer")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if got, _ := m.Get("1"); got != "first answer\nwith a second line" {
		t.Errorf("Get(1) = %q", got)
	}
	if got, _ := m.Get("2"); got != "second answer" {
		t.Errorf("Get(2) = %q", got)
	}
}

func TestAnswersIgnoresPreamble(t *testing.T) {
	// Text before the first heading must not become a spurious entry.
	m, err := Answers("Student name: Alice\n\nQ1: cats")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d (%v)", m.Len(), m.Keys())
	}
}

func TestAnswersWhitespaceBodyKept(t *testing.T) {
	m, err := Answers("Q1:   \nQ2: dogs")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	got, ok := m.Get("1")
	if !ok {
		t.Fatal("entry for whitespace-only body was dropped")
	}
	if got != "" {
		t.Errorf("Get(1) = %q, want empty string", got)
	}
}

func TestAnswersDuplicateLastWins(t *testing.T) {
	m, err := Answers("Q1: first\nQ2: middle\nQ1: second")
	if err != nil {
		t.Fatalf("Answers: %v", err)
	}
	if got, _ := m.Get("1"); got != "second" {
		t.Errorf("Get(1) = %q, want 'second'", got)
	}
	wantKeys := []string{"1", "2"}
	if !reflect.DeepEqual(m.Keys(), wantKeys) {
		t.Errorf("keys = %v, want %v", m.Keys(), wantKeys)
	}
}

func TestAnswersErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrEmptyDocument},
		{"whitespace only", "  \n\t ", ErrEmptyDocument},
		{"no headings", "just some unstructured prose", ErrNoQuestions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Answers(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Answers(%q) error = %v, want %v", tt.in, err, tt.want)
			}
		})
	}
}
