package grader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pavelanni/grader/internal/extract"
	"github.com/pavelanni/grader/internal/i18n"
	"github.com/pavelanni/grader/internal/model"
)

// ProgressFunc is called after each question is graded.
type ProgressFunc func(done, total int, questionID string)

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithProgress installs a per-question progress callback.
func WithProgress(fn ProgressFunc) RunnerOption {
	return func(r *Runner) { r.progress = fn }
}

// Runner extracts both documents and grades every student question in
// insertion order. Maps are rebuilt from scratch on every run; the runner
// keeps no state between runs.
type Runner struct {
	strategy Strategy
	progress ProgressFunc
}

// NewRunner creates a Runner for the given strategy.
func NewRunner(strategy Strategy, opts ...RunnerOption) *Runner {
	r := &Runner{strategy: strategy}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run grades a student submission against an answer key, both given as
// already-decoded raw text. A student document that yields no questions is
// a terminal error; an answer key that yields none is not — every student
// question is then graded against the NoAnswerKey sentinel. Per-question
// strategy failures become failure results and the run continues.
func (r *Runner) Run(ctx context.Context, studentText, keyText string) ([]model.Result, model.Summary, error) {
	studentMap, err := extract.Answers(studentText)
	if err != nil {
		return nil, model.Summary{}, fmt.Errorf("extract student answers: %w", err)
	}

	keyMap, err := extract.Answers(keyText)
	if err != nil {
		slog.Warn("answer key yielded no questions, grading against sentinel", "error", err)
		keyMap = model.NewAnswerMap()
	}

	ids := studentMap.Keys()
	results := make([]model.Result, 0, len(ids))
	for i, id := range ids {
		student, _ := studentMap.Get(id)
		reference, ok := keyMap.Get(id)
		if !ok {
			reference = model.NoAnswerKey
		}

		res, err := r.strategy.Grade(ctx, id, student, reference)
		if err != nil {
			slog.Error("scoring failed", "question", id, "error", err)
			res = failureResult(ctx, id, student, reference, err)
		}
		results = append(results, res)

		if r.progress != nil {
			r.progress(i+1, len(ids), id)
		}
	}

	return results, model.Summarize(results), nil
}

// failureResult converts a per-question strategy error into a zero-grade
// result carrying the failure description.
func failureResult(ctx context.Context, id, student, reference string, err error) model.Result {
	return model.Result{
		QuestionID: id,
		Student:    student,
		Reference:  reference,
		Band:       model.BandVeryPoor,
		Feedback: []string{i18n.Td(ctx, "ScoringFailed", map[string]any{
			"ID":    id,
			"Error": err.Error(),
		})},
		Failed: true,
	}
}
