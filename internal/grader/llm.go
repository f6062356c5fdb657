package grader

import (
	"context"

	"github.com/pavelanni/grader/internal/llm"
	"github.com/pavelanni/grader/internal/model"
)

// LLMStrategy grades through an external OpenAI-compatible model. The path
// is non-deterministic; it shares the Strategy contract but not the
// similarity computation, so Similarity stays 0 in its results.
type LLMStrategy struct {
	client *llm.Client
}

// NewLLMStrategy creates the external-service grading strategy.
func NewLLMStrategy(client *llm.Client) *LLMStrategy {
	return &LLMStrategy{client: client}
}

// Grade submits the answer pair to the model. Errors (including timeouts)
// are returned to the runner, which converts them into a per-question
// failure without aborting the remaining questions.
func (s *LLMStrategy) Grade(ctx context.Context, questionID, student, reference string) (model.Result, error) {
	gr, err := s.client.GradeAnswer(ctx, questionID, student, reference)
	if err != nil {
		return model.Result{}, err
	}
	return model.Result{
		QuestionID: questionID,
		Student:    student,
		Reference:  reference,
		Grade:      gr.Score,
		Band:       bandForGrade(gr.Score),
		Feedback:   []string{gr.Feedback},
	}, nil
}
