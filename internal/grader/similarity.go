package grader

import (
	"context"
	"fmt"
	"strings"

	"github.com/pavelanni/grader/internal/i18n"
	"github.com/pavelanni/grader/internal/model"
	"github.com/pavelanni/grader/internal/textsim"
)

// Feedback selection thresholds.
const (
	strongMatch  = 0.7
	partialMatch = 0.4
	reviewBelow  = 0.6
	tooShort     = 0.5
	tooLong      = 2.0
)

// SimilarityStrategy is the deterministic grader: blended text similarity
// mapped through the fixed grade table, plus length-ratio suggestions.
type SimilarityStrategy struct {
	opts model.Options
}

// NewSimilarityStrategy creates the deterministic grading strategy.
func NewSimilarityStrategy(opts model.Options) *SimilarityStrategy {
	return &SimilarityStrategy{opts: opts}
}

// Grade computes the blended similarity of the two answers, maps it to a
// grade and band, and assembles feedback in fixed order: score line,
// optional similarity line, match assessment, optional length suggestion,
// optional review tip.
func (s *SimilarityStrategy) Grade(ctx context.Context, questionID, student, reference string) (model.Result, error) {
	sim := textsim.Similarity(student, reference)
	grade, band := gradeFor(sim)

	feedback := []string{
		i18n.Td(ctx, "ScoreLine", map[string]any{
			"Grade": fmt.Sprintf("%.1f", grade),
			"Band":  string(band),
		}),
	}
	if s.opts.ShowSimilarity {
		feedback = append(feedback, i18n.Td(ctx, "SimilarityLine", map[string]any{
			"Percent": fmt.Sprintf("%.0f", sim*100),
		}))
	}

	switch {
	case sim >= strongMatch:
		feedback = append(feedback, i18n.T(ctx, "StrongMatch"))
	case sim >= partialMatch:
		feedback = append(feedback, i18n.T(ctx, "PartialMatch"))
	default:
		feedback = append(feedback, i18n.T(ctx, "WeakMatch"))
	}

	switch ratio := lengthRatio(student, reference); {
	case ratio < tooShort:
		feedback = append(feedback, i18n.T(ctx, "NeedsDetail"))
	case ratio > tooLong:
		feedback = append(feedback, i18n.T(ctx, "BeConcise"))
	}

	if sim < reviewBelow {
		feedback = append(feedback, i18n.T(ctx, "ReviewTip"))
	}

	return model.Result{
		QuestionID: questionID,
		Student:    student,
		Reference:  reference,
		Similarity: sim,
		Grade:      grade,
		Band:       band,
		Feedback:   feedback,
	}, nil
}

// lengthRatio is the student word count over the reference word count, 0
// when the reference has no words.
func lengthRatio(student, reference string) float64 {
	refWords := len(strings.Fields(reference))
	if refWords == 0 {
		return 0
	}
	return float64(len(strings.Fields(student))) / float64(refWords)
}
