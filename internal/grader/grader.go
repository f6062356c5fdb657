// Package grader turns answer pairs into grades and deterministic feedback.
package grader

import (
	"context"
	"math"

	"github.com/pavelanni/grader/internal/model"
)

// Strategy grades a single question. The question identifier is attached by
// the caller; strategies receive it only for feedback wording.
type Strategy interface {
	Grade(ctx context.Context, questionID, student, reference string) (model.Result, error)
}

// gradeFor maps a blended similarity to the piecewise-linear 0-10 grade and
// its qualitative band. The Excellent branch can exceed 10 before clamping.
func gradeFor(s float64) (float64, model.Band) {
	var grade float64
	var band model.Band
	switch {
	case s >= 0.8:
		grade = 9 + (s-0.8)*5
		band = model.BandExcellent
	case s >= 0.6:
		grade = 7 + (s-0.6)*10
		band = model.BandGood
	case s >= 0.4:
		grade = 5 + (s-0.4)*10
		band = model.BandFair
	case s >= 0.2:
		grade = 3 + (s-0.2)*10
		band = model.BandPoor
	default:
		grade = s * 15
		band = model.BandVeryPoor
	}
	grade = math.Round(grade*10) / 10
	if grade > 10 {
		grade = 10
	}
	return grade, band
}

// bandForGrade recovers the band from a grade when no similarity is
// available (LLM strategy). Ranges mirror the gradeFor table.
func bandForGrade(g float64) model.Band {
	switch {
	case g >= 9:
		return model.BandExcellent
	case g >= 7:
		return model.BandGood
	case g >= 5:
		return model.BandFair
	case g >= 3:
		return model.BandPoor
	default:
		return model.BandVeryPoor
	}
}
