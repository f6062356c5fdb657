// Package report renders grading results for export and display.
package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pavelanni/grader/internal/i18n"
	"github.com/pavelanni/grader/internal/model"
)

// CSV column order and names are a compatibility contract with existing
// report consumers; do not reorder or rename.
var csvHeader = []string{"Question", "Student Answer", "Correct Answer", "AI Feedback"}

// WriteCSV writes one row per result in the contract column order. The
// Question column carries the Q-prefixed identifier.
func WriteCSV(w io.Writer, results []model.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for _, r := range results {
		row := []string{
			"Q" + r.QuestionID,
			r.Student,
			r.Reference,
			FeedbackText(r),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row for question %s: %w", r.QuestionID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FeedbackText joins a result's feedback statements for single-cell output.
func FeedbackText(r model.Result) string {
	return strings.Join(r.Feedback, "\n")
}

// Export is the top-level JSON structure for grading result export.
type Export struct {
	GradedAt time.Time      `json:"graded_at"`
	Strategy string         `json:"strategy"`
	Results  []model.Result `json:"results"`
	Summary  model.Summary  `json:"summary"`
}

// WriteJSON writes the indented JSON export envelope.
func WriteJSON(w io.Writer, export Export) error {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, err = fmt.Fprintln(w)
	return err
}

// WriteText renders a human-readable per-question report and summary.
func WriteText(ctx context.Context, w io.Writer, results []model.Result, summary model.Summary) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "Q%s\n", r.QuestionID); err != nil {
			return err
		}
		for _, line := range r.Feedback {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, i18n.Tp(ctx, "SummaryQuestions", summary.Questions))
	fmt.Fprintln(w, i18n.Td(ctx, "SummaryMean", map[string]any{
		"Mean": fmt.Sprintf("%.1f", summary.MeanGrade),
	}))
	_, err := fmt.Fprintln(w, i18n.Td(ctx, "SummaryPassRate", map[string]any{
		"Percent": fmt.Sprintf("%.1f", summary.PassRate),
	}))
	return err
}
