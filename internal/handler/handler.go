// Package handler exposes the grading engine over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/grader/internal/extract"
	"github.com/pavelanni/grader/internal/grader"
	"github.com/pavelanni/grader/internal/i18n"
	"github.com/pavelanni/grader/internal/llm"
	"github.com/pavelanni/grader/internal/model"
	"github.com/pavelanni/grader/internal/report"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	llm    *llm.Client // nil when no LLM endpoint is configured
	config model.Options
}

// New creates a new Handler.
func New(llmClient *llm.Client, cfg model.Options) *Handler {
	return &Handler{llm: llmClient, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)
	r.Post("/api/grade", h.handleGrade)
}

// gradeRequest is the JSON body of POST /api/grade. Both texts must be
// already-decoded plain text; format decoding happens upstream.
type gradeRequest struct {
	StudentText string `json:"student_text"`
	KeyText     string `json:"key_text"`
	Strategy    string `json:"strategy,omitempty"`
}

type gradeResponse struct {
	Results []model.Result `json:"results"`
	Summary model.Summary  `json:"summary"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	strategy, err := h.strategyFor(req.Strategy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, summary, err := grader.NewRunner(strategy).Run(r.Context(), req.StudentText, req.KeyText)
	if err != nil {
		h.writeExtractError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="grading_report.csv"`)
		if err := report.WriteCSV(w, results); err != nil {
			slog.Error("write CSV response", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(gradeResponse{Results: results, Summary: summary}); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// strategyFor resolves the requested strategy name, falling back to the
// server default. The LLM strategy is only available when an endpoint was
// configured at startup.
func (h *Handler) strategyFor(name string) (grader.Strategy, error) {
	selected := h.config.Strategy
	if name != "" {
		selected = model.StrategyName(name)
	}
	switch selected {
	case model.StrategySimilarity:
		return grader.NewSimilarityStrategy(h.config), nil
	case model.StrategyLLM:
		if h.llm == nil {
			return nil, errors.New("llm strategy requested but no LLM endpoint is configured")
		}
		return grader.NewLLMStrategy(h.llm), nil
	default:
		return nil, errors.New("unknown strategy: " + name)
	}
}

// writeExtractError distinguishes "no text at all" from "text without
// question headings" for the client.
func (h *Handler) writeExtractError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, extract.ErrEmptyDocument):
		http.Error(w, i18n.T(r.Context(), "ErrEmptyDocument"), http.StatusBadRequest)
	case errors.Is(err, extract.ErrNoQuestions):
		http.Error(w, i18n.T(r.Context(), "ErrNoQuestions"), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
