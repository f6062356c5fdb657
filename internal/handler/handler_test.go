package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/grader/internal/i18n"
	"github.com/pavelanni/grader/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	if err := i18n.Init("en"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	h := New(nil, model.DefaultOptions())
	r := chi.NewRouter()
	r.Use(i18n.Middleware("en"))
	h.Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postGrade(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestGradeEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp := postGrade(t, srv, "/api/grade",
		`{"student_text":"Q1: the mitochondria produce energy","key_text":"Q1: the mitochondria produce energy"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Results []model.Result `json:"results"`
		Summary model.Summary  `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(body.Results))
	}
	if body.Results[0].Grade != 10.0 {
		t.Errorf("grade = %v, want 10.0", body.Results[0].Grade)
	}
	if body.Summary.PassRate != 100 {
		t.Errorf("pass rate = %v, want 100", body.Summary.PassRate)
	}
}

func TestGradeEndpointCSV(t *testing.T) {
	srv := newTestServer(t)
	resp := postGrade(t, srv, "/api/grade?format=csv",
		`{"student_text":"Q1: cats","key_text":"Q1: cats"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q, want text/csv", ct)
	}
}

func TestGradeEndpointErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"empty student text", `{"student_text":"  ","key_text":"Q1: a"}`, http.StatusBadRequest},
		{"no question headings", `{"student_text":"free prose","key_text":"Q1: a"}`, http.StatusUnprocessableEntity},
		{"llm not configured", `{"student_text":"Q1: a","key_text":"Q1: a","strategy":"llm"}`, http.StatusBadRequest},
		{"unknown strategy", `{"student_text":"Q1: a","key_text":"Q1: a","strategy":"psychic"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postGrade(t, srv, "/api/grade", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}
