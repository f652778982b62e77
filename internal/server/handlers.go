package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sozercan/techtalk-hub/apimodels"
	"github.com/sozercan/techtalk-hub/internal/analyzer"
	"github.com/sozercan/techtalk-hub/internal/jobs"
	"github.com/sozercan/techtalk-hub/internal/schema"
)

const (
	maxBodyBytes = 1 << 20

	msgEmptyText = "Please enter some text to analyze."
	msgNoJob     = "Please select a job or enter a custom job title to analyze."
)

// results maps each task to a zero value of its result type.
var results = map[analyzer.Task]interface{}{
	analyzer.TaskBias:       apimodels.BiasResult{},
	analyzer.TaskPrivacy:    apimodels.PrivacyResult{},
	analyzer.TaskAutomation: apimodels.AutomationResult{},
	analyzer.TaskMood:       apimodels.MoodResult{},
}

type textAnalysis func(ctx context.Context, text string) (interface{}, analyzer.Outcome)

func (s *Server) handleBias(w http.ResponseWriter, r *http.Request) {
	s.handleText(w, r, func(ctx context.Context, text string) (interface{}, analyzer.Outcome) {
		return s.analyzer.AnalyzeBias(ctx, text)
	})
}

func (s *Server) handlePrivacy(w http.ResponseWriter, r *http.Request) {
	s.handleText(w, r, func(ctx context.Context, text string) (interface{}, analyzer.Outcome) {
		return s.analyzer.AnalyzePrivacyRisk(ctx, text)
	})
}

func (s *Server) handleMood(w http.ResponseWriter, r *http.Request) {
	s.handleText(w, r, func(ctx context.Context, text string) (interface{}, analyzer.Outcome) {
		return s.analyzer.AnalyzeMood(ctx, text)
	})
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request, run textAnalysis) {
	var req apimodels.TextRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, msgEmptyText)
		return
	}

	result, out := run(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, apimodels.AnalysisResponse{
		Result:   result,
		Metadata: out.Metadata(),
	})
}

func (s *Server) handleAutomation(w http.ResponseWriter, r *http.Request) {
	var req apimodels.AutomationRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	job, err := s.catalog.Resolve(req.Preset, req.Title, req.Skills, req.Experience)
	if errors.Is(err, jobs.ErrNoJob) {
		writeError(w, http.StatusBadRequest, msgNoJob)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Debug("Resolved job for automation analysis", "job", job.String(), "preset", job.Preset)

	result, out := s.analyzer.AnalyzeAutomationRisk(r.Context(), job)
	writeJSON(w, http.StatusOK, apimodels.AnalysisResponse{
		Result:   result,
		Job:      job.Summary(),
		Metadata: out.Metadata(),
	})
}

func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	task := analyzer.Task(chi.URLParam(r, "task"))
	zero, ok := results[task]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown task %q.", task))
		return
	}

	sch, err := schema.For(zero)
	if err != nil {
		slog.Error("Failed to build result schema", "task", task, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sch)
}

func (s *Server) handleConnectionTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.analyzer.TestConnection(r.Context()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: msg})
}
