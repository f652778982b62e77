package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sozercan/techtalk-hub/apimodels"
	"github.com/sozercan/techtalk-hub/internal/analyzer"
	"github.com/sozercan/techtalk-hub/internal/config"
	"github.com/sozercan/techtalk-hub/internal/jobs"
	"github.com/sozercan/techtalk-hub/internal/llm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubProvider struct {
	reply string
	err   error

	mu       sync.Mutex
	messages []llm.Message
}

func (s *stubProvider) SendChatCompletion(_ context.Context, messages []llm.Message, _ ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = messages
	return s.reply, s.err
}

// blockingProvider never answers; it returns once the request context ends.
type blockingProvider struct{}

func (blockingProvider) SendChatCompletion(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", &llm.TransportError{Err: ctx.Err()}
}

type envelope struct {
	Result   json.RawMessage            `json:"result"`
	Job      *apimodels.Job             `json:"job"`
	Metadata apimodels.AnalysisMetadata `json:"metadata"`
}

func newTestServer(t *testing.T, p llm.Provider) *Server {
	t.Helper()
	catalog, err := jobs.Load()
	require.NoError(t, err)

	cfg := config.Config{
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         "0",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
	}
	return New(cfg, analyzer.New(p), catalog)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apimodels.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := do(t, s, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestBiasEnvelope(t *testing.T) {
	p := &stubProvider{reply: `{"isFair": false, "confidence": "High", "reason": "contains gendered language", "suggestions": ["use neutral terms"]}`}
	s := newTestServer(t, p)

	rec := do(t, s, http.MethodPost, "/api/v1/bias", `{"text": "Chairmen should lead."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.JSONEq(t, `{"isFair": false, "confidence": "High", "reason": "contains gendered language", "suggestions": ["use neutral terms"]}`, string(env.Result))
	assert.Nil(t, env.Job)
	assert.Equal(t, "bias", env.Metadata.Task)
	assert.True(t, env.Metadata.Succeeded)
	assert.Empty(t, env.Metadata.ErrorKind)
	assert.NotEmpty(t, env.Metadata.ID)
	assert.NotEmpty(t, env.Metadata.Duration)

	assert.Equal(t, `Analyze this text for bias: "Chairmen should lead."`, p.messages[1].Content)
}

func TestTextRoutesRejectBlankText(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	for _, path := range []string{"/api/v1/bias", "/api/v1/privacy", "/api/v1/mood"} {
		t.Run(path, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, path, `{"text": "   \n\t"}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Please enter some text to analyze.", decodeError(t, rec))
		})
	}
}

func TestInvalidBody(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := do(t, s, http.MethodPost, "/api/v1/mood", `{"text": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "Invalid request")
}

func TestFallbackIsReportedInMetadata(t *testing.T) {
	s := newTestServer(t, &stubProvider{err: &llm.TransportError{Err: errors.New("connection refused")}})

	rec := do(t, s, http.MethodPost, "/api/v1/privacy", `{"text": "call me at 555-0100"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Metadata.Succeeded)
	assert.Equal(t, "transport", env.Metadata.ErrorKind)

	var got apimodels.PrivacyResult
	require.NoError(t, json.Unmarshal(env.Result, &got))
	assert.Equal(t, analyzer.PrivacyFallback(), got)
}

func TestRequestDeadlineServesFallback(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	catalog, err := jobs.Load()
	require.NoError(t, err)
	cfg := config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           "0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   5 * time.Second,
			RequestTimeout: 50 * time.Millisecond,
		},
	}
	s := New(cfg, analyzer.New(blockingProvider{}), catalog)

	rec := do(t, s, http.MethodPost, "/api/v1/mood", `{"text": "long week"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.False(t, env.Metadata.Succeeded)
	assert.Equal(t, "transport", env.Metadata.ErrorKind)

	var got apimodels.MoodResult
	require.NoError(t, json.Unmarshal(env.Result, &got))
	assert.Equal(t, analyzer.MoodFallback(), got)

	// The access log must report what the client received.
	var logged bool
	dec := json.NewDecoder(&logs)
	for dec.More() {
		var line map[string]any
		require.NoError(t, dec.Decode(&line))
		if line["msg"] != "HTTP request completed" {
			continue
		}
		logged = true
		assert.Equal(t, float64(http.StatusOK), line["status"])
		assert.Equal(t, "/api/v1/mood", line["path"])
	}
	assert.True(t, logged, "no access log line")
}

func TestAutomationPreset(t *testing.T) {
	p := &stubProvider{reply: `{"riskLevel": "Low", "riskScore": 20, "reason": "creative work", "futureOutlook": "stable", "recommendations": ["learn AI tooling"]}`}
	s := newTestServer(t, p)

	rec := do(t, s, http.MethodPost, "/api/v1/automation", `{"preset": "software-engineer"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Job)
	assert.Equal(t, "Software Engineer", env.Job.Label)
	assert.Equal(t, "Technology & Engineering", env.Job.Category)
	assert.Equal(t, "💻", env.Job.Icon)
	assert.Equal(t, "automation", env.Metadata.Task)

	var got apimodels.AutomationResult
	require.NoError(t, json.Unmarshal(env.Result, &got))
	assert.Equal(t, 20.0, got.RiskScore)

	assert.Equal(t, `Analyze automation risk for this job: "Software Engineer (Technology & Engineering)"`, p.messages[1].Content)
}

func TestAutomationCustom(t *testing.T) {
	p := &stubProvider{reply: `{}`}
	s := newTestServer(t, p)

	rec := do(t, s, http.MethodPost, "/api/v1/automation", `{"title": " Baker ", "skills": "Sourdough", "experience": "senior"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotNil(t, env.Job)
	assert.Equal(t, apimodels.Job{
		Label:      "Baker",
		Icon:       "💼",
		Category:   "Custom",
		Skills:     "Sourdough",
		Experience: "senior",
	}, *env.Job)
	assert.Equal(t, `Analyze automation risk for this job: "Baker - Skills: Sourdough - Experience: senior"`, p.messages[1].Content)
}

func TestAutomationValidation(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"no job", `{}`, "Please select a job or enter a custom job title to analyze."},
		{"blank title", `{"title": "  ", "skills": "Go"}`, "Please select a job or enter a custom job title to analyze."},
		{"unknown preset", `{"preset": "astronaut"}`, `unknown job "astronaut"`},
		{"unknown experience", `{"title": "Baker", "experience": "guru"}`, `unknown experience level "guru"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/automation", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec))
		})
	}
}

func TestJobs(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := do(t, s, http.MethodGet, "/api/v1/jobs", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var catalog jobs.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog.Categories, 8)
	assert.Len(t, catalog.ExperienceLevels, 4)
}

func TestSchemas(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	for _, task := range analyzer.Tasks {
		t.Run(string(task), func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/v1/schemas/"+string(task), "")
			require.Equal(t, http.StatusOK, rec.Code)

			var sch map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sch))
			assert.Equal(t, "object", sch["type"])
			assert.NotEmpty(t, sch["properties"])
		})
	}

	rec := do(t, s, http.MethodGet, "/api/v1/schemas/horoscope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConnectionTest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := newTestServer(t, &stubProvider{reply: "To be kind."})

		rec := do(t, s, http.MethodPost, "/api/v1/connection-test", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var res apimodels.ConnectionTestResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.True(t, res.Success)
		assert.Equal(t, "To be kind.", res.Response)
	})

	t.Run("failure", func(t *testing.T) {
		s := newTestServer(t, &stubProvider{err: llm.ClassifyError(errors.New("401 User not found."))})

		rec := do(t, s, http.MethodPost, "/api/v1/connection-test", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var res apimodels.ConnectionTestResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.False(t, res.Success)
		assert.Equal(t, "API Key is invalid or expired. Please check your OpenRouter API key.", res.Error)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	rec := do(t, s, http.MethodGet, "/api/v1/bias", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeStopsOnCancel(t *testing.T) {
	s := newTestServer(t, &stubProvider{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
