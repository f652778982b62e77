package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/sozercan/techtalk-hub/apimodels"
	"github.com/sozercan/techtalk-hub/internal/llm"
	"github.com/sozercan/techtalk-hub/internal/metrics"
	"github.com/sozercan/techtalk-hub/internal/recovery"
	"github.com/sozercan/techtalk-hub/internal/schema"
)

type Task string

const (
	TaskBias       Task = "bias"
	TaskPrivacy    Task = "privacy"
	TaskAutomation Task = "automation"
	TaskMood       Task = "mood"
)

// Tasks lists every task in a stable order.
var Tasks = []Task{TaskBias, TaskPrivacy, TaskAutomation, TaskMood}

type ErrorKind string

const (
	ErrorKindNone      ErrorKind = ""
	ErrorKindAuth      ErrorKind = "auth"
	ErrorKindTransport ErrorKind = "transport"
	ErrorKindRecovery  ErrorKind = "recovery"
)

// Outcome reports how an analysis went. The result returned next to it is
// always complete; Outcome is how callers tell a fallback default from a
// genuine answer.
type Outcome struct {
	ID        string
	Task      Task
	Succeeded bool
	ErrorKind ErrorKind
	Stage     recovery.Stage
	Err       error
	Duration  time.Duration
}

// Metadata renders the outcome for API responses.
func (o Outcome) Metadata() apimodels.AnalysisMetadata {
	return apimodels.AnalysisMetadata{
		ID:        o.ID,
		Task:      string(o.Task),
		Duration:  o.Duration.String(),
		Succeeded: o.Succeeded,
		ErrorKind: string(o.ErrorKind),
	}
}

type Analyzer struct {
	llmProvider llm.Provider
	metrics     *metrics.AnalysisMetrics
	llmOptions  []llm.Option
}

type Option func(*Analyzer)

func WithMetrics(m *metrics.AnalysisMetrics) Option {
	return func(a *Analyzer) {
		a.metrics = m
	}
}

// WithLLMOptions appends per-call transport options, such as a model
// override, to every request.
func WithLLMOptions(opts ...llm.Option) Option {
	return func(a *Analyzer) {
		a.llmOptions = append(a.llmOptions, opts...)
	}
}

func New(llmProvider llm.Provider, opts ...Option) *Analyzer {
	a := &Analyzer{
		llmProvider: llmProvider,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// adapter describes one analysis task.
type adapter[T any] struct {
	task         Task
	systemPrompt string
	userFormat   string
	normalize    func(obj gjson.Result) T
	fallback     func() T
}

// analyze runs one round trip for ad. It never fails: transport and
// recovery errors yield ad.fallback() and are reported in the Outcome.
func analyze[T any](ctx context.Context, a *Analyzer, ad adapter[T], input string) (T, Outcome) {
	start := time.Now()
	out := Outcome{
		ID:   uuid.NewString(),
		Task: ad.task,
	}

	slog.Info("Starting analysis", "task", ad.task, "analysis_id", out.ID)

	messages := []llm.Message{
		llm.SystemMessage(ad.systemPrompt),
		llm.UserMessage(fmt.Sprintf(ad.userFormat, input)),
	}

	reply, err := a.llmProvider.SendChatCompletion(ctx, messages, a.llmOptions...)
	if err != nil {
		return ad.fallback(), a.failed(ctx, out, start, err)
	}
	slog.Debug("Received model reply", "task", ad.task, "analysis_id", out.ID, "reply", recovery.Describe(reply))

	obj, stage, err := recovery.Recover(reply)
	if err != nil {
		return ad.fallback(), a.failed(ctx, out, start, err)
	}

	result := ad.normalize(obj)

	out.Succeeded = true
	out.Stage = stage
	out.Duration = time.Since(start)

	violations := schema.EnumViolations(result)
	for _, v := range violations {
		slog.Warn("Model returned a value outside the declared enum", "task", ad.task, "analysis_id", out.ID, "field", v.Path, "value", v.Value)
	}

	if a.metrics != nil {
		a.metrics.RecordSucceeded(ctx, string(ad.task), string(stage), out.Duration)
		a.metrics.RecordEnumViolations(ctx, string(ad.task), len(violations))
	}

	slog.Info("Analysis completed", "task", ad.task, "analysis_id", out.ID, "stage", stage, "duration", out.Duration)
	return result, out
}

func (a *Analyzer) failed(ctx context.Context, out Outcome, start time.Time, err error) Outcome {
	out.Succeeded = false
	out.Err = err
	out.ErrorKind = classify(err)
	out.Duration = time.Since(start)

	slog.Error("Analysis failed, returning fallback result",
		"task", out.Task,
		"analysis_id", out.ID,
		"error_kind", out.ErrorKind,
		"error", err,
	)

	if a.metrics != nil {
		a.metrics.RecordFallback(ctx, string(out.Task), string(out.ErrorKind), out.Duration)
	}
	return out
}

func classify(err error) ErrorKind {
	var authErr *llm.AuthError
	var recErr *recovery.Error
	switch {
	case errors.As(err, &authErr):
		return ErrorKindAuth
	case errors.As(err, &recErr):
		return ErrorKindRecovery
	default:
		return ErrorKindTransport
	}
}
