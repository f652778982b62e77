package analyzer

import (
	"context"
	"log/slog"
	"time"

	"github.com/sozercan/techtalk-hub/apimodels"
	"github.com/sozercan/techtalk-hub/internal/llm"
)

// TestConnection sends a single user message and reports whether the
// endpoint answered. Unlike the analyses it surfaces the transport error
// message instead of a fallback.
func (a *Analyzer) TestConnection(ctx context.Context) apimodels.ConnectionTestResult {
	reply, err := a.llmProvider.SendChatCompletion(ctx, []llm.Message{llm.UserMessage(connectionTestPrompt)}, a.llmOptions...)
	now := time.Now().UTC()
	if err != nil {
		slog.Error("Connection test failed", "error_kind", classify(err), "error", err)
		return apimodels.ConnectionTestResult{
			Success:   false,
			Error:     err.Error(),
			Timestamp: now,
		}
	}

	slog.Info("Connection test succeeded")
	return apimodels.ConnectionTestResult{
		Success:   true,
		Response:  reply,
		Timestamp: now,
	}
}
