package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/techtalk-hub/internal/config"
)

// OpenAI talks to any OpenAI-compatible chat-completion endpoint
// (OpenRouter by default).
type OpenAI struct {
	client *openai.Client
	cfg    config.LLMConfig
}

// NewOpenAI builds the client from cfg. Extra request options are appended
// after the configured ones.
func NewOpenAI(cfg *config.LLMConfig, extra ...option.RequestOption) (*OpenAI, error) {
	if cfg == nil {
		return nil, errors.New("llm config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("llm api key cannot be empty")
	}

	var opts []option.RequestOption
	switch cfg.Provider {
	case config.ProviderAzure:
		opts = append(opts,
			azure.WithEndpoint(cfg.BaseURL, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
		)
	default: // "openrouter"
		opts = append(opts,
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(withTrailingSlash(cfg.BaseURL)),
		)
	}
	opts = append(opts,
		option.WithHeader("HTTP-Referer", cfg.Referer),
		option.WithHeader("X-Title", cfg.Title),
		option.WithMaxRetries(0),
	)
	opts = append(opts, extra...)

	slog.Info("Creating chat-completion client", "provider", cfg.Provider, "base_url", cfg.BaseURL, "model", cfg.Model)

	return &OpenAI{
		client: openai.NewClient(opts...),
		cfg:    *cfg,
	}, nil
}

func (o *OpenAI) SendChatCompletion(ctx context.Context, messages []Message, opts ...Option) (string, error) {
	if len(messages) == 0 {
		return "", &TransportError{Err: errors.New("at least one message is required")}
	}

	req := NewRequest(o.cfg.Model, messages, opts...)

	params, err := toParams(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	slog.Debug("Sending chat completion", "model", req.Model, "messages", len(req.Messages))

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		classified := ClassifyError(err)
		slog.Error("Chat completion failed", "model", req.Model, "error", err)
		return "", classified
	}

	if len(resp.Choices) == 0 {
		return "", &TransportError{Err: errors.New("completion response contained no choices")}
	}

	slog.Debug("Chat completion succeeded", "model", req.Model, "total_tokens", resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}

func toParams(req Request) (openai.ChatCompletionNewParams, error) {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for i, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			msgs = append(msgs, openai.SystemMessage(m.Content))
		case RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		default:
			return openai.ChatCompletionNewParams{}, fmt.Errorf("message %d has unknown role %q", i, m.Role)
		}
	}

	return openai.ChatCompletionNewParams{
		Model:       openai.F(req.Model),
		Messages:    openai.F(msgs),
		MaxTokens:   openai.F(req.MaxTokens),
		Temperature: openai.F(req.Temperature),
	}, nil
}

func withTrailingSlash(u string) string {
	if strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
