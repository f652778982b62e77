package llm

import "context"

const (
	DefaultModel       = "openai/gpt-oss-20b:free"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Request is built fresh for every call and never retained.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int64     `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Provider interface {
	// SendChatCompletion sends messages to the chat-completion endpoint and
	// returns the assistant's reply text. Errors are *AuthError or
	// *TransportError.
	SendChatCompletion(ctx context.Context, messages []Message, opts ...Option) (string, error)
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

func WithModel(model string) Option {
	return func(o *Options) {
		if model != "" {
			o.Model = model
		}
	}
}

func WithMaxTokens(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxTokens = n
		}
	}
}

func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = t
	}
}

// NewRequest applies opts over the defaults and the given default model.
func NewRequest(defaultModel string, messages []Message, opts ...Option) Request {
	if defaultModel == "" {
		defaultModel = DefaultModel
	}
	options := &Options{
		Model:       defaultModel,
		MaxTokens:   DefaultMaxTokens,
		Temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(options)
	}

	return Request{
		Model:       options.Model,
		Messages:    messages,
		MaxTokens:   options.MaxTokens,
		Temperature: options.Temperature,
	}
}
