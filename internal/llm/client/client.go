// Package client wraps the chat-model providers behind a single docstring
// generation call with a per-request timeout and provider-reported cost.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"docstitch/internal/events"
)

const promptFile = "prompts/docstring.txt"

// Options configures a generation client.
type Options struct {
	// Provider is openai, anthropic or gemini.
	Provider string
	// Model is the provider-side model name.
	Model string
	// APIKey authenticates against the provider.
	APIKey string
	// Timeout bounds each request. A request past the deadline fails with
	// *TimeoutError; the in-flight network call is not cancelled retroactively
	// beyond what the transport does with the context.
	Timeout time.Duration
	// TokenRate converts the provider's reported token usage into dollars.
	TokenRate float64
}

// GenerationClient issues one generation request per undocumented function.
// No retries: a timeout or provider error permanently fails that function's
// task for the run.
type GenerationClient struct {
	chatModel model.BaseChatModel
	prompt    string
	timeout   time.Duration
	rate      float64
}

// New builds a client for the configured provider.
func New(ctx context.Context, opts Options) (*GenerationClient, error) {
	chatModel, err := newChatModel(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("creating %s chat model: %w", opts.Provider, err)
	}
	return NewWithModel(chatModel, opts.Timeout, opts.TokenRate)
}

// NewWithModel wraps an existing chat model. Tests use this with a stub.
func NewWithModel(chatModel model.BaseChatModel, timeout time.Duration, rate float64) (*GenerationClient, error) {
	prompt, err := loadPrompt()
	if err != nil {
		return nil, err
	}
	return &GenerationClient{
		chatModel: chatModel,
		prompt:    prompt,
		timeout:   timeout,
		rate:      rate,
	}, nil
}

// GenerateDocstring asks the model for a docstring for one function and
// returns the sanitized text plus the dollar cost derived from the provider's
// reported token usage.
func (c *GenerationClient) GenerateDocstring(ctx context.Context, functionName, functionSource string) (string, float64, error) {
	events.Emit(ctx, events.GenerateTask, events.NewInfo("generating docstring for "+functionName))

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []*schema.Message{
		schema.UserMessage(c.prompt + functionSource),
	}
	out, err := c.chatModel.Generate(reqCtx, messages)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			events.Emit(ctx, events.GenerateTask, events.NewError("timed out waiting for "+functionName))
			return "", 0, &TimeoutError{Function: functionName}
		}
		events.Emit(ctx, events.GenerateTask, events.NewError("provider error for "+functionName))
		return "", 0, &GenerationError{Function: functionName, Err: err}
	}

	text := sanitizeDocstring(out.Content)
	if text == "" {
		return "", 0, &GenerationError{Function: functionName, Err: errors.New("model returned empty content")}
	}

	var tokens int
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		tokens = out.ResponseMeta.Usage.TotalTokens
	}
	actualCost := float64(tokens) * c.rate

	events.Emit(ctx, events.GenerateTask, events.NewSuccess("generated docstring for "+functionName))
	return text, actualCost, nil
}

// sanitizeDocstring strips quote characters that would terminate the
// triple-quoted string the patcher wraps the text in.
func sanitizeDocstring(text string) string {
	text = strings.TrimSpace(text)
	return strings.ReplaceAll(text, `"`, "")
}

func loadPrompt() (string, error) {
	data, err := embeddedPrompts.ReadFile(promptFile)
	if err != nil {
		return "", fmt.Errorf("loading prompt template: %w", err)
	}
	return string(data), nil
}
