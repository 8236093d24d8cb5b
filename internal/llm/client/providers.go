package client

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Response size cap and sampling temperature for docstring generation.
const (
	maxResponseTokens = 1000
	temperature       = float32(0.5)
)

func newChatModel(ctx context.Context, opts Options) (model.BaseChatModel, error) {
	switch opts.Provider {
	case "openai":
		maxTokens := maxResponseTokens
		temp := temperature
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      opts.APIKey,
			Model:       opts.Model,
			MaxTokens:   &maxTokens,
			Temperature: &temp,
		})
	case "anthropic":
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey:    opts.APIKey,
			Model:     opts.Model,
			MaxTokens: maxResponseTokens,
		})
	case "gemini":
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  opts.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: genaiClient,
			Model:  opts.Model,
		})
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
}
