package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"
)

// Gemini（eino ChatModel経由）のテキスト生成
type GeminiClient struct {
	chat *gemini.ChatModel
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temp := cfg.Temperature
	if temp == 0 {
		temp = 0.7
	}
	chat, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model,
		Temperature: &temp,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating Gemini chat model: %w", err)
	}

	return &GeminiClient{chat: chat}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	msgs := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(user),
	}

	var opts []einomodel.Option
	if maxTokens > 0 {
		opts = append(opts, einomodel.WithMaxTokens(maxTokens))
	}

	out, err := c.chat.Generate(ctx, msgs, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errors.New("no content generated")
	}
	return strings.TrimSpace(out.Content), nil
}
