package ai

import (
	"context"

	"storefront/internal/config"
	"storefront/internal/logx"
)

type TextGenerator interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

type VisionGenerator interface {
	DescribeImage(ctx context.Context, prompt, imageURL string, maxTokens int) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// 設定からプロバイダを選ぶ。キーが無いものはnil（呼び出し側は固定文で代用する）
type Providers struct {
	Text   TextGenerator
	Vision VisionGenerator
	Image  ImageGenerator
}

func NewProviders(ctx context.Context, cfg config.AI) (Providers, error) {
	var p Providers

	var openai *OpenAIClient
	if cfg.OpenAIAPIKey != "" {
		openai = NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			TextModel:   cfg.OpenAITextModel,
			VisionModel: cfg.OpenAIVisionModel,
			Timeout:     cfg.Timeout,
		})
		p.Vision = openai
	} else {
		logx.Warn().Msg("OPENAI_API_KEY not set, image analysis uses placeholders")
	}

	switch cfg.TextProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			logx.Warn().Msg("GEMINI_API_KEY not set, text generation uses placeholders")
			break
		}
		g, err := NewGeminiClient(ctx, GeminiConfig{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			return Providers{}, err
		}
		p.Text = g
	default:
		if openai != nil {
			p.Text = openai
		}
	}

	if cfg.ReplicateAPIToken != "" {
		p.Image = NewReplicateClient(ReplicateConfig{
			APIToken:     cfg.ReplicateAPIToken,
			BaseURL:      cfg.ReplicateBaseURL,
			ModelVersion: cfg.ReplicateModelVersion,
			Timeout:      cfg.Timeout,
		})
	} else {
		logx.Warn().Msg("REPLICATE_API_TOKEN not set, image generation uses placeholders")
	}

	return p, nil
}
