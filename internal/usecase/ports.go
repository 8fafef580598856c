package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/model"
)

// 商品イベントの送信先（Kafka）
type EventPublisher interface {
	Publish(ctx context.Context, ev model.ProductEvent) error
}

// テキスト生成（OpenAI / Gemini）
type TextGenerator interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// 画像解析
type VisionGenerator interface {
	DescribeImage(ctx context.Context, prompt, imageURL string, maxTokens int) (string, error)
}

// 画像生成（Replicate）
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
