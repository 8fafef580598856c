package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/logx"
)

const (
	GenerateFromImage    = "from-image"
	GenerateImage        = "generate-image"
	GenerateEnhancedDesc = "enhance-description"

	placeholderTitle       = "Product Title"
	placeholderDescription = "Product Description"
	placeholderCategory    = "General"
	placeholderCopy        = "Product description"
	placeholderInsights    = "Sales analysis"
)

const (
	visionPrompt = "Analyze this product image and generate a compelling product listing. " +
		"Return a JSON object with: title (catchy product name), description (detailed product description), " +
		"category (product category), and tags (array of relevant tags). Make it engaging and sales-focused."
	copywriterSystem = "You are a professional product copywriter. Write compelling, detailed product descriptions that highlight features and benefits."
	analystSystem    = "You are a business analyst. Analyze sales data and provide actionable insights and recommendations."
)

// テキスト生成が未設定、または空の応答
var ErrAIUnavailable = errors.New("ai text generation unavailable")

// 画像から生成した出品内容
type GeneratedContent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

type GeneratedImage struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
}

// AIの失敗は呼び出し側に出さず、固定値で置き換える
type AIUsecase struct {
	text   TextGenerator
	vision VisionGenerator
	images ImageGenerator
}

func NewAIUsecase(text TextGenerator, vision VisionGenerator, images ImageGenerator) *AIUsecase {
	return &AIUsecase{text: text, vision: vision, images: images}
}

// POST /api/seller/products/generate の入力。typeで必要な項目が変わる
type GenerateInput struct {
	Type        string
	ImageURL    string
	Title       string
	Description string
	Category    string
}

type fromImageInput struct {
	ImageURL string `json:"imageUrl" validate:"required,url"`
}

type generateImageInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

type enhanceInput struct {
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"required"`
}

type GenerateOutput struct {
	Message     string            `json:"message"`
	Content     *GeneratedContent `json:"content,omitempty"`
	Image       *GeneratedImage   `json:"image,omitempty"`
	Description *string           `json:"description,omitempty"`
}

func (u *AIUsecase) Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error) {
	switch in.Type {
	case GenerateFromImage:
		req := fromImageInput{ImageURL: strings.TrimSpace(in.ImageURL)}
		if err := validateStruct(req); err != nil {
			return GenerateOutput{}, err
		}
		content := u.ContentFromImage(ctx, req.ImageURL)
		return GenerateOutput{Message: "Content generated successfully", Content: &content}, nil

	case GenerateImage:
		req := generateImageInput{
			Title:       strings.TrimSpace(in.Title),
			Description: strings.TrimSpace(in.Description),
			Category:    strings.TrimSpace(in.Category),
		}
		if err := validateStruct(req); err != nil {
			return GenerateOutput{}, err
		}
		img := u.ImageFromText(ctx, req.Title, req.Description)
		return GenerateOutput{Message: "Image generated successfully", Image: &img}, nil

	case GenerateEnhancedDesc:
		req := enhanceInput{Title: strings.TrimSpace(in.Title), Category: strings.TrimSpace(in.Category)}
		if err := validateStruct(req); err != nil {
			return GenerateOutput{}, err
		}
		desc := u.EnhanceDescription(ctx, req.Title, req.Category)
		return GenerateOutput{Message: "Description enhanced successfully", Description: &desc}, nil

	default:
		return GenerateOutput{}, NewHTTPError(http.StatusBadRequest,
			"Invalid generation type. Use: from-image, generate-image, or enhance-description")
	}
}

func (u *AIUsecase) ContentFromImage(ctx context.Context, imageURL string) GeneratedContent {
	fallback := GeneratedContent{
		Title:       placeholderTitle,
		Description: placeholderDescription,
		Category:    placeholderCategory,
		Tags:        []string{},
	}
	if u.vision == nil {
		return fallback
	}

	raw, err := u.vision.DescribeImage(ctx, visionPrompt, imageURL, 500)
	if err != nil {
		logx.Warn().Err(err).Msg("content from image failed, using placeholder")
		return fallback
	}

	var parsed GeneratedContent
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &parsed); err != nil {
		logx.Warn().Err(err).Msg("content from image returned invalid JSON, using placeholder")
		return fallback
	}

	if parsed.Title == "" {
		parsed.Title = placeholderTitle
	}
	if parsed.Description == "" {
		parsed.Description = placeholderDescription
	}
	if parsed.Category == "" {
		parsed.Category = placeholderCategory
	}
	if parsed.Tags == nil {
		parsed.Tags = []string{}
	}
	return parsed
}

func (u *AIUsecase) ImageFromText(ctx context.Context, title, description string) GeneratedImage {
	if u.images == nil {
		return GeneratedImage{}
	}

	prompt := fmt.Sprintf("Create a professional product image for: %s. %s. High quality, clean background, product-focused photography style.", title, description)
	url, err := u.images.GenerateImage(ctx, prompt)
	if err != nil {
		logx.Warn().Err(err).Msg("image generation failed, using placeholder")
		return GeneratedImage{}
	}
	return GeneratedImage{URL: url, Prompt: prompt}
}

func (u *AIUsecase) EnhanceDescription(ctx context.Context, title, category string) string {
	out, err := u.GenerateDescription(ctx, title, category)
	if err != nil {
		logx.Warn().Err(err).Msg("description generation failed, using placeholder")
		return placeholderCopy
	}
	return out
}

// 固定文に置き換えずにエラーを返す。workerはこちらを使う
func (u *AIUsecase) GenerateDescription(ctx context.Context, title, category string) (string, error) {
	if u.text == nil {
		return "", ErrAIUnavailable
	}

	user := fmt.Sprintf("Write a detailed product description for: %s in the %s category. Make it engaging, highlight key features, and include benefits. Keep it between 100-200 words.", title, category)
	out, err := u.text.Complete(ctx, copywriterSystem, user, 300)
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", ErrAIUnavailable
	}
	return out, nil
}

// 売上データの要約
func (u *AIUsecase) SalesInsights(ctx context.Context, data any) string {
	if u.text == nil {
		return placeholderInsights
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return placeholderInsights
	}
	user := fmt.Sprintf("Analyze this sales data and provide insights: %s. Focus on trends, top performers, and recommendations for improvement.", payload)
	out, err := u.text.Complete(ctx, analystSystem, user, 500)
	if err != nil || strings.TrimSpace(out) == "" {
		logx.Warn().Err(err).Msg("sales analysis failed, using placeholder")
		return placeholderInsights
	}
	return out
}

// ```json ... ``` で包まれた応答から中身を取り出す
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
