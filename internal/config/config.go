package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// 実行環境
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool {
	return e == Production
}

// 未知の値はdevelopment扱い
func ParseEnvironment(v string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(v))) {
	case Production:
		return Production
	case Staging:
		return Staging
	case Testing:
		return Testing
	default:
		return Development
	}
}

// DB接続設定
type Database struct {
	URL      string `envconfig:"DATABASE_URL"`
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"postgres"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	Name     string `envconfig:"POSTGRES_DB" default:"storefront"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

// DATABASE_URLがあれば最優先
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type Redis struct {
	URL     string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	CartTTL time.Duration `envconfig:"CART_TTL" default:"720h"`
}

type Kafka struct {
	Brokers string `envconfig:"KAFKA_BROKERS"`
	Topic   string `envconfig:"KAFKA_TOPIC" default:"product-events"`
	GroupID string `envconfig:"KAFKA_GROUP_ID" default:"storefront-worker"`
}

// 空ならイベント送信しない
func (k Kafka) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// AIプロバイダ設定
type AI struct {
	TextProvider string `envconfig:"AI_TEXT_PROVIDER" default:"openai"`

	OpenAIAPIKey      string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	OpenAITextModel   string `envconfig:"OPENAI_TEXT_MODEL" default:"gpt-3.5-turbo"`
	OpenAIVisionModel string `envconfig:"OPENAI_VISION_MODEL" default:"gpt-4o-mini"`

	ReplicateAPIToken     string `envconfig:"REPLICATE_API_TOKEN"`
	ReplicateBaseURL      string `envconfig:"REPLICATE_BASE_URL" default:"https://api.replicate.com/v1"`
	ReplicateModelVersion string `envconfig:"REPLICATE_MODEL_VERSION" default:"39ed52f2a78e934b3ba6e2a89f5b1c712de7dfea535525255b1aa35c5565e08b"`

	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	Timeout time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
}

// Configはアプリ全体の設定
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	GoEnv    string `envconfig:"GO_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"168h"`

	FEURL string `envconfig:"FE_URL" default:"http://localhost:3000"`

	Database Database
	Redis    Redis
	Kafka    Kafka
	AI       AI
}

func (c Config) Env() Environment {
	return ParseEnvironment(c.GoEnv)
}

// ":8080"形式
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Loadは.env（任意）と環境変数から読む
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	//.envは無くてもよい
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	//必須チェック
	if len(cfg.JWTSecret) < 16 {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("JWT_TTL must be positive")
	}
	if cfg.Redis.CartTTL <= 0 {
		return Config{}, fmt.Errorf("CART_TTL must be positive")
	}
	switch cfg.AI.TextProvider {
	case "openai", "gemini":
	default:
		return Config{}, fmt.Errorf("AI_TEXT_PROVIDER must be openai or gemini")
	}

	return cfg, nil
}
