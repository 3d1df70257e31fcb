package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds the full application configuration.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"development"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	RabbitMQ   RabbitMQConfig
	Auth       AuthConfig
	AI         AIConfig
	Moderation ModerationConfig
	TTS        TTSConfig
	Storage    StorageConfig
}

type ServerConfig struct {
	Port                int    `env:"SERVER_PORT" env-default:"8080"`
	ReadTimeoutSeconds  int    `env:"SERVER_READ_TIMEOUT_SEC" env-default:"15"`
	WriteTimeoutSeconds int    `env:"SERVER_WRITE_TIMEOUT_SEC" env-default:"120"`
	IdleTimeoutSeconds  int    `env:"SERVER_IDLE_TIMEOUT_SEC" env-default:"60"`
	CORSAllowedOrigins  string `env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

// AllowedOrigins splits the configured origin list.
func (c ServerConfig) AllowedOrigins() []string {
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

type DatabaseConfig struct {
	Host               string `env:"DB_HOST" env-default:"localhost"`
	Port               int    `env:"DB_PORT" env-default:"5432"`
	User               string `env:"DB_USER" env-default:"postgres"`
	Password           string `env:"DB_PASSWORD" env-default:""`
	Name               string `env:"DB_NAME" env-default:"babystory"`
	SSLMode            string `env:"DB_SSL_MODE" env-default:"disable"`
	MaxConnections     int    `env:"DB_MAX_CONNECTIONS" env-default:"10"`
	MaxConnIdleMinutes int    `env:"DB_MAX_CONN_IDLE_MINUTES" env-default:"5"`
}

// ConnString builds a pgx connection string.
func (c DatabaseConfig) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR" env-default:""`
	Password  string        `env:"REDIS_PASSWORD" env-default:""`
	DB        int           `env:"REDIS_DB" env-default:"0"`
	PolicyTTL time.Duration `env:"REDIS_POLICY_TTL" env-default:"5m"`
}

// Enabled reports whether a Redis policy cache should be wired at all.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

type RabbitMQConfig struct {
	URL        string `env:"RABBITMQ_URL" env-default:""`
	EventQueue string `env:"RABBITMQ_STORY_EVENT_QUEUE" env-default:"story_events"`
}

// Enabled reports whether the story event publisher should be wired.
func (c RabbitMQConfig) Enabled() bool { return c.URL != "" }

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET" env-required:"true"`
}

// AIConfig configures the text generation engines. Provider selects the
// backend: "openai" talks to any OpenAI-compatible endpoint, "ollama" to a
// local Ollama server.
type AIConfig struct {
	Provider       string        `env:"AI_PROVIDER" env-default:"openai"`
	APIKey         string        `env:"AI_API_KEY" env-default:""`
	BaseURL        string        `env:"AI_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
	Model          string        `env:"AI_MODEL" env-default:"google/gemini-2.0-flash-001"`
	Timeout        time.Duration `env:"AI_TIMEOUT" env-default:"120s"`
	SummaryTimeout time.Duration `env:"AI_SUMMARY_TIMEOUT" env-default:"30s"`
	MaxTokens      int           `env:"AI_MAX_TOKENS" env-default:"8000"`
}

type ModerationConfig struct {
	// Remote classification is optional; the local denylist always runs.
	RemoteEnabled bool          `env:"MODERATION_REMOTE_ENABLED" env-default:"false"`
	Timeout       time.Duration `env:"MODERATION_TIMEOUT" env-default:"10s"`
	// Denylist overrides the built-in word set when non-empty
	// (comma-separated).
	Denylist string `env:"MODERATION_DENYLIST" env-default:""`
}

// DenylistWords returns the configured denylist override, or nil.
func (c ModerationConfig) DenylistWords() []string {
	if c.Denylist == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.Denylist, " ", ""), ",")
}

type TTSConfig struct {
	Voice   string        `env:"TTS_VOICE" env-default:"nova"`
	Model   string        `env:"TTS_MODEL" env-default:"tts-1"`
	Timeout time.Duration `env:"TTS_TIMEOUT" env-default:"60s"`
	TempDir string        `env:"TTS_TEMP_DIR" env-default:""`
}

type StorageConfig struct {
	Bucket        string        `env:"AUDIO_GCS_BUCKET" env-default:""`
	PublicBaseURL string        `env:"AUDIO_PUBLIC_BASE_URL" env-default:""`
	UploadTimeout time.Duration `env:"AUDIO_UPLOAD_TIMEOUT" env-default:"60s"`
}

// Enabled reports whether narration uploads have somewhere to go.
func (c StorageConfig) Enabled() bool { return c.Bucket != "" }

// Load reads configuration from the environment, loading .env first when
// present (production deployments get env vars from the orchestrator and
// ship no .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("error loading configuration: %w", err)
	}
	return &cfg, nil
}
