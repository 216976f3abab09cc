package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/BruksfildServices01/booking-assistant/internal/timezone"
)

// DefaultJWTSecret is only good for local development; admin routes stay
// closed while it is in use.
const DefaultJWTSecret = "changeme"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set in production")

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	Env        string `mapstructure:"ENV"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	Timezone   string `mapstructure:"TIMEZONE"`

	// Database
	DBDriver string `mapstructure:"DB_DRIVER"`
	DBUrl    string `mapstructure:"DATABASE_URL"`
	DBPath   string `mapstructure:"DB_PATH"`

	// Gemini
	GeminiAPIKey   string `mapstructure:"GEMINI_API_KEY"`
	LLMModel       string `mapstructure:"LLM_MODEL"`
	EmbeddingModel string `mapstructure:"EMBEDDING_MODEL"`

	// SMTP
	SMTPServer   string `mapstructure:"SMTP_SERVER"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`

	// Web search
	WebSearchEnabled bool   `mapstructure:"WEB_SEARCH_ENABLED"`
	WebSearchURL     string `mapstructure:"WEB_SEARCH_URL"`

	// RAG
	ChunkSize    int `mapstructure:"CHUNK_SIZE"`
	ChunkOverlap int `mapstructure:"CHUNK_OVERLAP"`

	// Conversation memory
	MaxMemoryMessages     int `mapstructure:"MAX_MEMORY_MESSAGES"`
	MemoryContextMessages int `mapstructure:"MEMORY_CONTEXT_MESSAGES"`
	MemoryTTLMinutes      int `mapstructure:"MEMORY_TTL_MINUTES"`

	// Redis (memory store + email retry queue)
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Uploaded documents
	StorageDriver      string `mapstructure:"STORAGE_DRIVER"`
	StorageDir         string `mapstructure:"STORAGE_DIR"`
	S3Bucket           string `mapstructure:"S3_BUCKET"`
	S3Region           string `mapstructure:"S3_REGION"`
	S3Endpoint         string `mapstructure:"S3_ENDPOINT"`
	AWSAccessKeyID     string `mapstructure:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `mapstructure:"AWS_SECRET_ACCESS_KEY"`

	// Admin
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
	RateLimitPerMin   int    `mapstructure:"RATE_LIMIT_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ALLOWED_ORIGINS"`

	// Event
	EventName      string `mapstructure:"EVENT_NAME"`
	EventLeadDays  int    `mapstructure:"EVENT_LEAD_DAYS"`
	EventStartTime string `mapstructure:"EVENT_START_TIME"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", timezone.DefaultTimezone)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_PATH", "bookings.db")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("LLM_MODEL", "gemini-1.5-flash")
	v.SetDefault("EMBEDDING_MODEL", "models/gemini-embedding-001")

	v.SetDefault("SMTP_SERVER", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("EMAIL_FROM", "")

	v.SetDefault("WEB_SEARCH_ENABLED", true)
	v.SetDefault("WEB_SEARCH_URL", "https://api.duckduckgo.com/")

	v.SetDefault("CHUNK_SIZE", 1000)
	v.SetDefault("CHUNK_OVERLAP", 200)

	v.SetDefault("MAX_MEMORY_MESSAGES", 25)
	v.SetDefault("MEMORY_CONTEXT_MESSAGES", 10)
	v.SetDefault("MEMORY_TTL_MINUTES", 120)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_DIR", "uploads")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("ADMIN_EMAIL", "admin@example.com")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("RATE_LIMIT_PER_MIN", 60)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("EVENT_NAME", "Gates Of Argonath")
	v.SetDefault("EVENT_LEAD_DAYS", 30)
	v.SetDefault("EVENT_START_TIME", "09:00")
}

// Load reads .env (if any), an optional config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUsername
	}
	cfg.DBDriver = strings.ToLower(strings.TrimSpace(cfg.DBDriver))
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))

	if !timezone.IsValid(cfg.Timezone) {
		return nil, fmt.Errorf("invalid TIMEZONE %q", cfg.Timezone)
	}
	if cfg.IsProduction() && !cfg.customJWTSecret() {
		return nil, ErrDefaultJWTSecret
	}

	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) EmailConfigured() bool {
	return c.SMTPUsername != "" && c.SMTPPassword != ""
}

func (c *Config) customJWTSecret() bool {
	return c.JWTSecret != "" && c.JWTSecret != DefaultJWTSecret
}

// AdminEnabled is false until both a password hash and a real JWT secret
// are configured.
func (c *Config) AdminEnabled() bool {
	return c.AdminPasswordHash != "" && c.customJWTSecret()
}

func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
