package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/stackadvisor-backend/internal/data/db"
	"github.com/yungbote/stackadvisor-backend/internal/observability"
	"github.com/yungbote/stackadvisor-backend/internal/platform/envutil"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

const (
	InsightsProviderOpenAI = "openai"
	InsightsProviderGemini = "gemini"
	InsightsProviderNone   = "none"
)

type Config struct {
	Port    string
	LogMode string

	DB db.Config

	JWTSecretKey    string
	TokenTTL        time.Duration
	BcryptCost      int
	AutoVerifyEmail bool

	InsightsProvider string
	InsightsTimeout  time.Duration
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	OpenAITimeout    time.Duration
	OpenAIMaxRetries int
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CatalogCacheTTL time.Duration
	SeedOnBoot      bool

	AllowedOrigins []string

	Otel observability.OtelConfig
}

// loadEnvFile reads .env into the process environment when present. Variables
// already set win.
func loadEnvFile() error {
	return godotenv.Load()
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:    envutil.String("PORT", "8080"),
		LogMode: envutil.String("LOG_MODE", "development"),

		DB: db.Config{
			Driver:        strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
			DSN:           envutil.String("POSTGRES_DSN", ""),
			Host:          envutil.String("POSTGRES_HOST", "localhost"),
			Port:          envutil.String("POSTGRES_PORT", "5432"),
			User:          envutil.String("POSTGRES_USER", "postgres"),
			Password:      envutil.String("POSTGRES_PASSWORD", ""),
			Name:          envutil.String("POSTGRES_NAME", "stackadvisor"),
			SSLMode:       envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:    envutil.String("SQLITE_PATH", "stackadvisor.db"),
			MaxOpenConns:  envutil.Int("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  envutil.Int("DB_MAX_IDLE_CONNS", 10),
			SlowThreshold: envutil.Seconds("DB_SLOW_QUERY_SECONDS", time.Second),
		},

		JWTSecretKey:    envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		TokenTTL:        envutil.Seconds("AUTH_TOKEN_TTL", 7*24*time.Hour),
		BcryptCost:      envutil.Int("AUTH_BCRYPT_COST", 12),
		AutoVerifyEmail: envutil.Bool("AUTH_AUTO_VERIFY_EMAIL", true),

		InsightsProvider: strings.ToLower(envutil.String("INSIGHTS_PROVIDER", InsightsProviderOpenAI)),
		InsightsTimeout:  envutil.Seconds("INSIGHTS_TIMEOUT_SECONDS", 30*time.Second),
		OpenAIAPIKey:     envutil.String("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIModel:      envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout:    envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 60*time.Second),
		OpenAIMaxRetries: envutil.Int("OPENAI_MAX_RETRIES", 0),
		GeminiAPIKey:     envutil.String("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.String("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:    envutil.String("GEMINI_BASE_URL", ""),

		RedisAddr:       envutil.String("REDIS_ADDR", ""),
		RedisPassword:   envutil.String("REDIS_PASSWORD", ""),
		RedisDB:         envutil.Int("REDIS_DB", 0),
		CatalogCacheTTL: envutil.Seconds("CATALOG_CACHE_TTL_SECONDS", 5*time.Minute),
		SeedOnBoot:      envutil.Bool("CATALOG_SEED_ON_BOOT", true),

		AllowedOrigins: envutil.List("CORS_ALLOWED_ORIGINS", nil),

		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "stackadvisor-api"),
			Environment: envutil.String("OTEL_ENVIRONMENT", envutil.String("LOG_MODE", "development")),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: float64(envutil.Int("OTEL_SAMPLE_PERCENT", 100)) / 100,
		},
	}

	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set, using the development default")
	}
	if cfg.InsightsProvider == InsightsProviderOpenAI && cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY not set, insights will use the placeholder")
	}
	return cfg
}

func (c Config) Validate() error {
	if c.LogMode == "production" && c.JWTSecretKey == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET_KEY must be set in production")
	}
	switch c.DB.Driver {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	switch c.InsightsProvider {
	case InsightsProviderOpenAI, InsightsProviderGemini, InsightsProviderNone:
	default:
		return fmt.Errorf("unsupported INSIGHTS_PROVIDER %q", c.InsightsProvider)
	}
	return nil
}
