package app

import (
	"context"
	"fmt"

	"github.com/yungbote/stackadvisor-backend/internal/clients/redis"
	"github.com/yungbote/stackadvisor-backend/internal/platform/gemini"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/platform/openai"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type Clients struct {
	// Cache is nil when REDIS_ADDR is unset.
	Cache redis.Cache
	// Insights is nil when no provider is configured; the insight service
	// then always returns the placeholder.
	Insights services.TextGenerator
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var out Clients
	cache, err := newCache(log, cfg)
	if err != nil {
		return Clients{}, err
	}
	out.Cache = cache

	gen, err := newTextGenerator(ctx, log, cfg)
	if err != nil {
		out.Close()
		return Clients{}, err
	}
	out.Insights = gen
	return out, nil
}

// newCache returns a nil Cache when REDIS_ADDR is unset.
func newCache(log *logger.Logger, cfg Config) (redis.Cache, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	cache, err := redis.NewCache(log, redis.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("init redis cache: %w", err)
	}
	return cache, nil
}

func newTextGenerator(ctx context.Context, log *logger.Logger, cfg Config) (services.TextGenerator, error) {
	switch cfg.InsightsProvider {
	case InsightsProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, nil
		}
		c, err := openai.NewClient(log, openai.Config{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			Model:      cfg.OpenAIModel,
			Timeout:    cfg.OpenAITimeout,
			MaxRetries: cfg.OpenAIMaxRetries,
		})
		if err != nil {
			return nil, fmt.Errorf("init openai client: %w", err)
		}
		return c, nil
	case InsightsProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set, insights will use the placeholder")
			return nil, nil
		}
		c, err := gemini.NewClient(ctx, log, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init gemini client: %w", err)
		}
		return c, nil
	default:
		return nil, nil
	}
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
