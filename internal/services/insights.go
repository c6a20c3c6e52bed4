package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const (
	InsightsPlaceholder = "AI insights are currently unavailable. Please try again later."

	insightsSystemPrompt = "You are an expert software architect providing practical advice for system design."
)

// TextGenerator is any provider that turns a system and a user prompt into text.
type TextGenerator interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type InsightService interface {
	// Insights never fails. Any provider problem yields InsightsPlaceholder.
	Insights(ctx context.Context, p *types.Project) string
}

type insightService struct {
	log     *logger.Logger
	gen     TextGenerator
	timeout time.Duration
}

// NewInsightService accepts a nil generator, in which case every call returns
// the placeholder.
func NewInsightService(log *logger.Logger, gen TextGenerator, timeout time.Duration) InsightService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &insightService{
		log:     log.With("service", "InsightService"),
		gen:     gen,
		timeout: timeout,
	}
}

func BuildInsightsPrompt(p *types.Project) string {
	req := p.Requirements.Data()
	raw, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		raw = []byte("{}")
	}
	var b strings.Builder
	b.WriteString("Based on these project requirements, provide 3-4 key architectural insights and best practices:\n\n")
	fmt.Fprintf(&b, "Project: %s\n", p.Name)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Requirements: %s\n\n", raw)
	b.WriteString("Focus on:\n")
	b.WriteString("1. Architectural patterns that would work well\n")
	b.WriteString("2. Performance considerations\n")
	b.WriteString("3. Security best practices\n")
	b.WriteString("4. Scalability recommendations\n\n")
	b.WriteString("Keep the response concise and actionable.")
	return b.String()
}

func (is *insightService) Insights(ctx context.Context, p *types.Project) (out string) {
	if is.gen == nil || p == nil {
		return InsightsPlaceholder
	}
	defer func() {
		if r := recover(); r != nil {
			is.log.Error("insight provider panicked", "panic", fmt.Sprint(r))
			out = InsightsPlaceholder
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, is.timeout)
	defer cancel()

	start := time.Now()
	text, err := is.gen.GenerateText(ctx, insightsSystemPrompt, BuildInsightsPrompt(p))
	if err != nil {
		is.log.Warn("insight generation failed",
			"project_id", p.ID.String(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return InsightsPlaceholder
	}
	text = strings.TrimSpace(text)
	if text == "" {
		is.log.Warn("insight generation returned empty text", "project_id", p.ID.String())
		return InsightsPlaceholder
	}
	return text
}
