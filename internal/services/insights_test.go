package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type panickingGenerator struct{}

func (panickingGenerator) GenerateText(context.Context, string, string) (string, error) {
	panic("boom")
}

func sampleProject() *types.Project {
	return &types.Project{
		Name:        "Ledger",
		Description: "Bookkeeping for small shops",
		Requirements: datatypes.NewJSONType(types.Requirements{
			Version:          1,
			ApplicationTypes: []string{"Web Application"},
		}),
	}
}

func TestBuildInsightsPrompt(t *testing.T) {
	prompt := BuildInsightsPrompt(sampleProject())
	assert.True(t, strings.HasPrefix(prompt, "Based on these project requirements, provide 3-4 key architectural insights and best practices:\n\nProject: Ledger\nDescription: Bookkeeping for small shops\nRequirements: {\n  \"version\": 1,"))
	assert.Contains(t, prompt, "\"applicationTypes\": [\n    \"Web Application\"\n  ]")
	assert.Contains(t, prompt, "4. Scalability recommendations\n\nKeep the response concise and actionable.")
}

func TestInsights_NeverFails(t *testing.T) {
	log := logger.NewNop()
	cases := []struct {
		name string
		gen  TextGenerator
		want string
	}{
		{"ok", &stubGenerator{text: "  Cache reads.  "}, "Cache reads."},
		{"error", &stubGenerator{err: errProviderDown}, InsightsPlaceholder},
		{"empty", &stubGenerator{text: "   "}, InsightsPlaceholder},
		{"timeout", &stubGenerator{text: "late", delay: time.Second}, InsightsPlaceholder},
		{"panic", panickingGenerator{}, InsightsPlaceholder},
		{"no provider", nil, InsightsPlaceholder},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewInsightService(log, tc.gen, 50*time.Millisecond)
			assert.Equal(t, tc.want, svc.Insights(context.Background(), sampleProject()))
		})
	}
}
