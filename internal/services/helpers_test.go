package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/catalog"
	projectrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/project"
	"github.com/yungbote/stackadvisor-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/user"
	"github.com/yungbote/stackadvisor-backend/internal/modules/recommend"
	"github.com/yungbote/stackadvisor-backend/internal/platform/ctxutil"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type stubGenerator struct {
	text  string
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (g *stubGenerator) GenerateText(ctx context.Context, system string, user string) (string, error) {
	g.calls.Add(1)
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return g.text, g.err
}

var errProviderDown = errors.New("provider down")

type fixture struct {
	db       *gorm.DB
	log      *logger.Logger
	users    userrepo.UserRepo
	projects projectrepo.ProjectRepo
	recs     projectrepo.RecommendationRepo
	techs    catalogrepo.TechnologyRepo
	auth     AuthService
	project  ProjectService
	catalog  CatalogService
	gen      *stubGenerator
	recSvc   *recommendationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	f := &fixture{
		db:       db,
		log:      log,
		users:    userrepo.NewUserRepo(db, log),
		projects: projectrepo.NewProjectRepo(db, log),
		recs:     projectrepo.NewRecommendationRepo(db, log),
		techs:    catalogrepo.NewTechnologyRepo(db, log),
		gen:      &stubGenerator{text: "Use a modular monolith."},
	}
	f.auth = NewAuthService(db, log, f.users, AuthConfig{
		JWTSecretKey:    "test-secret",
		TokenTTL:        time.Hour,
		BcryptCost:      4,
		AutoVerifyEmail: true,
	})
	f.project = NewProjectService(db, log, f.projects, f.recs)
	f.catalog = NewCatalogService(db, log, f.techs, nil, time.Minute)
	insights := NewInsightService(log, f.gen, time.Second)
	f.recSvc = NewRecommendationService(db, log, f.projects, f.recs, f.catalog,
		recommend.NewMatcher(recommend.DefaultRules()), insights).(*recommendationService)
	return f
}

func asUser(id uuid.UUID) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: id})
}
