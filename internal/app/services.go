package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/modules/recommend"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	User           services.UserService
	Catalog        services.CatalogService
	Project        services.ProjectService
	Insights       services.InsightService
	Recommendation services.RecommendationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	auth := services.NewAuthService(db, log, repos.User, services.AuthConfig{
		JWTSecretKey:    cfg.JWTSecretKey,
		TokenTTL:        cfg.TokenTTL,
		BcryptCost:      cfg.BcryptCost,
		AutoVerifyEmail: cfg.AutoVerifyEmail,
	})
	catalog := services.NewCatalogService(db, log, repos.Technology, clients.Cache, cfg.CatalogCacheTTL)
	insights := services.NewInsightService(log, clients.Insights, cfg.InsightsTimeout)

	return Services{
		Auth:     auth,
		User:     services.NewUserService(db, log, repos.User),
		Catalog:  catalog,
		Project:  services.NewProjectService(db, log, repos.Project, repos.Recommendation),
		Insights: insights,
		Recommendation: services.NewRecommendationService(
			db,
			log,
			repos.Project,
			repos.Recommendation,
			catalog,
			recommend.NewMatcher(recommend.DefaultRules()),
			insights,
		),
	}
}
