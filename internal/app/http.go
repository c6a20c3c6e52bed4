package app

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/clients/redis"
	"github.com/yungbote/stackadvisor-backend/internal/http"
	httpH "github.com/yungbote/stackadvisor-backend/internal/http/handlers"
	httpMW "github.com/yungbote/stackadvisor-backend/internal/http/middleware"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Auth           *httpH.AuthHandler
	User           *httpH.UserHandler
	Catalog        *httpH.CatalogHandler
	Project        *httpH.ProjectHandler
	Recommendation *httpH.RecommendationHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, cache redis.Cache, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(db, cache),
		Auth:           httpH.NewAuthHandler(log, services.Auth),
		User:           httpH.NewUserHandler(log, services.User),
		Catalog:        httpH.NewCatalogHandler(log, services.Catalog),
		Project:        httpH.NewProjectHandler(log, services.Project),
		Recommendation: httpH.NewRecommendationHandler(log, services.Recommendation),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewRouter(http.RouterConfig{
		Log:                   log,
		ServiceName:           serviceName,
		AllowedOrigins:        cfg.AllowedOrigins,
		AuthMiddleware:        middleware.Auth,
		HealthHandler:         handlers.Health,
		AuthHandler:           handlers.Auth,
		UserHandler:           handlers.User,
		CatalogHandler:        handlers.Catalog,
		ProjectHandler:        handlers.Project,
		RecommendationHandler: handlers.Recommendation,
	})
}
