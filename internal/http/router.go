package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/stackadvisor-backend/internal/http/handlers"
	httpMW "github.com/yungbote/stackadvisor-backend/internal/http/middleware"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler         *httpH.HealthHandler
	AuthHandler           *httpH.AuthHandler
	UserHandler           *httpH.UserHandler
	CatalogHandler        *httpH.CatalogHandler
	ProjectHandler        *httpH.ProjectHandler
	RecommendationHandler *httpH.RecommendationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/verify-email", cfg.AuthHandler.VerifyEmail)
		}

		// Catalog (public)
		if cfg.CatalogHandler != nil {
			api.GET("/technologies", cfg.CatalogHandler.ListTechnologies)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
		}

		// Projects
		if cfg.ProjectHandler != nil {
			protected.POST("/projects", cfg.ProjectHandler.Create)
			protected.GET("/projects", cfg.ProjectHandler.List)
			protected.GET("/projects/:id", cfg.ProjectHandler.Get)
			protected.PUT("/projects/:id/requirements", cfg.ProjectHandler.ReplaceRequirements)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.POST("/projects/:id/recommendations", cfg.RecommendationHandler.Generate)
			protected.GET("/projects/:id/recommendations", cfg.RecommendationHandler.List)
			protected.GET("/projects/:id/recommendations/:recId", cfg.RecommendationHandler.Get)
		}
	}

	return r
}
