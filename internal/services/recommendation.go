package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	projectrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/project"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/modules/recommend"
	"github.com/yungbote/stackadvisor-backend/internal/observability"
	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const msgRecommendationNotFound = "Recommendation not found"

type RecommendationService interface {
	Generate(ctx context.Context, projectID uuid.UUID) (*types.Recommendation, error)
	Latest(ctx context.Context, projectID uuid.UUID) (*types.Recommendation, error)
	History(ctx context.Context, projectID uuid.UUID) ([]*types.Recommendation, error)
	Get(ctx context.Context, projectID, recommendationID uuid.UUID) (*types.Recommendation, error)
}

type recommendationService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects *projectService
	recRepo  projectrepo.RecommendationRepo
	catalog  CatalogService
	matcher  *recommend.Matcher
	insights InsightService
	now      func() time.Time
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	projectRepo projectrepo.ProjectRepo,
	recRepo projectrepo.RecommendationRepo,
	catalog CatalogService,
	matcher *recommend.Matcher,
	insights InsightService,
) RecommendationService {
	return &recommendationService{
		db:  db,
		log: log.With("service", "RecommendationService"),
		projects: &projectService{
			db:          db,
			log:         log.With("service", "ProjectService"),
			projectRepo: projectRepo,
			recRepo:     recRepo,
		},
		recRepo:  recRepo,
		catalog:  catalog,
		matcher:  matcher,
		insights: insights,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (rs *recommendationService) Generate(ctx context.Context, projectID uuid.UUID) (*types.Recommendation, error) {
	ctx, span := observability.StartSpan(ctx, "recommendation.generate",
		attribute.String("project.id", projectID.String()),
	)
	defer span.End()

	userID, p, err := rs.projects.owned(ctx, projectID)
	if err != nil {
		return nil, err
	}

	techs, err := rs.catalog.ListActive(ctx, "")
	if err != nil {
		span.SetStatus(codes.Error, "catalog")
		return nil, err
	}

	req := p.Requirements.Data()
	req.Normalize()

	_, matchSpan := observability.StartSpan(ctx, "recommendation.match",
		attribute.Int("catalog.size", len(techs)),
	)
	bundle := rs.matcher.Match(&req, techs)
	matchSpan.End()

	insightCtx, insightSpan := observability.StartSpan(ctx, "recommendation.insights")
	text := rs.insights.Insights(insightCtx, p)
	insightSpan.SetAttributes(attribute.Bool("insights.placeholder", text == InsightsPlaceholder))
	insightSpan.End()

	generatedAt := rs.now()
	row := &types.Recommendation{
		ProjectID: p.ID,
		UserID:    userID,
		Snapshot: datatypes.NewJSONType(types.Snapshot{
			Bundle:              bundle,
			AIInsights:          text,
			GeneratedAt:         generatedAt,
			ProjectRequirements: req,
		}),
		GeneratedAt: generatedAt,
	}

	persistCtx, persistSpan := observability.StartSpan(ctx, "recommendation.persist")
	saved, err := rs.recRepo.Append(dbctx.Context{Ctx: persistCtx}, row)
	persistSpan.End()
	if err != nil {
		span.SetStatus(codes.Error, "persist")
		return nil, apierr.Internal(fmt.Errorf("append recommendation: %w", err))
	}
	span.SetAttributes(attribute.String("recommendation.id", saved.ID.String()))
	rs.log.Info("Recommendation generated",
		"project_id", p.ID.String(),
		"recommendation_id", saved.ID.String(),
		"catalog_size", len(techs),
	)
	return saved, nil
}

func (rs *recommendationService) Latest(ctx context.Context, projectID uuid.UUID) (*types.Recommendation, error) {
	_, p, err := rs.projects.owned(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rec, err := rs.recRepo.Latest(dbctx.Context{Ctx: ctx}, p.ID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load latest recommendation: %w", err))
	}
	return rec, nil
}

func (rs *recommendationService) History(ctx context.Context, projectID uuid.UUID) ([]*types.Recommendation, error) {
	_, p, err := rs.projects.owned(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rows, err := rs.recRepo.ListByProject(dbctx.Context{Ctx: ctx}, p.ID, 0)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list recommendations: %w", err))
	}
	return rows, nil
}

func (rs *recommendationService) Get(ctx context.Context, projectID, recommendationID uuid.UUID) (*types.Recommendation, error) {
	_, p, err := rs.projects.owned(ctx, projectID)
	if err != nil {
		return nil, err
	}
	rec, err := rs.recRepo.GetByID(dbctx.Context{Ctx: ctx}, p.ID, recommendationID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("load recommendation: %w", err))
	}
	if rec == nil {
		return nil, apierr.NotFound(msgRecommendationNotFound)
	}
	return rec, nil
}
