package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

// RecommendationRepo is append-only: snapshots are never updated or deleted.
type RecommendationRepo interface {
	Append(dbc dbctx.Context, row *types.Recommendation) (*types.Recommendation, error)
	Latest(dbc dbctx.Context, projectID uuid.UUID) (*types.Recommendation, error)
	ListByProject(dbc dbctx.Context, projectID uuid.UUID, limit int) ([]*types.Recommendation, error)
	GetByID(dbc dbctx.Context, projectID, recommendationID uuid.UUID) (*types.Recommendation, error)
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

// Append assigns a time-ordered UUIDv7 so that id breaks generated_at ties in
// insertion order.
func (r *recommendationRepo) Append(dbc dbctx.Context, row *types.Recommendation) (*types.Recommendation, error) {
	if row.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, err
		}
		row.ID = id
	}
	if row.GeneratedAt.IsZero() {
		row.GeneratedAt = time.Now().UTC()
	}
	if err := dbc.Conn(r.db).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *recommendationRepo) newestFirst(dbc dbctx.Context, projectID uuid.UUID) *gorm.DB {
	return dbc.Conn(r.db).
		Where("project_id = ?", projectID).
		Order("generated_at DESC").
		Order("id DESC")
}

func (r *recommendationRepo) Latest(dbc dbctx.Context, projectID uuid.UUID) (*types.Recommendation, error) {
	rows, err := r.ListByProject(dbc, projectID, 1)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ListByProject returns snapshots newest first. limit <= 0 means all.
func (r *recommendationRepo) ListByProject(dbc dbctx.Context, projectID uuid.UUID, limit int) ([]*types.Recommendation, error) {
	out := []*types.Recommendation{}
	if projectID == uuid.Nil {
		return out, nil
	}
	q := r.newestFirst(dbc, projectID)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendationRepo) GetByID(dbc dbctx.Context, projectID, recommendationID uuid.UUID) (*types.Recommendation, error) {
	if projectID == uuid.Nil || recommendationID == uuid.Nil {
		return nil, nil
	}
	var row types.Recommendation
	if err := dbc.Conn(r.db).
		Where("id = ? AND project_id = ?", recommendationID, projectID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}
