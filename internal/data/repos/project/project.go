package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type ProjectRepo interface {
	Create(dbc dbctx.Context, rows []*types.Project) ([]*types.Project, error)
	// GetOwned returns the project only when userID owns it.
	GetOwned(dbc dbctx.Context, userID, projectID uuid.UUID) (*types.Project, error)
	// ListByUser returns the user's projects, most recently updated first,
	// each with its recommendation count.
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.ProjectWithCount, error)
	ReplaceRequirements(dbc dbctx.Context, userID, projectID uuid.UUID, req types.Requirements) (bool, error)
}

type projectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProjectRepo(db *gorm.DB, baseLog *logger.Logger) ProjectRepo {
	return &projectRepo{db: db, log: baseLog.With("repo", "ProjectRepo")}
}

func (r *projectRepo) Create(dbc dbctx.Context, rows []*types.Project) ([]*types.Project, error) {
	if len(rows) == 0 {
		return []*types.Project{}, nil
	}
	now := time.Now().UTC()
	for _, p := range rows {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = p.CreatedAt
	}
	if err := dbc.Conn(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *projectRepo) GetOwned(dbc dbctx.Context, userID, projectID uuid.UUID) (*types.Project, error) {
	if userID == uuid.Nil || projectID == uuid.Nil {
		return nil, nil
	}
	var row types.Project
	if err := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", projectID, userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *projectRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.ProjectWithCount, error) {
	t := dbc.Conn(r.db)

	var projects []types.Project
	if err := t.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	out := make([]*types.ProjectWithCount, 0, len(projects))
	if len(projects) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	var counts []struct {
		ProjectID uuid.UUID
		N         int64
	}
	if err := t.Model(&types.Recommendation{}).
		Select("project_id, COUNT(*) AS n").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	byProject := make(map[uuid.UUID]int64, len(counts))
	for _, c := range counts {
		byProject[c.ProjectID] = c.N
	}
	for _, p := range projects {
		out = append(out, &types.ProjectWithCount{Project: p, RecommendationCount: byProject[p.ID]})
	}
	return out, nil
}

func (r *projectRepo) ReplaceRequirements(dbc dbctx.Context, userID, projectID uuid.UUID, req types.Requirements) (bool, error) {
	res := dbc.Conn(r.db).
		Model(&types.Project{}).
		Where("id = ? AND user_id = ?", projectID, userID).
		Updates(map[string]any{
			"requirements": datatypes.NewJSONType(req),
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
