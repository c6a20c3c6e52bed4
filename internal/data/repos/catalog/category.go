package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type CategoryRepo interface {
	List(dbc dbctx.Context) ([]types.TechnologyCategory, error)
	GetByKey(dbc dbctx.Context, key types.CategoryKey) (*types.TechnologyCategory, error)
	Upsert(dbc dbctx.Context, cat *types.TechnologyCategory) (*types.TechnologyCategory, error)
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return &categoryRepo{db: db, log: baseLog.With("repo", "CategoryRepo")}
}

func (r *categoryRepo) List(dbc dbctx.Context) ([]types.TechnologyCategory, error) {
	var out []types.TechnologyCategory
	if err := dbc.Conn(r.db).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) GetByKey(dbc dbctx.Context, key types.CategoryKey) (*types.TechnologyCategory, error) {
	var row types.TechnologyCategory
	if err := dbc.Conn(r.db).Where(map[string]any{"key": key}).Limit(1).Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *categoryRepo) Upsert(dbc dbctx.Context, cat *types.TechnologyCategory) (*types.TechnologyCategory, error) {
	existing, err := r.GetByKey(dbc, cat.Key)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := dbc.Conn(r.db)
	if existing == nil {
		if cat.ID == uuid.Nil {
			cat.ID = uuid.New()
		}
		if cat.CreatedAt.IsZero() {
			cat.CreatedAt = now
		}
		cat.UpdatedAt = now
		if err := t.Create(cat).Error; err != nil {
			return nil, err
		}
		return cat, nil
	}
	if err := t.Model(&types.TechnologyCategory{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"name":        cat.Name,
			"description": cat.Description,
			"updated_at":  now,
		}).Error; err != nil {
		return nil, err
	}
	existing.Name = cat.Name
	existing.Description = cat.Description
	existing.UpdatedAt = now
	return existing, nil
}
