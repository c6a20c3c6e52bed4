package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type TechnologyRepo interface {
	// ListActive returns active technologies with Category and Tags loaded,
	// in catalog order. An empty key returns every category.
	ListActive(dbc dbctx.Context, key types.CategoryKey) ([]types.Technology, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.Technology, error)
	Upsert(dbc dbctx.Context, tech *types.Technology) (*types.Technology, error)
	SetTags(dbc dbctx.Context, technologyID uuid.UUID, tagIDs []uuid.UUID) error
}

type technologyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTechnologyRepo(db *gorm.DB, baseLog *logger.Logger) TechnologyRepo {
	return &technologyRepo{db: db, log: baseLog.With("repo", "TechnologyRepo")}
}

func (r *technologyRepo) ListActive(dbc dbctx.Context, key types.CategoryKey) ([]types.Technology, error) {
	t := dbc.Conn(r.db)

	q := t.Model(&types.Technology{}).
		Preload("Category").
		Where("technology.is_active = ?", true)
	if key != "" {
		sub := t.Model(&types.TechnologyCategory{}).
			Select("id").
			Where(map[string]any{"key": key})
		q = q.Where("technology.category_id IN (?)", sub)
	}
	var rows []types.Technology
	if err := q.Order("technology.created_at ASC").Order("technology.slug ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []types.Technology{}, nil
	}
	if err := r.attachTags(t, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *technologyRepo) attachTags(t *gorm.DB, rows []types.Technology) error {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	var links []struct {
		TechnologyID uuid.UUID
		Name         string
	}
	if err := t.Table("technology_tag_link").
		Select("technology_tag_link.technology_id AS technology_id, technology_tag.name AS name").
		Joins("JOIN technology_tag ON technology_tag.id = technology_tag_link.tag_id").
		Where("technology_tag_link.technology_id IN ?", ids).
		Order("technology_tag.name ASC").
		Scan(&links).Error; err != nil {
		return err
	}
	byTech := make(map[uuid.UUID][]string, len(rows))
	for _, l := range links {
		byTech[l.TechnologyID] = append(byTech[l.TechnologyID], l.Name)
	}
	for i := range rows {
		rows[i].Tags = byTech[rows[i].ID]
	}
	return nil
}

func (r *technologyRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.Technology, error) {
	if slug == "" {
		return nil, nil
	}
	var row types.Technology
	if err := dbc.Conn(r.db).
		Preload("Category").
		Where("slug = ?", slug).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// Upsert inserts tech or overwrites the row with the same slug, keeping its id
// and created_at.
func (r *technologyRepo) Upsert(dbc dbctx.Context, tech *types.Technology) (*types.Technology, error) {
	t := dbc.Conn(r.db)
	now := time.Now().UTC()

	var existing types.Technology
	if err := t.Where("slug = ?", tech.Slug).Limit(1).Find(&existing).Error; err != nil {
		return nil, err
	}
	if existing.ID == uuid.Nil {
		if tech.ID == uuid.Nil {
			tech.ID = uuid.New()
		}
		if tech.CreatedAt.IsZero() {
			tech.CreatedAt = now
		}
		tech.UpdatedAt = now
		if err := t.Omit("Category").Create(tech).Error; err != nil {
			return nil, err
		}
		return tech, nil
	}

	tech.ID = existing.ID
	tech.CreatedAt = existing.CreatedAt
	tech.UpdatedAt = now
	if err := t.Omit("Category").Save(tech).Error; err != nil {
		return nil, err
	}
	return tech, nil
}

func (r *technologyRepo) SetTags(dbc dbctx.Context, technologyID uuid.UUID, tagIDs []uuid.UUID) error {
	t := dbc.Conn(r.db)
	if err := t.Where("technology_id = ?", technologyID).Delete(&types.TechnologyTagLink{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]types.TechnologyTagLink, 0, len(tagIDs))
	seen := map[uuid.UUID]bool{}
	for _, id := range tagIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		links = append(links, types.TechnologyTagLink{TechnologyID: technologyID, TagID: id})
	}
	return t.Create(&links).Error
}
