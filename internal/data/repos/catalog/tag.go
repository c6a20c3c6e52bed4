package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type TagRepo interface {
	// Ensure returns a tag per name, creating missing ones. Output order follows names.
	Ensure(dbc dbctx.Context, names []string) ([]types.TechnologyTag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) Ensure(dbc dbctx.Context, names []string) ([]types.TechnologyTag, error) {
	clean := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		clean = append(clean, n)
	}
	if len(clean) == 0 {
		return []types.TechnologyTag{}, nil
	}

	t := dbc.Conn(r.db)
	var existing []types.TechnologyTag
	if err := t.Where("name IN ?", clean).Find(&existing).Error; err != nil {
		return nil, err
	}
	byName := make(map[string]types.TechnologyTag, len(existing))
	for _, tag := range existing {
		byName[tag.Name] = tag
	}

	var missing []types.TechnologyTag
	now := time.Now().UTC()
	for _, n := range clean {
		if _, ok := byName[n]; !ok {
			tag := types.TechnologyTag{ID: uuid.New(), Name: n, CreatedAt: now}
			missing = append(missing, tag)
			byName[n] = tag
		}
	}
	if len(missing) > 0 {
		if err := t.Create(&missing).Error; err != nil {
			return nil, err
		}
	}

	out := make([]types.TechnologyTag, 0, len(clean))
	for _, n := range clean {
		out = append(out, byName[n])
	}
	return out, nil
}
