package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/clients/redis"
	catalogrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/catalog"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/apierr"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

const (
	catalogCacheKeyPrefix = "catalog:active:"
	catalogFillTimeout    = 10 * time.Second
)

type CatalogService interface {
	// ListActive returns the active catalog in catalog order. An empty key
	// returns every category.
	ListActive(ctx context.Context, key types.CategoryKey) ([]types.Technology, error)
	Invalidate(ctx context.Context) error
}

type catalogService struct {
	db       *gorm.DB
	log      *logger.Logger
	techRepo catalogrepo.TechnologyRepo
	cache    redis.Cache
	ttl      time.Duration
	group    singleflight.Group
}

// NewCatalogService reads through cache when it is non-nil.
func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	techRepo catalogrepo.TechnologyRepo,
	cache redis.Cache,
	ttl time.Duration,
) CatalogService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &catalogService{
		db:       db,
		log:      log.With("service", "CatalogService"),
		techRepo: techRepo,
		cache:    cache,
		ttl:      ttl,
	}
}

func cacheKeyFor(key types.CategoryKey) string {
	if key == "" {
		return catalogCacheKeyPrefix + "all"
	}
	return catalogCacheKeyPrefix + string(key)
}

func (cs *catalogService) ListActive(ctx context.Context, key types.CategoryKey) ([]types.Technology, error) {
	if key != "" && !key.Valid() {
		return nil, apierr.Validation("Unknown technology category")
	}
	ck := cacheKeyFor(key)

	if cs.cache != nil {
		var cached []types.Technology
		err := cs.cache.Get(ctx, ck, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redis.ErrMiss) {
			cs.log.Warn("catalog cache read failed", "key", ck, "error", err)
		}
	}

	v, err, _ := cs.group.Do(ck, func() (any, error) {
		// The fill is shared by every waiter on ck, so it must not die with
		// the caller that happened to start it.
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogFillTimeout)
		defer cancel()

		rows, err := cs.techRepo.ListActive(dbctx.Context{Ctx: fillCtx}, key)
		if err != nil {
			return nil, err
		}
		if cs.cache != nil {
			if err := cs.cache.Set(fillCtx, ck, rows, cs.ttl); err != nil {
				cs.log.Warn("catalog cache write failed", "key", ck, "error", err)
			}
		}
		return rows, nil
	})
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("list catalog: %w", err))
	}
	return v.([]types.Technology), nil
}

func (cs *catalogService) Invalidate(ctx context.Context) error {
	if cs.cache == nil {
		return nil
	}
	keys := []string{cacheKeyFor("")}
	for _, k := range []types.CategoryKey{types.CategoryFrontend, types.CategoryBackend, types.CategoryDatabase, types.CategoryLanguage} {
		keys = append(keys, cacheKeyFor(k))
	}
	return cs.cache.Delete(ctx, keys...)
}
