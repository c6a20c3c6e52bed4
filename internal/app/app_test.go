package app

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/yungbote/stackadvisor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
)

func TestSeedDropsCachedCatalog(t *testing.T) {
	ctx := context.Background()
	gdb := testutil.DB(t)
	mr := miniredis.RunT(t)

	// A stale catalog read left behind by a running server.
	stale := []string{"stackadvisor:catalog:active:all", "stackadvisor:catalog:active:frontend"}
	for _, k := range stale {
		if err := mr.Set(k, "[]"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	cfg := Config{RedisAddr: mr.Addr(), CatalogCacheTTL: time.Minute}
	if err := seedAndInvalidate(ctx, gdb, testutil.Logger(t), cfg); err != nil {
		t.Fatalf("seedAndInvalidate: %v", err)
	}

	for _, k := range stale {
		if mr.Exists(k) {
			t.Fatalf("expected %s to be invalidated", k)
		}
	}
	var n int64
	if err := gdb.WithContext(ctx).Model(&types.Technology{}).Count(&n).Error; err != nil {
		t.Fatalf("count technologies: %v", err)
	}
	if n == 0 {
		t.Fatalf("expected seeded technologies")
	}
}

func TestSeedWithoutRedis(t *testing.T) {
	gdb := testutil.DB(t)
	if err := seedAndInvalidate(context.Background(), gdb, testutil.Logger(t), Config{}); err != nil {
		t.Fatalf("seedAndInvalidate: %v", err)
	}
}
