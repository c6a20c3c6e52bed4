package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/stackadvisor-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	hash := "$2a$04$not-a-real-hash"
	now := time.Now().UTC()
	u := &types.User{
		ID:              uuid.New(),
		Email:           email,
		Name:            "Test User",
		PasswordHash:    &hash,
		EmailVerifiedAt: &now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, key types.CategoryKey, name string) *types.TechnologyCategory {
	tb.Helper()
	now := time.Now().UTC()
	c := &types.TechnologyCategory{ID: uuid.New(), Key: key, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedTechnology(tb testing.TB, ctx context.Context, tx *gorm.DB, cat *types.TechnologyCategory, name string, active bool) *types.Technology {
	tb.Helper()
	now := time.Now().UTC()
	t := &types.Technology{
		ID:              uuid.New(),
		Name:            name,
		Slug:            slugFor(name),
		CategoryID:      cat.ID,
		Description:     name + " description",
		KeyFeatures:     datatypes.JSONSlice[string]{"feature"},
		TypicalUseCases: datatypes.JSONSlice[string]{"use case"},
		IsActive:        active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed technology: %v", err)
	}
	t.Category = cat
	return t
}

// SeedCatalog inserts a small catalog covering every category and returns it keyed by name.
func SeedCatalog(tb testing.TB, ctx context.Context, tx *gorm.DB) map[string]*types.Technology {
	tb.Helper()
	fe := SeedCategory(tb, ctx, tx, types.CategoryFrontend, "Frontend Framework")
	be := SeedCategory(tb, ctx, tx, types.CategoryBackend, "Backend Runtime")
	dbc := SeedCategory(tb, ctx, tx, types.CategoryDatabase, "Database")
	lang := SeedCategory(tb, ctx, tx, types.CategoryLanguage, "Programming Language")

	out := map[string]*types.Technology{}
	for _, row := range []struct {
		cat  *types.TechnologyCategory
		name string
	}{
		{fe, "React"}, {fe, "Next.js"},
		{be, "Node.js"},
		{dbc, "PostgreSQL"}, {dbc, "MongoDB"},
		{lang, "TypeScript"}, {lang, "Python"},
	} {
		out[row.name] = SeedTechnology(tb, ctx, tx, row.cat, row.name, true)
	}
	return out
}

func SeedProject(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, req types.Requirements) *types.Project {
	tb.Helper()
	now := time.Now().UTC()
	p := &types.Project{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         name,
		Requirements: datatypes.NewJSONType(req),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return p
}

func slugFor(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
