package seed

import (
	"context"
	"testing"

	catalogrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/catalog"
	"github.com/yungbote/stackadvisor-backend/internal/data/repos/testutil"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
)

func TestDefaultCatalogParses(t *testing.T) {
	f, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if len(f.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(f.Categories))
	}
	want := map[string]string{
		"React":      "frontend",
		"Next.js":    "frontend",
		"Node.js":    "backend",
		"PostgreSQL": "database",
		"MongoDB":    "database",
		"TypeScript": "language",
	}
	got := map[string]string{}
	for _, tech := range f.Technologies {
		got[tech.Name] = tech.Category
	}
	for name, cat := range want {
		if got[name] != cat {
			t.Fatalf("%s: expected category %q, got %q", name, cat, got[name])
		}
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"unknown category key", "categories:\n  - key: mobile\n    name: Mobile\n"},
		{"undeclared category", "categories:\n  - key: frontend\n    name: F\ntechnologies:\n  - name: Go\n    slug: go\n    category: language\n"},
		{"duplicate slug", "categories:\n  - key: frontend\n    name: F\ntechnologies:\n  - name: A\n    slug: a\n    category: frontend\n  - name: B\n    slug: a\n    category: frontend\n"},
		{"missing slug", "categories:\n  - key: frontend\n    name: F\ntechnologies:\n  - name: A\n    category: frontend\n"},
		{"not yaml", "categories: [unclosed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.raw)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSeederRunIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	cats := catalogrepo.NewCategoryRepo(db, log)
	techs := catalogrepo.NewTechnologyRepo(db, log)
	tags := catalogrepo.NewTagRepo(db, log)
	s := NewSeeder(db, log, cats, techs, tags)

	f, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	first, err := s.Run(ctx, f)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if first.Technologies != len(f.Technologies) || first.Categories != 4 {
		t.Fatalf("unexpected result %+v", first)
	}

	dbc := dbctx.Context{Ctx: ctx}
	before, err := techs.ListActive(dbc, "")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}

	if _, err := s.Run(ctx, f); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	after, err := techs.ListActive(dbc, "")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(after) != len(before) {
		t.Fatalf("re-seed changed row count: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i].ID != after[i].ID {
			t.Fatalf("re-seed changed id or order at %d: %s vs %s", i, before[i].Slug, after[i].Slug)
		}
	}
	for i, tech := range after {
		if tech.Name != f.Technologies[i].Name {
			t.Fatalf("catalog order should follow the file: got %s at %d, want %s", tech.Name, i, f.Technologies[i].Name)
		}
	}

	react, err := techs.GetBySlug(dbc, "react")
	if err != nil || react == nil {
		t.Fatalf("GetBySlug(react): %+v err %v", react, err)
	}
	if react.LicenseType != "MIT" || react.LearningCurve != "Moderate" || react.CategoryKey() != types.CategoryFrontend {
		t.Fatalf("unexpected react row: %+v", react)
	}
	if len(react.KeyFeatures) != 4 {
		t.Fatalf("key features not stored: %v", react.KeyFeatures)
	}

	for _, tech := range after {
		if tech.Slug == "mongodb" {
			if len(tech.Tags) != 3 {
				t.Fatalf("mongodb tags: %v", tech.Tags)
			}
		}
	}
}
