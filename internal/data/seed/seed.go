package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/catalog"
	types "github.com/yungbote/stackadvisor-backend/internal/domain"
	"github.com/yungbote/stackadvisor-backend/internal/platform/dbctx"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

//go:embed catalog.yaml
var catalogYAML []byte

type File struct {
	Categories   []CategoryEntry   `yaml:"categories"`
	Technologies []TechnologyEntry `yaml:"technologies"`
}

type CategoryEntry struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type TechnologyEntry struct {
	Name                   string   `yaml:"name"`
	Slug                   string   `yaml:"slug"`
	Category               string   `yaml:"category"`
	Description            string   `yaml:"description"`
	WebsiteURL             string   `yaml:"websiteUrl"`
	DocumentationURL       string   `yaml:"documentationUrl"`
	RepositoryURL          string   `yaml:"repositoryUrl"`
	LicenseType            string   `yaml:"licenseType"`
	KeyFeatures            []string `yaml:"keyFeatures"`
	TypicalUseCases        []string `yaml:"typicalUseCases"`
	Advantages             string   `yaml:"advantages"`
	Disadvantages          string   `yaml:"disadvantages"`
	CommunitySupportInfo   string   `yaml:"communitySupportInfo"`
	LearningCurve          string   `yaml:"learningCurve"`
	PerformanceNotes       string   `yaml:"performanceNotes"`
	ScalabilityNotes       string   `yaml:"scalabilityNotes"`
	IntegrationNotes       string   `yaml:"integrationNotes"`
	SecurityConsiderations string   `yaml:"securityConsiderations"`
	Inactive               bool     `yaml:"inactive"`
	Tags                   []string `yaml:"tags"`
}

// Result counts what a Run touched.
type Result struct {
	Categories   int
	Technologies int
	Tags         int
}

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*File, error) {
	return Parse(catalogYAML)
}

func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) validate() error {
	keys := map[string]bool{}
	for _, c := range f.Categories {
		if !types.CategoryKey(c.Key).Valid() {
			return fmt.Errorf("catalog: unknown category key %q", c.Key)
		}
		keys[c.Key] = true
	}
	slugs := map[string]bool{}
	for _, t := range f.Technologies {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.Slug) == "" {
			return fmt.Errorf("catalog: technology needs name and slug")
		}
		if slugs[t.Slug] {
			return fmt.Errorf("catalog: duplicate slug %q", t.Slug)
		}
		slugs[t.Slug] = true
		if !keys[t.Category] {
			return fmt.Errorf("catalog: %s references undeclared category %q", t.Slug, t.Category)
		}
	}
	return nil
}

type Seeder struct {
	db         *gorm.DB
	log        *logger.Logger
	categories catalogrepo.CategoryRepo
	techs      catalogrepo.TechnologyRepo
	tags       catalogrepo.TagRepo
}

func NewSeeder(
	db *gorm.DB,
	baseLog *logger.Logger,
	categories catalogrepo.CategoryRepo,
	techs catalogrepo.TechnologyRepo,
	tags catalogrepo.TagRepo,
) *Seeder {
	return &Seeder{
		db:         db,
		log:        baseLog.With("component", "CatalogSeeder"),
		categories: categories,
		techs:      techs,
		tags:       tags,
	}
}

// Run upserts f in one transaction. Re-running is idempotent: rows are matched
// by category key and technology slug, and tag links are replaced.
func (s *Seeder) Run(ctx context.Context, f *File) (Result, error) {
	var res Result
	if f == nil {
		return res, fmt.Errorf("catalog required")
	}
	// Later entries get later created_at so catalog order follows the file.
	base := time.Now().UTC().Add(-time.Duration(len(f.Technologies)) * time.Second)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		catIDs := map[string]*types.TechnologyCategory{}
		for i, c := range f.Categories {
			row, err := s.categories.Upsert(dbc, &types.TechnologyCategory{
				Key:         types.CategoryKey(c.Key),
				Name:        c.Name,
				Description: c.Description,
				CreatedAt:   base.Add(time.Duration(i) * time.Millisecond),
			})
			if err != nil {
				return fmt.Errorf("upsert category %s: %w", c.Key, err)
			}
			catIDs[c.Key] = row
			res.Categories++
		}

		tagSeen := map[string]bool{}
		for i, e := range f.Technologies {
			cat := catIDs[e.Category]
			tech, err := s.techs.Upsert(dbc, &types.Technology{
				Name:                   e.Name,
				Slug:                   e.Slug,
				CategoryID:             cat.ID,
				Description:            e.Description,
				WebsiteURL:             e.WebsiteURL,
				DocumentationURL:       e.DocumentationURL,
				RepositoryURL:          e.RepositoryURL,
				LicenseType:            e.LicenseType,
				KeyFeatures:            datatypes.JSONSlice[string](nonNil(e.KeyFeatures)),
				TypicalUseCases:        datatypes.JSONSlice[string](nonNil(e.TypicalUseCases)),
				Advantages:             e.Advantages,
				Disadvantages:          e.Disadvantages,
				CommunitySupportInfo:   e.CommunitySupportInfo,
				LearningCurve:          e.LearningCurve,
				PerformanceNotes:       e.PerformanceNotes,
				ScalabilityNotes:       e.ScalabilityNotes,
				IntegrationNotes:       e.IntegrationNotes,
				SecurityConsiderations: e.SecurityConsiderations,
				IsActive:               !e.Inactive,
				CreatedAt:              base.Add(time.Duration(i) * time.Second),
			})
			if err != nil {
				return fmt.Errorf("upsert technology %s: %w", e.Slug, err)
			}

			tagRows, err := s.tags.Ensure(dbc, e.Tags)
			if err != nil {
				return fmt.Errorf("ensure tags for %s: %w", e.Slug, err)
			}
			if err := s.techs.SetTags(dbc, tech.ID, tagIDs(tagRows)); err != nil {
				return fmt.Errorf("link tags for %s: %w", e.Slug, err)
			}
			for _, t := range tagRows {
				tagSeen[t.Name] = true
			}
			res.Technologies++
		}
		res.Tags = len(tagSeen)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	s.log.Info("Catalog seeded",
		"categories", res.Categories,
		"technologies", res.Technologies,
		"tags", res.Tags,
	)
	return res, nil
}

func tagIDs(rows []types.TechnologyTag) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
