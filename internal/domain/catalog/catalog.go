package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CategoryKey is the fixed set of buckets the matcher recommends within.
type CategoryKey string

const (
	CategoryFrontend CategoryKey = "frontend"
	CategoryBackend  CategoryKey = "backend"
	CategoryDatabase CategoryKey = "database"
	CategoryLanguage CategoryKey = "language"
)

func (k CategoryKey) Valid() bool {
	switch k {
	case CategoryFrontend, CategoryBackend, CategoryDatabase, CategoryLanguage:
		return true
	}
	return false
}

type TechnologyCategory struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Key         CategoryKey `gorm:"uniqueIndex;not null;column:key" json:"key"`
	Name        string      `gorm:"not null;column:name" json:"name"`
	Description string      `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time   `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updatedAt"`
}

func (TechnologyCategory) TableName() string { return "technology_category" }

type Technology struct {
	ID         uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string              `gorm:"not null;column:name" json:"name"`
	Slug       string              `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	CategoryID uuid.UUID           `gorm:"type:uuid;not null;index;column:category_id" json:"categoryId"`
	Category   *TechnologyCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	Description      string `gorm:"column:description" json:"description,omitempty"`
	WebsiteURL       string `gorm:"column:website_url" json:"websiteUrl,omitempty"`
	DocumentationURL string `gorm:"column:documentation_url" json:"documentationUrl,omitempty"`
	RepositoryURL    string `gorm:"column:repository_url" json:"repositoryUrl,omitempty"`
	LicenseType      string `gorm:"column:license_type" json:"licenseType,omitempty"`

	KeyFeatures     datatypes.JSONSlice[string] `gorm:"column:key_features" json:"keyFeatures"`
	TypicalUseCases datatypes.JSONSlice[string] `gorm:"column:typical_use_cases" json:"typicalUseCases"`

	Advantages             string `gorm:"column:advantages" json:"advantages,omitempty"`
	Disadvantages          string `gorm:"column:disadvantages" json:"disadvantages,omitempty"`
	CommunitySupportInfo   string `gorm:"column:community_support_info" json:"communitySupportInfo,omitempty"`
	LearningCurve          string `gorm:"column:learning_curve" json:"learningCurve,omitempty"`
	PerformanceNotes       string `gorm:"column:performance_notes" json:"performanceNotes,omitempty"`
	ScalabilityNotes       string `gorm:"column:scalability_notes" json:"scalabilityNotes,omitempty"`
	IntegrationNotes       string `gorm:"column:integration_notes" json:"integrationNotes,omitempty"`
	SecurityConsiderations string `gorm:"column:security_considerations" json:"securityConsiderations,omitempty"`

	IsActive bool `gorm:"not null;column:is_active" json:"isActive"`
	// Tags is filled by the catalog repo from technology_tag_link.
	Tags []string `gorm:"-" json:"tags,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Technology) TableName() string { return "technology" }

// CategoryKey returns the key of the preloaded category, or "" when not loaded.
func (t *Technology) CategoryKey() CategoryKey {
	if t == nil || t.Category == nil {
		return ""
	}
	return t.Category.Key
}

type TechnologyTag struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

func (TechnologyTag) TableName() string { return "technology_tag" }

type TechnologyTagLink struct {
	TechnologyID uuid.UUID `gorm:"type:uuid;primaryKey;column:technology_id"`
	TagID        uuid.UUID `gorm:"type:uuid;primaryKey;column:tag_id"`
}

func (TechnologyTagLink) TableName() string { return "technology_tag_link" }
