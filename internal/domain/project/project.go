package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/stackadvisor-backend/internal/domain/catalog"
)

type Project struct {
	ID           uuid.UUID                        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID                        `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`
	Name         string                           `gorm:"not null;column:name" json:"name"`
	Description  string                           `gorm:"column:description" json:"description,omitempty"`
	Requirements datatypes.JSONType[Requirements] `gorm:"column:requirements" json:"requirementsData"`
	CreatedAt    time.Time                        `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time                        `gorm:"not null;index" json:"updatedAt"`
}

func (Project) TableName() string { return "project" }

// Recommendation is one immutable generation result for a project.
type Recommendation struct {
	ID          uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID                    `gorm:"type:uuid;not null;index:idx_recommendation_project_generated,priority:1;column:project_id" json:"projectId"`
	UserID      uuid.UUID                    `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`
	Snapshot    datatypes.JSONType[Snapshot] `gorm:"column:snapshot" json:"recommendationData"`
	GeneratedAt time.Time                    `gorm:"not null;index:idx_recommendation_project_generated,priority:2;column:generated_at" json:"generatedAt"`
}

func (Recommendation) TableName() string { return "recommendation" }

// PickSet holds one technology per category. A nil entry means the rule's
// named pick is not in the catalog.
type PickSet struct {
	Frontend *catalog.Technology `json:"frontend"`
	Backend  *catalog.Technology `json:"backend"`
	Database *catalog.Technology `json:"database"`
	Language *catalog.Technology `json:"language"`
}

type AlternativeSet struct {
	Frontend []catalog.Technology `json:"frontend"`
	Backend  []catalog.Technology `json:"backend"`
	Database []catalog.Technology `json:"database"`
	Language []catalog.Technology `json:"language"`
}

// Bundle is the matcher output. Every list is non-nil so that a category whose
// gate is closed serialises as [] rather than being dropped.
type Bundle struct {
	Frontend     []catalog.Technology `json:"frontend"`
	Backend      []catalog.Technology `json:"backend"`
	Database     []catalog.Technology `json:"database"`
	Languages    []catalog.Technology `json:"languages"`
	BestFit      PickSet              `json:"bestFit"`
	Alternatives AlternativeSet       `json:"alternatives"`
}

// Snapshot is what gets persisted per generation. ProjectRequirements is a
// frozen copy of the inputs, so a snapshot stays reproducible after the
// project's requirements are replaced.
type Snapshot struct {
	Bundle
	AIInsights          string       `json:"aiInsights"`
	GeneratedAt         time.Time    `json:"generatedAt"`
	ProjectRequirements Requirements `json:"projectRequirements"`
}

// WithCount decorates a project with its snapshot count for list views.
type WithCount struct {
	Project
	RecommendationCount int64 `json:"recommendationCount"`
}
