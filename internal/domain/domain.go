package domain

import (
	"github.com/yungbote/stackadvisor-backend/internal/domain/catalog"
	"github.com/yungbote/stackadvisor-backend/internal/domain/project"
	"github.com/yungbote/stackadvisor-backend/internal/domain/user"
)

type (
	User        = user.User
	UserSummary = user.Summary

	CategoryKey        = catalog.CategoryKey
	TechnologyCategory = catalog.TechnologyCategory
	Technology         = catalog.Technology
	TechnologyTag      = catalog.TechnologyTag
	TechnologyTagLink  = catalog.TechnologyTagLink

	Project          = project.Project
	ProjectWithCount = project.WithCount
	Requirements     = project.Requirements
	Recommendation   = project.Recommendation
	Snapshot         = project.Snapshot
	Bundle           = project.Bundle
	PickSet          = project.PickSet
	AlternativeSet   = project.AlternativeSet
)

const (
	CategoryFrontend = catalog.CategoryFrontend
	CategoryBackend  = catalog.CategoryBackend
	CategoryDatabase = catalog.CategoryDatabase
	CategoryLanguage = catalog.CategoryLanguage

	CurrentRequirementsVersion = project.CurrentRequirementsVersion
)
