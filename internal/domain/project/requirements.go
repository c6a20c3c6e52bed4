package project

import "strings"

// CurrentRequirementsVersion is the questionnaire revision new documents are stamped with.
//
// Version history:
//
//	0  unversioned wizard payload (no "version" key)
//	1  same field set as 0, explicitly versioned
//
// A new questionnaire revision adds its fields here as optional members, bumps
// this constant and teaches Normalize how to lift older documents.
const CurrentRequirementsVersion = 1

// Requirements is the answer set of the project questionnaire. Every field is
// optional; presence or absence is the only constraint.
type Requirements struct {
	Version int `json:"version,omitempty"`

	// Basics
	Name             string   `json:"name,omitempty"`
	Description      string   `json:"description,omitempty"`
	ApplicationTypes []string `json:"applicationTypes,omitempty"`
	TargetPlatforms  []string `json:"targetPlatforms,omitempty"`

	// Scale and performance
	ExpectedUsers         string `json:"expectedUsers,omitempty"`
	ExpectedDataVolume    string `json:"expectedDataVolume,omitempty"`
	ExpectedTraffic       string `json:"expectedTraffic,omitempty"`
	GrowthExpectations    string `json:"growthExpectations,omitempty"`
	ResponseTime          string `json:"responseTime,omitempty"`
	Availability          string `json:"availability,omitempty"`
	ScalabilityPreference string `json:"scalabilityPreference,omitempty"`

	Features []string `json:"features,omitempty"`

	// Technology preferences
	PreferredLanguages          []string `json:"preferredLanguages,omitempty"`
	PreferredFrontendFrameworks []string `json:"preferredFrontendFrameworks,omitempty"`
	PreferredBackendFrameworks  []string `json:"preferredBackendFrameworks,omitempty"`
	PreferredDatabaseTypes      []string `json:"preferredDatabaseTypes,omitempty"`
	TechnologiesToAvoid         []string `json:"technologiesToAvoid,omitempty"`
	LicensingPreference         string   `json:"licensingPreference,omitempty"`

	// Team and constraints
	BudgetConstraints          string `json:"budgetConstraints,omitempty"`
	TeamSize                   string `json:"teamSize,omitempty"`
	TeamExpertise              string `json:"teamExpertise,omitempty"`
	DevelopmentTimeline        string `json:"developmentTimeline,omitempty"`
	DevelopmentSpeedImportance string `json:"developmentSpeedImportance,omitempty"`

	// Security and compliance
	DataSensitivity      string   `json:"dataSensitivity,omitempty"`
	SecurityRequirements string   `json:"securityRequirements,omitempty"`
	ComplianceStandards  []string `json:"complianceStandards,omitempty"`
}

// Questionnaire answer values the default rules key on.
const (
	AppTypeWebApplication = "Web Application"
	AppTypeAPIBackend     = "API/Backend Service"

	ExpertiseBeginner = "Beginner"

	TeamSizeLarge = "Large team (15+)"

	SensitivityFinancial = "Financial"
	SensitivityPII       = "PII"
)

// Normalize lifts a document of any known version to CurrentRequirementsVersion
// and trims whitespace from every answer. It returns the receiver for chaining.
func (r *Requirements) Normalize() *Requirements {
	if r == nil {
		return nil
	}
	switch r.Version {
	case 0:
		// v0 and v1 share a field set.
		r.Version = 1
	}

	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.ExpectedUsers = strings.TrimSpace(r.ExpectedUsers)
	r.ExpectedDataVolume = strings.TrimSpace(r.ExpectedDataVolume)
	r.ExpectedTraffic = strings.TrimSpace(r.ExpectedTraffic)
	r.GrowthExpectations = strings.TrimSpace(r.GrowthExpectations)
	r.ResponseTime = strings.TrimSpace(r.ResponseTime)
	r.Availability = strings.TrimSpace(r.Availability)
	r.ScalabilityPreference = strings.TrimSpace(r.ScalabilityPreference)
	r.LicensingPreference = strings.TrimSpace(r.LicensingPreference)
	r.BudgetConstraints = strings.TrimSpace(r.BudgetConstraints)
	r.TeamSize = strings.TrimSpace(r.TeamSize)
	r.TeamExpertise = strings.TrimSpace(r.TeamExpertise)
	r.DevelopmentTimeline = strings.TrimSpace(r.DevelopmentTimeline)
	r.DevelopmentSpeedImportance = strings.TrimSpace(r.DevelopmentSpeedImportance)
	r.DataSensitivity = strings.TrimSpace(r.DataSensitivity)
	r.SecurityRequirements = strings.TrimSpace(r.SecurityRequirements)

	for _, list := range []*[]string{
		&r.ApplicationTypes, &r.TargetPlatforms, &r.Features,
		&r.PreferredLanguages, &r.PreferredFrontendFrameworks, &r.PreferredBackendFrameworks,
		&r.PreferredDatabaseTypes, &r.TechnologiesToAvoid, &r.ComplianceStandards,
	} {
		*list = trimList(*list)
	}
	return r
}

func (r *Requirements) HasApplicationType(t string) bool {
	if r == nil {
		return false
	}
	for _, v := range r.ApplicationTypes {
		if v == t {
			return true
		}
	}
	return false
}

func trimList(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := in[:0]
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
