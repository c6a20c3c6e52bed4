package recommend

import (
	"strings"

	"github.com/yungbote/stackadvisor-backend/internal/domain/project"
)

// Rules names the technologies each category rule picks. Names are matched
// exactly against catalog entries; renaming a catalog row disables its rule.
type Rules struct {
	FrontendBestFit    string
	FrontendSafeChoice string
	BackendBestFit     string
	RelationalDatabase string
	DocumentDatabase   string
	LanguageBestFit    string

	// SensitiveData are substrings of dataSensitivity that force the relational pick.
	SensitiveData []string
}

func DefaultRules() Rules {
	return Rules{
		FrontendBestFit:    "Next.js",
		FrontendSafeChoice: "React",
		BackendBestFit:     "Node.js",
		RelationalDatabase: "PostgreSQL",
		DocumentDatabase:   "MongoDB",
		LanguageBestFit:    "TypeScript",
		SensitiveData:      []string{project.SensitivityFinancial, project.SensitivityPII},
	}
}

func (r Rules) wantsFrontend(req *project.Requirements) bool {
	return req.HasApplicationType(project.AppTypeWebApplication)
}

func (r Rules) wantsBackend(req *project.Requirements) bool {
	return req.HasApplicationType(project.AppTypeAPIBackend) || req.HasApplicationType(project.AppTypeWebApplication)
}

func (r Rules) sensitive(req *project.Requirements) bool {
	if req == nil || req.DataSensitivity == "" {
		return false
	}
	for _, marker := range r.SensitiveData {
		if marker != "" && strings.Contains(req.DataSensitivity, marker) {
			return true
		}
	}
	return false
}

func (r Rules) databasePick(req *project.Requirements) string {
	if r.sensitive(req) {
		return r.RelationalDatabase
	}
	return r.DocumentDatabase
}

func beginner(req *project.Requirements) bool {
	return req != nil && req.TeamExpertise == project.ExpertiseBeginner
}

func largeTeam(req *project.Requirements) bool {
	return req != nil && req.TeamSize == project.TeamSizeLarge
}
