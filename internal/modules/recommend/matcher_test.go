package recommend

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/stackadvisor-backend/internal/domain/catalog"
	"github.com/yungbote/stackadvisor-backend/internal/domain/project"
)

func testCatalog() []catalog.Technology {
	cats := map[catalog.CategoryKey]*catalog.TechnologyCategory{}
	for _, k := range []catalog.CategoryKey{catalog.CategoryFrontend, catalog.CategoryBackend, catalog.CategoryDatabase, catalog.CategoryLanguage} {
		cats[k] = &catalog.TechnologyCategory{ID: uuid.New(), Key: k, Name: string(k)}
	}
	mk := func(name string, k catalog.CategoryKey) catalog.Technology {
		return catalog.Technology{ID: uuid.New(), Name: name, Slug: name, CategoryID: cats[k].ID, Category: cats[k], IsActive: true}
	}
	return []catalog.Technology{
		mk("React", catalog.CategoryFrontend),
		mk("Next.js", catalog.CategoryFrontend),
		mk("Vue.js", catalog.CategoryFrontend),
		mk("Node.js", catalog.CategoryBackend),
		mk("Deno", catalog.CategoryBackend),
		mk("PostgreSQL", catalog.CategoryDatabase),
		mk("MongoDB", catalog.CategoryDatabase),
		mk("TypeScript", catalog.CategoryLanguage),
		mk("Python", catalog.CategoryLanguage),
		mk("Go", catalog.CategoryLanguage),
	}
}

func names(in []catalog.Technology) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		out = append(out, t.Name)
	}
	return out
}

func contains(in []catalog.Technology, name string) bool {
	for _, t := range in {
		if t.Name == name {
			return true
		}
	}
	return false
}

// requirementGrid enumerates every combination of the answers the rules key on.
func requirementGrid() []*project.Requirements {
	appTypes := [][]string{nil, {"Mobile Application"}, {project.AppTypeWebApplication}, {project.AppTypeAPIBackend}, {"Desktop Application", project.AppTypeAPIBackend}}
	expertise := []string{"", project.ExpertiseBeginner, "Intermediate", "Expert"}
	sensitivity := []string{"", "Public data", "Financial data", "PII (Personally Identifiable Information)", "Health records"}
	teams := []string{"", "Solo developer", "Small team (2-5)", "Medium team (6-15)", project.TeamSizeLarge}

	var out []*project.Requirements
	for _, a := range appTypes {
		for _, e := range expertise {
			for _, s := range sensitivity {
				for _, ts := range teams {
					out = append(out, &project.Requirements{ApplicationTypes: a, TeamExpertise: e, DataSensitivity: s, TeamSize: ts})
				}
			}
		}
	}
	return out
}

func TestBackendEmptyWithoutWebOrAPIIntent(t *testing.T) {
	m := NewMatcher(DefaultRules())
	techs := testCatalog()
	for _, req := range requirementGrid() {
		if req.HasApplicationType(project.AppTypeWebApplication) || req.HasApplicationType(project.AppTypeAPIBackend) {
			continue
		}
		b := m.Match(req, techs)
		if len(b.Backend) != 0 || b.BestFit.Backend != nil || len(b.Alternatives.Backend) != 0 {
			t.Fatalf("expected empty backend for %+v, got %v", req, names(b.Backend))
		}
		if len(b.Frontend) != 0 {
			t.Fatalf("expected empty frontend for %+v", req)
		}
	}
}

func TestSensitiveDataPicksRelational(t *testing.T) {
	m := NewMatcher(DefaultRules())
	techs := testCatalog()
	for _, req := range requirementGrid() {
		b := m.Match(req, techs)
		sensitive := req.DataSensitivity == "Financial data" || req.DataSensitivity == "PII (Personally Identifiable Information)"
		if sensitive {
			if b.BestFit.Database == nil || b.BestFit.Database.Name != "PostgreSQL" {
				t.Fatalf("expected PostgreSQL for %q", req.DataSensitivity)
			}
			if contains(b.Database, "MongoDB") || !contains(b.Alternatives.Database, "MongoDB") {
				t.Fatalf("MongoDB must only be an alternative for %q: candidates=%v alts=%v", req.DataSensitivity, names(b.Database), names(b.Alternatives.Database))
			}
			continue
		}
		if b.BestFit.Database == nil || b.BestFit.Database.Name != "MongoDB" {
			t.Fatalf("expected MongoDB for %q", req.DataSensitivity)
		}
		if got := names(b.Alternatives.Database); len(got) != 1 || got[0] != "PostgreSQL" {
			t.Fatalf("expected PostgreSQL as sole alternative, got %v", got)
		}
	}
}

func TestLargeTeamSingleLanguage(t *testing.T) {
	m := NewMatcher(DefaultRules())
	techs := testCatalog()
	for _, req := range requirementGrid() {
		b := m.Match(req, techs)
		if b.BestFit.Language == nil || b.BestFit.Language.Name != "TypeScript" {
			t.Fatalf("language best fit must always be TypeScript")
		}
		if req.TeamSize == project.TeamSizeLarge {
			if len(b.Languages) != 1 {
				t.Fatalf("expected one language for large team, got %v", names(b.Languages))
			}
		} else if len(b.Languages) != 3 {
			t.Fatalf("expected all languages, got %v", names(b.Languages))
		}
	}
}

func TestScenarioBeginnerFinancialLargeTeam(t *testing.T) {
	req := &project.Requirements{
		ApplicationTypes: []string{project.AppTypeWebApplication},
		TeamExpertise:    project.ExpertiseBeginner,
		DataSensitivity:  "Financial data",
		TeamSize:         project.TeamSizeLarge,
	}
	b := NewMatcher(DefaultRules()).Match(req, testCatalog())

	if got := names(b.Frontend); len(got) != 1 || got[0] != "React" {
		t.Fatalf("frontend candidates: got %v, want [React]", got)
	}
	if b.BestFit.Frontend == nil || b.BestFit.Frontend.Name != "Next.js" {
		t.Fatalf("frontend best fit: got %+v", b.BestFit.Frontend)
	}
	if got := names(b.Alternatives.Frontend); len(got) != 2 || got[0] != "React" || got[1] != "Vue.js" {
		t.Fatalf("frontend alternatives: got %v", got)
	}
	if got := names(b.Backend); len(got) != 2 {
		t.Fatalf("backend candidates: got %v", got)
	}
	if b.BestFit.Database == nil || b.BestFit.Database.Name != "PostgreSQL" {
		t.Fatalf("database best fit: got %+v", b.BestFit.Database)
	}
	if len(b.Languages) != 1 {
		t.Fatalf("languages: got %v", names(b.Languages))
	}
}

func TestMissingBestFitIsNilNotFault(t *testing.T) {
	var techs []catalog.Technology
	for _, tech := range testCatalog() {
		if tech.Name == "Next.js" || tech.Name == "TypeScript" {
			continue
		}
		techs = append(techs, tech)
	}
	b := NewMatcher(DefaultRules()).Match(&project.Requirements{ApplicationTypes: []string{project.AppTypeWebApplication}}, techs)
	if b.BestFit.Frontend != nil || b.BestFit.Language != nil {
		t.Fatalf("expected nil best fits, got %+v / %+v", b.BestFit.Frontend, b.BestFit.Language)
	}
	if len(b.Frontend) != 2 || len(b.Alternatives.Frontend) != 2 {
		t.Fatalf("remaining frontends should still be listed: %v", names(b.Frontend))
	}

	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	bestFit := decoded["bestFit"].(map[string]any)
	if v, ok := bestFit["language"]; !ok || v != nil {
		t.Fatalf("expected explicit null language best fit, got %v (present=%v)", v, ok)
	}
}

func TestClosedGatesSerialiseAsEmptyLists(t *testing.T) {
	b := NewMatcher(DefaultRules()).Match(nil, testCatalog())
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)
	for _, key := range []string{"frontend", "backend"} {
		list, ok := decoded[key].([]any)
		if !ok || len(list) != 0 {
			t.Fatalf("expected %s to be [], got %v", key, decoded[key])
		}
	}
	// nil requirements still recommend a database and languages
	if b.BestFit.Database == nil || b.BestFit.Database.Name != "MongoDB" || len(b.Languages) != 3 {
		t.Fatalf("unexpected defaults for nil requirements")
	}
}

func TestExactNameMatching(t *testing.T) {
	techs := testCatalog()
	for i := range techs {
		if techs[i].Name == "Next.js" {
			techs[i].Name = "NextJS"
		}
	}
	b := NewMatcher(DefaultRules()).Match(&project.Requirements{ApplicationTypes: []string{project.AppTypeWebApplication}}, techs)
	if b.BestFit.Frontend != nil {
		t.Fatalf("renamed entry must not match the rule")
	}
	if !contains(b.Alternatives.Frontend, "NextJS") {
		t.Fatalf("renamed entry should fall into alternatives")
	}
}

func TestUncategorisedTechnologiesIgnored(t *testing.T) {
	techs := append(testCatalog(), catalog.Technology{ID: uuid.New(), Name: "Orphan"})
	b := NewMatcher(DefaultRules()).Match(&project.Requirements{ApplicationTypes: []string{project.AppTypeWebApplication}}, techs)
	for _, list := range [][]catalog.Technology{b.Frontend, b.Backend, b.Database, b.Languages} {
		if contains(list, "Orphan") {
			t.Fatalf("technology without category leaked into output")
		}
	}
}
