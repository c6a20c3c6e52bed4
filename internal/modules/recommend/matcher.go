package recommend

import (
	"github.com/yungbote/stackadvisor-backend/internal/domain/catalog"
	"github.com/yungbote/stackadvisor-backend/internal/domain/project"
)

// Matcher maps a requirements document and the active catalog to a bundle.
// It is pure: no I/O, no clock, no randomness.
type Matcher struct {
	rules Rules
}

func NewMatcher(rules Rules) *Matcher {
	return &Matcher{rules: rules}
}

// Match runs the category rules. The catalog's technologies must have their
// Category preloaded; rows without one are ignored. Catalog order is preserved
// within every output list.
func (m *Matcher) Match(req *project.Requirements, techs []catalog.Technology) project.Bundle {
	byCat := partition(techs)
	out := emptyBundle()
	r := m.rules

	if r.wantsFrontend(req) {
		all := byCat[catalog.CategoryFrontend]
		if beginner(req) {
			out.Frontend = named(all, r.FrontendSafeChoice)
		} else {
			out.Frontend = clone(all)
		}
		out.BestFit.Frontend = find(all, r.FrontendBestFit)
		out.Alternatives.Frontend = except(all, r.FrontendBestFit)
	}

	if r.wantsBackend(req) {
		all := byCat[catalog.CategoryBackend]
		out.Backend = clone(all)
		out.BestFit.Backend = find(all, r.BackendBestFit)
		out.Alternatives.Backend = except(all, r.BackendBestFit)
	}

	{
		all := byCat[catalog.CategoryDatabase]
		pick := r.databasePick(req)
		out.Database = named(all, pick)
		out.BestFit.Database = find(all, pick)
		out.Alternatives.Database = except(all, pick)
	}

	{
		all := byCat[catalog.CategoryLanguage]
		if largeTeam(req) {
			out.Languages = named(all, r.LanguageBestFit)
		} else {
			out.Languages = clone(all)
		}
		out.BestFit.Language = find(all, r.LanguageBestFit)
		out.Alternatives.Language = except(all, r.LanguageBestFit)
	}

	return out
}

func emptyBundle() project.Bundle {
	return project.Bundle{
		Frontend:  []catalog.Technology{},
		Backend:   []catalog.Technology{},
		Database:  []catalog.Technology{},
		Languages: []catalog.Technology{},
		Alternatives: project.AlternativeSet{
			Frontend: []catalog.Technology{},
			Backend:  []catalog.Technology{},
			Database: []catalog.Technology{},
			Language: []catalog.Technology{},
		},
	}
}

func partition(techs []catalog.Technology) map[catalog.CategoryKey][]catalog.Technology {
	out := make(map[catalog.CategoryKey][]catalog.Technology, 4)
	for _, t := range techs {
		key := t.CategoryKey()
		if !key.Valid() {
			continue
		}
		out[key] = append(out[key], t)
	}
	return out
}

func named(in []catalog.Technology, name string) []catalog.Technology {
	out := []catalog.Technology{}
	for _, t := range in {
		if t.Name == name {
			out = append(out, t)
		}
	}
	return out
}

func except(in []catalog.Technology, name string) []catalog.Technology {
	out := []catalog.Technology{}
	for _, t := range in {
		if t.Name != name {
			out = append(out, t)
		}
	}
	return out
}

func clone(in []catalog.Technology) []catalog.Technology {
	out := make([]catalog.Technology, len(in))
	copy(out, in)
	return out
}

func find(in []catalog.Technology, name string) *catalog.Technology {
	for i := range in {
		if in[i].Name == name {
			t := in[i]
			return &t
		}
	}
	return nil
}
