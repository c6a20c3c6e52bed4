package project

import (
	"encoding/json"
	"testing"
)

func TestNormalizeUpgradesUnversionedDocument(t *testing.T) {
	var r Requirements
	raw := `{"applicationTypes":[" Web Application ",""],"teamSize":" Small team (2-5) ","dataSensitivity":"PII"}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.Version != 0 {
		t.Fatalf("expected version 0 before normalize, got %d", r.Version)
	}

	r.Normalize()

	if r.Version != CurrentRequirementsVersion {
		t.Fatalf("expected version %d, got %d", CurrentRequirementsVersion, r.Version)
	}
	if len(r.ApplicationTypes) != 1 || r.ApplicationTypes[0] != AppTypeWebApplication {
		t.Fatalf("unexpected application types: %#v", r.ApplicationTypes)
	}
	if r.TeamSize != "Small team (2-5)" {
		t.Fatalf("team size not trimmed: %q", r.TeamSize)
	}
	if !r.HasApplicationType(AppTypeWebApplication) || r.HasApplicationType(AppTypeAPIBackend) {
		t.Fatalf("HasApplicationType mismatch")
	}
}

func TestNormalizeNil(t *testing.T) {
	var r *Requirements
	if r.Normalize() != nil {
		t.Fatalf("expected nil")
	}
	if r.HasApplicationType(AppTypeWebApplication) {
		t.Fatalf("nil requirements should not match")
	}
}

func TestRequirementsOmitAbsentFields(t *testing.T) {
	b, err := json.Marshal(Requirements{Version: 1, TeamExpertise: ExpertiseBeginner})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"version":1,"teamExpertise":"Beginner"}` {
		t.Fatalf("unexpected json: %s", b)
	}
}
