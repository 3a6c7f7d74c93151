package candidate

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOrderedMapInsertIfAbsent(t *testing.T) {
	m := NewOrderedMap[string, Candidate]()

	if !m.InsertIfAbsent("u1", Candidate{Login: "u1", SourceRepository: "a/x"}) {
		t.Fatal("first insert should succeed")
	}
	m.InsertIfAbsent("u2", Candidate{Login: "u2", SourceRepository: "a/x"})
	if m.InsertIfAbsent("u1", Candidate{Login: "u1", SourceRepository: "b/y"}) {
		t.Error("duplicate insert should be rejected")
	}

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	got, _ := m.Get("u1")
	if got.SourceRepository != "a/x" {
		t.Errorf("u1 repo = %q, want first-seen a/x", got.SourceRepository)
	}

	var order []string
	for k := range m.All() {
		order = append(order, k)
	}
	if strings.Join(order, ",") != "u1,u2" {
		t.Errorf("order = %v, want [u1 u2]", order)
	}
	vals := m.Values()
	if len(vals) != 2 || vals[1].Login != "u2" {
		t.Errorf("Values() = %+v", vals)
	}
}

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet("solidity", "rust", "solidity", "go")
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if strings.Join(s.Items(), ",") != "solidity,rust,go" {
		t.Errorf("Items() = %v", s.Items())
	}

	declared := NewOrderedSet("go", "javascript", "solidity")
	got := s.Intersect(declared)
	if strings.Join(got, ",") != "solidity,go" {
		t.Errorf("Intersect() = %v, want [solidity go]", got)
	}

	if empty := s.Intersect(NewOrderedSet()); empty == nil || len(empty) != 0 {
		t.Errorf("Intersect(empty) = %#v, want empty non-nil slice", empty)
	}
}

func TestOrderedSetZeroValue(t *testing.T) {
	var s OrderedSet
	if s.Contains("go") || s.Len() != 0 {
		t.Fatal("zero set should be empty")
	}
	if !s.Add("go") || s.Add("go") {
		t.Error("Add() should report only the first insertion")
	}
	if strings.Join(s.Items(), ",") != "go" {
		t.Errorf("Items() = %v, want [go]", s.Items())
	}

	var m OrderedMap[string, int]
	if !m.InsertIfAbsent("a", 1) || m.Len() != 1 {
		t.Error("zero map should accept inserts")
	}
}

func TestEnrichedJSON(t *testing.T) {
	e := Enriched{
		Candidate: Candidate{
			Login:               "u1",
			Contributions:       50,
			SourceRepository:    "a/x",
			MatchedTechnologies: []string{"solidity"},
		},
		RecentContributions: 4,
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"user", "contributions", "repo", "matchedTechnologies", "contactInfo", "recentContributions"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	contact := raw["contactInfo"].(map[string]any)
	if v, ok := contact["email"]; !ok || v != nil {
		t.Errorf("contactInfo.email = %v, want explicit null", v)
	}
	if e.ContactInfo.EmailOrEmpty() != "" {
		t.Error("EmailOrEmpty() should be empty for nil email")
	}
}
