package main

import (
	"strings"
	"testing"
)

func TestParseCatalogFactions(t *testing.T) {
	catalog := testCatalog(t)

	if got := catalog.Factions(); len(got) != 2 || got[0] != "heroes" || got[1] != "villains" {
		t.Fatalf("faction order wrong: %v", got)
	}
	if catalog.DefaultFaction() != "heroes" {
		t.Fatalf("default faction = %q", catalog.DefaultFaction())
	}
	if catalog.Size() != 7 {
		t.Fatalf("size = %d, want 7", catalog.Size())
	}
}

func TestParseCatalogLegacyFlatArray(t *testing.T) {
	catalog, err := parseCatalog([]byte(`[
		{"id": 1, "name": "Aria", "rarity": "Common", "price": 100}
	]`))
	if err != nil {
		t.Fatalf("parse flat catalog: %v", err)
	}
	if catalog.DefaultFaction() != "characters" {
		t.Fatalf("flat catalog faction = %q", catalog.DefaultFaction())
	}
	if catalog.Size() != 1 {
		t.Fatalf("size = %d", catalog.Size())
	}
}

func TestParseCatalogRejectsBadData(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"not json", `{{`},
		{"duplicate id", `{"factions":[{"name":"a","entities":[{"id":1,"name":"x","rarity":"Common","price":1},{"id":1,"name":"y","rarity":"Common","price":1}]}]}`},
		{"unknown rarity", `{"factions":[{"name":"a","entities":[{"id":1,"name":"x","rarity":"Mythic","price":1}]}]}`},
		{"negative price", `{"factions":[{"name":"a","entities":[{"id":1,"name":"x","rarity":"Common","price":-5}]}]}`},
		{"empty name", `{"factions":[{"name":"a","entities":[{"id":1,"name":"","rarity":"Common","price":1}]}]}`},
		{"duplicate faction", `{"factions":[{"name":"a","entities":[]},{"name":"a","entities":[]}]}`},
	}
	for _, tc := range cases {
		if _, err := parseCatalog([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestListFactionUnknownIsEmpty(t *testing.T) {
	catalog := testCatalog(t)
	if got := catalog.ListFaction("dragons"); len(got) != 0 {
		t.Fatalf("unknown faction returned %v", got)
	}
}

func TestFindEntityPriorityOrder(t *testing.T) {
	catalog := testCatalog(t)

	entity, found := catalog.FindEntity(3)
	if !found {
		t.Fatal("entity 3 not found")
	}
	// Both factions carry an id 3; heroes is listed first and must win.
	if entity.Name != "Celine" {
		t.Fatalf("priority order broken: got %q", entity.Name)
	}

	if _, found := catalog.FindEntity(1000); found {
		t.Fatal("found a nonexistent id")
	}
}

func TestEntitiesByRarity(t *testing.T) {
	catalog := testCatalog(t)

	commons := catalog.EntitiesByRarity(RarityCommon)
	if len(commons) != 3 {
		t.Fatalf("commons = %d, want 3", len(commons))
	}
	legendaries := catalog.EntitiesByRarity(RarityLegendary)
	if len(legendaries) != 1 || legendaries[0].Name != "Eryndor" {
		t.Fatalf("legendaries wrong: %v", legendaries)
	}
}

func TestRarityNext(t *testing.T) {
	steps := []struct {
		from Rarity
		to   Rarity
		ok   bool
	}{
		{RarityCommon, RarityRare, true},
		{RarityRare, RarityEpic, true},
		{RarityEpic, RarityLegendary, true},
		{RarityLegendary, RarityLegendary, false},
	}
	for _, s := range steps {
		got, ok := s.from.Next()
		if got != s.to || ok != s.ok {
			t.Errorf("%s.Next() = %s,%v want %s,%v", s.from, got, ok, s.to, s.ok)
		}
	}
}

func TestStoreListing(t *testing.T) {
	catalog := testCatalog(t)
	listing := catalog.StoreListing()

	for _, want := range []string{"heroes", "villains", "#3 Celine (Rare) — 300 coins", "/buy"} {
		if !strings.Contains(listing, want) {
			t.Errorf("listing missing %q:\n%s", want, listing)
		}
	}
}
