package main

import (
	"strings"
	"testing"
)

func TestCheckCatalogClean(t *testing.T) {
	problems, factions, entities := checkCatalog([]byte(`{
		"factions": [
			{"name": "heroes", "entities": [
				{"id": 1, "name": "Aria", "rarity": "Common", "price": 100},
				{"id": 2, "name": "Borin", "rarity": "Rare", "price": 300}
			]}
		]
	}`))
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if factions != 1 || entities != 2 {
		t.Fatalf("counts = %d/%d", factions, entities)
	}
}

func TestCheckCatalogFlatArray(t *testing.T) {
	problems, factions, entities := checkCatalog([]byte(`[
		{"id": 1, "name": "Aria", "rarity": "Common", "price": 100}
	]`))
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if factions != 1 || entities != 1 {
		t.Fatalf("counts = %d/%d", factions, entities)
	}
}

func TestCheckCatalogReportsProblems(t *testing.T) {
	problems, _, _ := checkCatalog([]byte(`{
		"factions": [
			{"name": "heroes", "entities": [
				{"id": 1, "name": "", "rarity": "Mythic", "price": -5},
				{"id": 1, "name": "Twin", "rarity": "Common", "price": 10}
			]}
		]
	}`))

	joined := strings.Join(problems, "\n")
	for _, want := range []string{"empty name", "unknown rarity", "negative price", "duplicate id"} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing problem %q in %v", want, problems)
		}
	}
}

func TestCheckCatalogGarbage(t *testing.T) {
	problems, _, _ := checkCatalog([]byte(`not json at all`))
	if len(problems) == 0 {
		t.Fatal("garbage input should be reported")
	}
}
