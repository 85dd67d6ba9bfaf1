package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// catalog-check validates a catalog file before it is shipped to the bot:
// usage: catalog-check <characters.json>

type entity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Rarity   string `json:"rarity"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

type faction struct {
	Name     string   `json:"name"`
	Entities []entity `json:"entities"`
}

type catalogFile struct {
	Factions []faction `json:"factions"`
}

var validRarities = map[string]bool{
	"Common":    true,
	"Rare":      true,
	"Epic":      true,
	"Legendary": true,
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: catalog-check <catalog.json>")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}

	problems, factions, entities := checkCatalog(data)
	for _, p := range problems {
		fmt.Println("PROBLEM:", p)
	}
	if len(problems) > 0 {
		os.Exit(1)
	}
	fmt.Printf("OK: %d factions, %d entities\n", factions, entities)
}

func checkCatalog(data []byte) (problems []string, factions, entities int) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil || len(file.Factions) == 0 {
		var flat []entity
		if flatErr := json.Unmarshal(data, &flat); flatErr != nil {
			return []string{"file is neither a faction catalog nor a flat entity array"}, 0, 0
		}
		file.Factions = []faction{{Name: "characters", Entities: flat}}
	}

	seenFactions := map[string]bool{}
	for _, f := range file.Factions {
		if f.Name == "" {
			problems = append(problems, "faction with empty name")
			continue
		}
		if seenFactions[f.Name] {
			problems = append(problems, fmt.Sprintf("duplicate faction %q", f.Name))
			continue
		}
		seenFactions[f.Name] = true
		factions++

		seenIDs := map[int64]bool{}
		for _, e := range f.Entities {
			entities++
			where := fmt.Sprintf("%s/#%d", f.Name, e.ID)
			if seenIDs[e.ID] {
				problems = append(problems, fmt.Sprintf("%s: duplicate id", where))
			}
			seenIDs[e.ID] = true
			if e.Name == "" {
				problems = append(problems, fmt.Sprintf("%s: empty name", where))
			}
			if !validRarities[e.Rarity] {
				problems = append(problems, fmt.Sprintf("%s: unknown rarity %q", where, e.Rarity))
			}
			if e.Price < 0 {
				problems = append(problems, fmt.Sprintf("%s: negative price", where))
			}
		}
	}
	return problems, factions, entities
}
