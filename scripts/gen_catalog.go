package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// gen_catalog writes a starter characters.json so a fresh deployment has
// something to roll: go run ./scripts > characters.json

type entity struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Price  int64  `json:"price"`
}

type faction struct {
	Name     string   `json:"name"`
	Entities []entity `json:"entities"`
}

func main() {
	catalog := map[string][]faction{
		"factions": {
			{
				Name: "heroes",
				Entities: []entity{
					{ID: 1, Name: "Aria the Swift", Rarity: "Common", Price: 100},
					{ID: 2, Name: "Borin Stonefist", Rarity: "Common", Price: 100},
					{ID: 3, Name: "Celine Dawnbringer", Rarity: "Rare", Price: 300},
					{ID: 4, Name: "Darius Nightblade", Rarity: "Epic", Price: 800},
					{ID: 5, Name: "Eryndor the Eternal", Rarity: "Legendary", Price: 2500},
				},
			},
			{
				Name: "villains",
				Entities: []entity{
					{ID: 1, Name: "Grask the Cruel", Rarity: "Common", Price: 120},
					{ID: 2, Name: "Lady Vexis", Rarity: "Rare", Price: 350},
					{ID: 3, Name: "Morrow Kingsbane", Rarity: "Epic", Price: 900},
					{ID: 4, Name: "The Hollow Tyrant", Rarity: "Legendary", Price: 3000},
				},
			},
		},
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(catalog); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}
}
