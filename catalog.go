package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

var rarityOrder = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}

func ParseRarity(s string) (Rarity, bool) {
	for _, r := range rarityOrder {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

// Next returns the rarity one step up, or the same rarity and false at the top.
func (r Rarity) Next() (Rarity, bool) {
	for i, cur := range rarityOrder {
		if cur == r && i+1 < len(rarityOrder) {
			return rarityOrder[i+1], true
		}
	}
	return r, false
}

type CatalogEntity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Rarity   Rarity `json:"rarity"`
	Price    int64  `json:"price"`
	ImageURL string `json:"image_url,omitempty"`
}

// Catalog holds the immutable entity collections, grouped by faction. Each
// faction is its own id namespace. Lookups that span factions walk them in
// priority order: the order factions appear in the catalog file, which is
// preserved at load time.
type Catalog struct {
	factions map[string][]CatalogEntity
	priority []string
}

type catalogFile struct {
	Factions []catalogFaction `json:"factions"`
}

type catalogFaction struct {
	Name     string          `json:"name"`
	Entities []CatalogEntity `json:"entities"`
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return parseCatalog(data)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile

	if err := json.Unmarshal(data, &file); err != nil || len(file.Factions) == 0 {
		// Legacy layout: a flat entity array becomes the single
		// "characters" faction.
		var flat []CatalogEntity
		if flatErr := json.Unmarshal(data, &flat); flatErr != nil {
			if err == nil {
				err = flatErr
			}
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		file.Factions = []catalogFaction{{Name: "characters", Entities: flat}}
	}

	catalog := &Catalog{factions: make(map[string][]CatalogEntity)}
	for _, faction := range file.Factions {
		name := strings.ToLower(strings.TrimSpace(faction.Name))
		if name == "" {
			return nil, fmt.Errorf("parse catalog: faction with empty name")
		}
		if _, exists := catalog.factions[name]; exists {
			return nil, fmt.Errorf("parse catalog: duplicate faction %q", name)
		}
		if err := validateFaction(name, faction.Entities); err != nil {
			return nil, err
		}
		catalog.factions[name] = faction.Entities
		catalog.priority = append(catalog.priority, name)
	}
	return catalog, nil
}

func validateFaction(name string, entities []CatalogEntity) error {
	seen := make(map[int64]bool, len(entities))
	for _, e := range entities {
		if e.Name == "" {
			return fmt.Errorf("faction %s: entity %d has no name", name, e.ID)
		}
		if _, ok := ParseRarity(string(e.Rarity)); !ok {
			return fmt.Errorf("faction %s: entity %d has unknown rarity %q", name, e.ID, e.Rarity)
		}
		if e.Price < 0 {
			return fmt.Errorf("faction %s: entity %d has negative price", name, e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("faction %s: duplicate entity id %d", name, e.ID)
		}
		seen[e.ID] = true
	}
	return nil
}

// ListFaction returns the entities of a faction. Unknown factions yield an
// empty slice, not an error.
func (c *Catalog) ListFaction(name string) []CatalogEntity {
	return c.factions[strings.ToLower(strings.TrimSpace(name))]
}

// DefaultFaction is the faction free rolls draw from: the first one listed in
// the catalog file.
func (c *Catalog) DefaultFaction() string {
	if len(c.priority) == 0 {
		return ""
	}
	return c.priority[0]
}

func (c *Catalog) Factions() []string {
	out := make([]string, len(c.priority))
	copy(out, c.priority)
	return out
}

// FindEntity looks an id up across all factions in priority order; the first
// faction containing the id wins.
func (c *Catalog) FindEntity(id int64) (CatalogEntity, bool) {
	for _, name := range c.priority {
		for _, e := range c.factions[name] {
			if e.ID == id {
				return e, true
			}
		}
	}
	return CatalogEntity{}, false
}

// AllEntities returns every entity, faction priority order then file order.
func (c *Catalog) AllEntities() []CatalogEntity {
	var out []CatalogEntity
	for _, name := range c.priority {
		out = append(out, c.factions[name]...)
	}
	return out
}

// EntitiesByRarity returns every entity of the given rarity, in the same
// order as AllEntities.
func (c *Catalog) EntitiesByRarity(rarity Rarity) []CatalogEntity {
	var out []CatalogEntity
	for _, e := range c.AllEntities() {
		if e.Rarity == rarity {
			out = append(out, e)
		}
	}
	return out
}

func (c *Catalog) Size() int {
	total := 0
	for _, entities := range c.factions {
		total += len(entities)
	}
	return total
}

// StoreListing renders the /store reply, one priced line per entity.
func (c *Catalog) StoreListing() string {
	if c.Size() == 0 {
		return "The store is currently empty."
	}
	lines := []string{"Character Store (use /buy <id>):"}
	for _, name := range c.priority {
		entities := c.factions[name]
		sorted := make([]CatalogEntity, len(entities))
		copy(sorted, entities)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
		lines = append(lines, fmt.Sprintf("— %s —", name))
		for _, e := range sorted {
			lines = append(lines, fmt.Sprintf("#%d %s (%s) — %d coins", e.ID, e.Name, e.Rarity, e.Price))
		}
	}
	return strings.Join(lines, "\n")
}
