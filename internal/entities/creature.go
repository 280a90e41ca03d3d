package entities

import (
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// Stat names used by the seed payload
const (
	StatHP      = "hp"
	StatAttack  = "attack"
	StatDefense = "defense"
	StatSpeed   = "speed"
)

// EntityTypeCreature is the rpg-toolkit entity type for catalog creatures
const EntityTypeCreature = "creature"

// Creature is a creature record as returned by the catalog API. Only the
// fields the seeder reads are decoded.
type Creature struct {
	ID      int            `json:"id"`
	Name    string         `json:"name"`
	Types   []CreatureType `json:"types"`
	Sprites Sprites        `json:"sprites"`
	Stats   []CreatureStat `json:"stats"`
}

// CreatureType is one entry of a creature's ordered type list
type CreatureType struct {
	Slot int      `json:"slot"`
	Type NamedRef `json:"type"`
}

// CreatureStat is one base stat entry. Upstream does not guarantee order.
type CreatureStat struct {
	BaseStat int      `json:"base_stat"`
	Stat     NamedRef `json:"stat"`
}

// NamedRef is the catalog's {name, url} reference shape
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Sprites holds sprite URLs; FrontDefault is nil when the catalog has none.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// GetID returns the catalog id as a string
func (c *Creature) GetID() string {
	return strconv.Itoa(c.ID)
}

// GetType returns the entity type for rpg-toolkit
func (c *Creature) GetType() string {
	return EntityTypeCreature
}

// BaseStat returns the base value of the named stat. The second result is
// false when the creature has no entry with that exact name.
func (c *Creature) BaseStat(name string) (int, bool) {
	for _, s := range c.Stats {
		if s.Stat.Name == name {
			return s.BaseStat, true
		}
	}
	return 0, false
}

var _ core.Entity = (*Creature)(nil)
