// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/creature-seeder/internal/entities"
)

// CreatureBuilder provides a fluent interface for building test Creature instances
type CreatureBuilder struct {
	creature *entities.Creature
}

// NewCreatureBuilder creates a builder for a creature with no types, stats or sprite
func NewCreatureBuilder() *CreatureBuilder {
	return &CreatureBuilder{
		creature: &entities.Creature{
			ID:   1,
			Name: "bulbasaur",
		},
	}
}

// WithID sets the catalog id
func (b *CreatureBuilder) WithID(id int) *CreatureBuilder {
	b.creature.ID = id
	return b
}

// WithName sets the raw catalog name
func (b *CreatureBuilder) WithName(name string) *CreatureBuilder {
	b.creature.Name = name
	return b
}

// WithTypes appends type entries in the given order
func (b *CreatureBuilder) WithTypes(names ...string) *CreatureBuilder {
	for _, name := range names {
		b.creature.Types = append(b.creature.Types, entities.CreatureType{
			Slot: len(b.creature.Types) + 1,
			Type: entities.NamedRef{Name: name},
		})
	}
	return b
}

// WithStat appends one base stat entry
func (b *CreatureBuilder) WithStat(name string, value int) *CreatureBuilder {
	b.creature.Stats = append(b.creature.Stats, entities.CreatureStat{
		BaseStat: value,
		Stat:     entities.NamedRef{Name: name},
	})
	return b
}

// WithSprite sets the default front sprite URL
func (b *CreatureBuilder) WithSprite(url string) *CreatureBuilder {
	b.creature.Sprites.FrontDefault = &url
	return b
}

// Build returns the built creature
func (b *CreatureBuilder) Build() *entities.Creature {
	return b.creature
}
