package conversion

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/KirkDiggler/creature-seeder/internal/entities"
)

// listSeparator joins types and moves into a single store column
const listSeparator = ", "

type payloadConverter struct{}

// NewPayloadConverter creates the converter used by the seed orchestrator
func NewPayloadConverter() PayloadConverter {
	return &payloadConverter{}
}

// ToSeedPayload maps a creature and its sampled moves onto the store row.
// Missing stats and sprite stay nil so they serialize as null.
func (c *payloadConverter) ToSeedPayload(creature *entities.Creature, moves []entities.Move) *entities.SeedPayload {
	if creature == nil {
		return nil
	}

	types := make([]string, len(creature.Types))
	for i, t := range creature.Types {
		types[i] = Capitalize(t.Type.Name)
	}

	moveNames := make([]string, len(moves))
	for i, m := range moves {
		moveNames[i] = m.Name
	}

	var sprite *string
	if creature.Sprites.FrontDefault != nil {
		s := *creature.Sprites.FrontDefault
		sprite = &s
	}

	return &entities.SeedPayload{
		Name:    Capitalize(creature.Name),
		Types:   strings.Join(types, listSeparator),
		Sprite:  sprite,
		Attack:  statPtr(creature, entities.StatAttack),
		Defense: statPtr(creature, entities.StatDefense),
		HP:      statPtr(creature, entities.StatHP),
		Speed:   statPtr(creature, entities.StatSpeed),
		Moves:   strings.Join(moveNames, listSeparator),
	}
}

// Capitalize upper-cases the first character and leaves the rest untouched,
// so "mr-mime" becomes "Mr-mime" rather than title case.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func statPtr(creature *entities.Creature, name string) *int {
	v, ok := creature.BaseStat(name)
	if !ok {
		return nil
	}
	return &v
}
