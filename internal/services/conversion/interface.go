package conversion

import "github.com/KirkDiggler/creature-seeder/internal/entities"

// PayloadConverter builds destination store rows from catalog data. It is a
// pure function of its inputs and makes no network calls, so the
// same creature and move sample always produce the same payload.
type PayloadConverter interface {
	// ToSeedPayload maps one creature and its sampled moves to a SeedPayload.
	// Moves keep the order they were sampled in.
	ToSeedPayload(creature *entities.Creature, moves []entities.Move) *entities.SeedPayload
}
