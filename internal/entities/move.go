package entities

// MovesPerCreature is how many moves each seeded creature gets
const MovesPerCreature = 4

// Move is one entry of the local moves catalog. Extra JSON fields in the
// catalog file are ignored.
type Move struct {
	Name string `json:"name"`
}
