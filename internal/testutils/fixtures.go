package testutils

import (
	"strconv"

	"github.com/KirkDiggler/creature-seeder/internal/entities"
)

// PikachuSprite is the sprite URL in PikachuJSON
const PikachuSprite = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/25.png"

// PikachuJSON is a trimmed catalog response for id 25. Stats are deliberately
// not in the catalog's usual order.
const PikachuJSON = `{
  "id": 25,
  "name": "pikachu",
  "base_experience": 112,
  "types": [
    {"slot": 1, "type": {"name": "electric", "url": "https://pokeapi.co/api/v2/type/13/"}}
  ],
  "sprites": {
    "front_default": "` + PikachuSprite + `",
    "back_default": null
  },
  "stats": [
    {"base_stat": 90, "effort": 2, "stat": {"name": "speed"}},
    {"base_stat": 35, "effort": 0, "stat": {"name": "hp"}},
    {"base_stat": 55, "effort": 0, "stat": {"name": "attack"}},
    {"base_stat": 40, "effort": 0, "stat": {"name": "defense"}},
    {"base_stat": 50, "effort": 0, "stat": {"name": "special-attack"}},
    {"base_stat": 50, "effort": 0, "stat": {"name": "special-defense"}}
  ]
}`

// CreatureJSON renders a minimal catalog response for an arbitrary id
func CreatureJSON(id int, name string) string {
	return `{"id": ` + strconv.Itoa(id) + `, "name": "` + name + `",
  "types": [{"slot": 1, "type": {"name": "normal"}}],
  "sprites": {"front_default": null},
  "stats": [{"base_stat": 50, "stat": {"name": "hp"}}]}`
}

// TestMoves returns a five move catalog
func TestMoves() []entities.Move {
	return []entities.Move{
		{Name: "Tackle"},
		{Name: "Growl"},
		{Name: "Thunderbolt"},
		{Name: "Quick Attack"},
		{Name: "Surf"},
	}
}
