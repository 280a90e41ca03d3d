// Package moves loads the local catalog of moves that seeded creatures draw from
package moves

//go:generate mockgen -destination=mock/mock_loader.go -package=movesmock github.com/KirkDiggler/creature-seeder/internal/catalog/moves Loader

import (
	"context"
	"encoding/json"
	"os"

	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

// DefaultPath is the project-relative location of the moves catalog
const DefaultPath = "src/data/moves.json"

// Loader reads the moves catalog
type Loader interface {
	// Load returns every move in the catalog. It fails with a config error if
	// the catalog is unreadable, not a JSON array, or too small.
	Load(ctx context.Context) ([]entities.Move, error)
}

// Config configures the file-backed loader
type Config struct {
	// Path to the JSON catalog (optional, defaults to DefaultPath)
	Path string
	// MinMoves is the smallest acceptable catalog (optional, defaults to
	// entities.MovesPerCreature)
	MinMoves int
}

// Validate sets defaults
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Path == "" {
		cfg.Path = DefaultPath
	}
	if cfg.MinMoves == 0 {
		cfg.MinMoves = entities.MovesPerCreature
	}
	if cfg.MinMoves < 0 {
		return errors.InvalidArgumentf("min moves must not be negative: %d", cfg.MinMoves)
	}
	return nil
}

type fileLoader struct {
	path     string
	minMoves int
}

// NewFileLoader creates a loader reading the catalog from disk
func NewFileLoader(cfg *Config) (Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &fileLoader{
		path:     cfg.Path,
		minMoves: cfg.MinMoves,
	}, nil
}

func (l *fileLoader) Load(ctx context.Context) ([]entities.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeConfig, "failed to read moves catalog %s", l.path)
	}

	return Parse(raw, l.minMoves)
}

// Parse decodes a catalog document and enforces the minimum size
func Parse(raw []byte, minMoves int) ([]entities.Move, error) {
	var catalog []entities.Move
	if err := json.Unmarshal(raw, &catalog); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeConfig, "moves catalog must be a JSON array of moves")
	}

	if len(catalog) < minMoves {
		return nil, errors.ConfigErrorf("moves catalog must contain at least %d moves, found %d", minMoves, len(catalog))
	}

	return catalog, nil
}
