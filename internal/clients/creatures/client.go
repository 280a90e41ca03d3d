// Package creatures is the client for the public creature catalog (PokeAPI)
package creatures

//go:generate mockgen -destination=mock/mock_client.go -package=creaturesmock github.com/KirkDiggler/creature-seeder/internal/clients/creatures Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/creature-seeder/internal/clients/rest"
	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

const (
	// DefaultBaseURL is the creature lookup endpoint; ids are appended
	DefaultBaseURL = "https://pokeapi.co/api/v2/pokemon"
	// DefaultSpeciesURL lists species with a one-item page, used for its count
	DefaultSpeciesURL = "https://pokeapi.co/api/v2/pokemon-species?limit=1"
)

// Client defines the catalog operations the seeder needs
type Client interface {
	// FetchTotalCount returns how many creatures the catalog knows about.
	// The result is always at least the configured minimum population.
	FetchTotalCount(ctx context.Context) (int, error)

	// FetchCreature looks up one creature by numeric id
	FetchCreature(ctx context.Context, id int) (*entities.Creature, error)
}

// Config contains configuration options for the catalog client.
type Config struct {
	// BaseURL for creature lookups (optional, defaults to DefaultBaseURL)
	BaseURL string
	// SpeciesURL for the population count (optional, defaults to DefaultSpeciesURL)
	SpeciesURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout (optional)
	HTTPClient *http.Client
	// MinPopulation is the smallest count FetchTotalCount accepts. It is the
	// insert quota, since ids are sampled without replacement.
	MinPopulation int
	// Logger (optional, defaults to a no-op logger)
	Logger *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SpeciesURL == "" {
		cfg.SpeciesURL = DefaultSpeciesURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = rest.NewHTTPClient(cfg.HTTPTimeout)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateHTTPURL("BaseURL", cfg.BaseURL, vb)
	errors.ValidateHTTPURL("SpeciesURL", cfg.SpeciesURL, vb)
	errors.ValidateMin("MinPopulation", cfg.MinPopulation, 0, vb)
	return vb.Build()
}

type client struct {
	baseURL       string
	speciesURL    string
	httpClient    *http.Client
	minPopulation int
	logger        *zap.Logger
}

// New creates a new catalog client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid creatures client config")
	}

	return &client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		speciesURL:    cfg.SpeciesURL,
		httpClient:    cfg.HTTPClient,
		minPopulation: cfg.MinPopulation,
		logger:        cfg.Logger,
	}, nil
}

// speciesPage is the part of the species list response we read
type speciesPage struct {
	Count json.RawMessage `json:"count"`
}

func (c *client) FetchTotalCount(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.speciesURL, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to build species request")
	}

	resp, err := rest.Send(ctx, c.httpClient, req)
	if err != nil {
		return 0, err
	}
	defer rest.Drain(resp)

	if !rest.IsSuccess(resp.StatusCode) {
		return 0, errors.Upstreamf(resp.StatusCode, "species count request failed with status %d", resp.StatusCode).
			WithMeta(errors.MetaBody, rest.ReadBody(resp))
	}

	var page speciesPage
	if err := rest.DecodeJSON(resp, &page); err != nil {
		return 0, err
	}

	count, ok := coerceCount(page.Count)
	if !ok {
		return 0, errors.DataShapeErrorf("invalid total creature count %q", string(page.Count))
	}
	if count < c.minPopulation {
		return 0, errors.DataShapeErrorf("total creature count %d is below the required %d", count, c.minPopulation)
	}

	c.logger.Debug("discovered creature population", zap.Int("count", count))
	return count, nil
}

func (c *client) FetchCreature(ctx context.Context, id int) (*entities.Creature, error) {
	url := fmt.Sprintf("%s/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build creature request for id=%d", id)
	}

	resp, err := rest.Send(ctx, c.httpClient, req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch creature id=%d", id)
	}
	defer rest.Drain(resp)

	if !rest.IsSuccess(resp.StatusCode) {
		return nil, errors.Upstreamf(resp.StatusCode, "creature lookup for id=%d failed with status %d", id, resp.StatusCode).
			WithMeta(errors.MetaCreatureID, id)
	}

	var creature entities.Creature
	if err := rest.DecodeJSON(resp, &creature); err != nil {
		return nil, errors.Wrapf(err, "failed to decode creature id=%d", id).WithMeta(errors.MetaCreatureID, id)
	}
	if creature.Name == "" {
		return nil, errors.DataShapeErrorf("creature id=%d has no name", id).WithMeta(errors.MetaCreatureID, id)
	}

	c.logger.Debug("fetched creature", zap.Int("creature_id", id), zap.String("name", creature.Name))
	return &creature, nil
}

// coerceCount reads a count the way a loose number coercion would: JSON
// numbers and numeric strings are accepted, anything non-finite or
// fractional is not.
func coerceCount(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}
