// Package store is the client for the remote tabular store that receives
// seeded creature rows
package store

//go:generate mockgen -destination=mock/mock_client.go -package=storemock github.com/KirkDiggler/creature-seeder/internal/clients/store Client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/creature-seeder/internal/clients/rest"
	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
)

// DefaultURL is the collection endpoint of the destination store
const DefaultURL = "https://retoolapi.dev/LaiHmW/data"

// DeleteResult classifies a successful delete
type DeleteResult string

const (
	// DeleteResultDeleted means the store removed the row
	DeleteResultDeleted DeleteResult = "deleted"
	// DeleteResultAlreadyAbsent means the store had no such row
	DeleteResultAlreadyAbsent DeleteResult = "already-absent"
)

// Client defines the destination store operations
type Client interface {
	// Insert creates one row and returns the stored record
	Insert(ctx context.Context, payload *entities.SeedPayload) (*entities.StoredRecord, error)

	// DeleteByID removes a row. A missing row is not an error.
	DeleteByID(ctx context.Context, id int) (DeleteResult, error)
}

// Config contains configuration options for the store client.
type Config struct {
	// URL of the collection (optional, defaults to DefaultURL)
	URL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout (optional)
	HTTPClient *http.Client
	// Logger (optional, defaults to a no-op logger)
	Logger *zap.Logger
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = rest.NewHTTPClient(cfg.HTTPTimeout)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateHTTPURL("URL", cfg.URL, vb)
	return vb.Build()
}

type client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

// New creates a new store client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid store client config")
	}

	return &client{
		url:        strings.TrimRight(cfg.URL, "/"),
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

func (c *client) Insert(ctx context.Context, payload *entities.SeedPayload) (*entities.StoredRecord, error) {
	if payload == nil {
		return nil, errors.InvalidArgument("payload cannot be nil")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal payload for %s", payload.Name)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build insert request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := rest.Send(ctx, c.httpClient, req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert %s", payload.Name)
	}
	defer rest.Drain(resp)

	if !rest.IsSuccess(resp.StatusCode) {
		respBody := rest.ReadBody(resp)
		return nil, errors.Upstreamf(resp.StatusCode, "store insert failed with status %d: %s", resp.StatusCode, respBody).
			WithMeta(errors.MetaBody, respBody)
	}

	var record entities.StoredRecord
	if err := rest.DecodeJSON(resp, &record); err != nil {
		return nil, err
	}

	c.logger.Debug("inserted record", zap.Int("record_id", record.ID), zap.String("name", record.Name))
	return &record, nil
}

func (c *client) DeleteByID(ctx context.Context, id int) (DeleteResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", c.url, id), nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to build delete request for id=%d", id)
	}

	resp, err := rest.Send(ctx, c.httpClient, req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to delete id=%d", id)
	}
	defer rest.Drain(resp)

	switch {
	case rest.IsSuccess(resp.StatusCode):
		return DeleteResultDeleted, nil
	case resp.StatusCode == http.StatusNotFound:
		return DeleteResultAlreadyAbsent, nil
	default:
		respBody := rest.ReadBody(resp)
		return "", errors.Upstreamf(resp.StatusCode, "failed deleting id=%d with status %d: %s", id, resp.StatusCode, respBody).
			WithMeta(errors.MetaBody, respBody)
	}
}
