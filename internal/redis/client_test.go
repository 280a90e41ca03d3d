package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/creature-seeder/internal/redis"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	testCases := []struct {
		name     string
		endpoint string
	}{
		{name: "host and port", endpoint: mr.Addr()},
		{name: "redis url", endpoint: "redis://" + mr.Addr() + "/0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := redis.NewClient(tc.endpoint, nil)
			require.NoError(t, err)
			defer func() { _ = client.Close() }()

			assert.NoError(t, client.Ping(context.Background()).Err())
		})
	}
}

func TestNewClientErrors(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.Error(t, err)

	_, err = redis.NewClient("redis://:bad:url", nil)
	assert.Error(t, err)
}
