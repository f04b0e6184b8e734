package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/build-api/internal/redis"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(mr.Addr(), &redis.Options{PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	mr.CheckGet(t, "k", "v")
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := redis.NewClient("", nil)
	assert.Error(t, err)

	_, err = redis.NewClusterClient(nil, nil)
	assert.Error(t, err)
}
