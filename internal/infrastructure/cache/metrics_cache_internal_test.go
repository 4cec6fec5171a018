package cache

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
)

func TestRedisMetricsCache_CloseCierraElCliente(t *testing.T) {
	// El cliente no conecta hasta el primer comando.
	c := &redisMetricsCache{client: redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), ttl: defaultTTL}
	require.NoError(t, c.Close())

	_, _, err := c.Get(context.Background(), "s", entity.DefaultFilterCriteria())
	assert.ErrorIs(t, err, redis.ErrClosed)
}
