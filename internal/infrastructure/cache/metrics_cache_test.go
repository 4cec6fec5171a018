package cache_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/internal/infrastructure/cache"
	"github.com/jhoicas/inventario-monitor/pkg/config"
)

func TestBuildMetricsKey_PrefijoYSnapshot(t *testing.T) {
	key := cache.BuildMetricsKey("snap-1", entity.FilterCriteria{Supplier: "Acme", MinQuantity: 10})
	assert.True(t, strings.HasPrefix(key, "inventory:metrics:snap-1:"), key)
	// sha1 en hex = 40 caracteres
	assert.Len(t, strings.TrimPrefix(key, "inventory:metrics:snap-1:"), 40)
}

func TestBuildMetricsKey_VacioEquivaleATodos(t *testing.T) {
	a := cache.BuildMetricsKey("s", entity.FilterCriteria{Supplier: "", MinQuantity: 3})
	b := cache.BuildMetricsKey("s", entity.FilterCriteria{Supplier: entity.AllSuppliers, MinQuantity: 3})
	assert.Equal(t, a, b)
}

func TestBuildMetricsKey_DistingueCriterios(t *testing.T) {
	base := entity.FilterCriteria{Supplier: "Acme", MinQuantity: 10}
	keys := map[string]struct{}{}
	for _, k := range []string{
		cache.BuildMetricsKey("s", base),
		cache.BuildMetricsKey("s", entity.FilterCriteria{Supplier: "acme", MinQuantity: 10}),
		cache.BuildMetricsKey("s", entity.FilterCriteria{Supplier: "Acme", MinQuantity: 11}),
		cache.BuildMetricsKey("otro", base),
	} {
		keys[k] = struct{}{}
	}
	assert.Len(t, keys, 4)
}

func TestNewMetricsCache_DeshabilitadoEsNoop(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewMetricsCache(ctx, config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	crit := entity.DefaultFilterCriteria()
	require.NoError(t, c.Set(ctx, "s", crit, entity.MetricsResult{
		FilteredCount:    1,
		TotalValue:       decimal.NewFromInt(5),
		PerSupplierValue: map[string]decimal.Decimal{"Acme": decimal.NewFromInt(5)},
	}))

	got, ok, err := c.Get(ctx, "s", crit)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestNewMetricsCache_URLInvalida(t *testing.T) {
	_, err := cache.NewMetricsCache(context.Background(), config.CacheConfig{Enabled: true, RedisURL: "::no-es-url"})
	assert.Error(t, err)
}

func TestNoopMetricsCache_CloseEsIdempotente(t *testing.T) {
	c := cache.NewNoopMetricsCache()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
