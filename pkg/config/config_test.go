package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-monitor/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir()) // sin .env ni config.env
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 25*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, -3, cfg.Refresh.DeltaMin)
	assert.Equal(t, 3, cfg.Refresh.DeltaMax)
	assert.Equal(t, 10, cfg.Filter.DefaultMinQuantity)
	assert.Equal(t, 100, cfg.Filter.MaxMinQuantity)
	assert.Equal(t, config.DatasetSourceFile, cfg.Dataset.Source)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REFRESH_INTERVAL_SECONDS", "5")
	t.Setenv("REFRESH_DELTA_MIN", "-10")
	t.Setenv("REFRESH_DELTA_MAX", "2")
	t.Setenv("DATASET_PATH", "s3://bucket/inv.xlsx")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, -10, cfg.Refresh.DeltaMin)
	assert.Equal(t, 2, cfg.Refresh.DeltaMax)
	assert.Equal(t, "s3://bucket/inv.xlsx", cfg.Dataset.Path)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_RangoInvertidoEsError(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REFRESH_DELTA_MIN", "4")
	t.Setenv("REFRESH_DELTA_MAX", "3")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{
			Dataset: config.DatasetConfig{Source: config.DatasetSourceFile, Path: "x.csv"},
			Refresh: config.RefreshConfig{Interval: time.Second, DeltaMin: -3, DeltaMax: 3},
		}
	}
	require.NoError(t, valid().Validate())

	c := valid()
	c.Refresh.Interval = 0
	assert.Error(t, c.Validate(), "intervalo cero")

	c = valid()
	c.Dataset.Source = "ftp"
	assert.Error(t, c.Validate(), "fuente desconocida")

	c = valid()
	c.Dataset.Path = ""
	assert.Error(t, c.Validate(), "ruta vacía")

	c = valid()
	c.Dataset = config.DatasetConfig{Source: config.DatasetSourcePostgres}
	assert.NoError(t, c.Validate(), "postgres no necesita ruta")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/inv?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", db.ConnectionString())
}
