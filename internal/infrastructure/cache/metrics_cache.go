// Package cache guarda resultados de métricas ya calculados en Redis para que
// varias réplicas del monitor compartan el trabajo.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/inventario-monitor/internal/application/inventory"
	"github.com/jhoicas/inventario-monitor/internal/domain/entity"
	"github.com/jhoicas/inventario-monitor/pkg/config"
)

const (
	metricsKeyPrefix = "inventory:metrics"
	scanBatchSize    = 100
	defaultTTL       = time.Minute
)

// MetricsCache caché compartido de MetricsResult por (snapshot, criterio).
// Un miss devuelve (nil, false, nil).
type MetricsCache interface {
	Get(ctx context.Context, snapshotID string, criteria entity.FilterCriteria) (*entity.MetricsResult, bool, error)
	Set(ctx context.Context, snapshotID string, criteria entity.FilterCriteria, result entity.MetricsResult) error
	InvalidateAll(ctx context.Context) error
	Close() error
}

var (
	_ appinventory.MetricsCache = (*redisMetricsCache)(nil)
	_ appinventory.MetricsCache = (*noopMetricsCache)(nil)
)

type redisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopMetricsCache struct{}

// NewMetricsCache devuelve el caché Redis si está habilitado, si no uno que no guarda nada.
func NewMetricsCache(ctx context.Context, cfg config.CacheConfig) (MetricsCache, error) {
	if !cfg.Enabled {
		return NewNoopMetricsCache(), nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &redisMetricsCache{client: client, ttl: ttl}, nil
}

// NewNoopMetricsCache caché deshabilitado.
func NewNoopMetricsCache() MetricsCache {
	return &noopMetricsCache{}
}

func (c *redisMetricsCache) Get(ctx context.Context, snapshotID string, criteria entity.FilterCriteria) (*entity.MetricsResult, bool, error) {
	payload, err := c.client.Get(ctx, BuildMetricsKey(snapshotID, criteria)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result entity.MetricsResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode metrics cache: %w", err)
	}
	if result.PerSupplierValue == nil {
		result.PerSupplierValue = map[string]decimal.Decimal{}
	}
	return &result, true, nil
}

func (c *redisMetricsCache) Set(ctx context.Context, snapshotID string, criteria entity.FilterCriteria, result entity.MetricsResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode metrics cache: %w", err)
	}
	if err := c.client.Set(ctx, BuildMetricsKey(snapshotID, criteria), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisMetricsCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, metricsKeyPrefix+":*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close libera las conexiones del cliente Redis.
func (c *redisMetricsCache) Close() error {
	return c.client.Close()
}

func (n *noopMetricsCache) Get(ctx context.Context, snapshotID string, criteria entity.FilterCriteria) (*entity.MetricsResult, bool, error) {
	return nil, false, nil
}

func (n *noopMetricsCache) Set(ctx context.Context, snapshotID string, criteria entity.FilterCriteria, result entity.MetricsResult) error {
	return nil
}

func (n *noopMetricsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}
	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

// BuildMetricsKey arma la clave inventory:metrics:{snapshot}:{sha1(criterio)}.
// Sólo el proveedor vacío se normaliza a "All"; el resto distingue mayúsculas.
func BuildMetricsKey(snapshotID string, criteria entity.FilterCriteria) string {
	c := criteria.Normalized()
	raw := "supplier=" + c.Supplier + "|min_quantity=" + strconv.Itoa(c.MinQuantity)
	sum := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s:%s", metricsKeyPrefix, snapshotID, hex.EncodeToString(sum[:]))
}

func (n *noopMetricsCache) Close() error {
	return nil
}
