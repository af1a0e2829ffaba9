// Package cache guarda em Redis os resultados agregados do dashboard
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/trackrcommerce/trackr-api/internal/config"
	"github.com/trackrcommerce/trackr-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "trackr"

// Cache é o contrato usado pelos serviços de relatório
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache conecta no Redis configurado. Sem REDIS_ADDR o cache fica
// desligado e o retorno é nil, que se comporta como um cache sempre vazio.
func NewRedisCache(ctx context.Context, cfg config.Redis) (*RedisCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar no redis: %w", err)
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &RedisCache{client: client, ttl: ttl}, nil
}

// Get preenche dest com o valor guardado. Retorna false quando a chave não existe.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("erro ao ler chave %s do cache: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("erro ao decodificar chave %s do cache: %w", key, err)
	}

	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("erro ao codificar chave %s para o cache: %w", key, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("erro ao gravar chave %s no cache: %w", key, err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Key monta a chave de um card do dashboard: marca, card e período
func Key(brandID, widget string, dateRange domain.DateRange) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", keyPrefix, brandID, widget, dateRange.StartDate(), dateRange.EndDate())
}
