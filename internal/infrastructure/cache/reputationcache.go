package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fieldserv-inc/fieldserv/internal/application/rating/dto"
	sharedConfig "github.com/fieldserv-inc/fieldserv/internal/shared/config"
)

const (
	reputationKeyPrefix = "fieldserv:reputation:"
	reputationTTL       = 10 * time.Minute
)

// RedisReputationCache caches contractor reputation DTOs in redis. A miss
// returns (nil, nil) so callers fall through to the repository.
type RedisReputationCache struct {
	client *redis.Client
}

func NewRedisClient(cfg *sharedConfig.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisReputationCache(client *redis.Client) *RedisReputationCache {
	return &RedisReputationCache{client: client}
}

func reputationKey(contractorID uint) string {
	return fmt.Sprintf("%s%d", reputationKeyPrefix, contractorID)
}

func (c *RedisReputationCache) Get(ctx context.Context, contractorID uint) (*dto.ReputationDTO, error) {
	data, err := c.client.Get(ctx, reputationKey(contractorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read reputation cache: %w", err)
	}

	var rep dto.ReputationDTO
	if err := json.Unmarshal(data, &rep); err != nil {
		// Corrupt entry. Treat as a miss so the repository result overwrites it.
		return nil, nil
	}

	return &rep, nil
}

func (c *RedisReputationCache) Set(ctx context.Context, rep *dto.ReputationDTO) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal reputation: %w", err)
	}

	if err := c.client.Set(ctx, reputationKey(rep.ContractorID), data, reputationTTL).Err(); err != nil {
		return fmt.Errorf("failed to write reputation cache: %w", err)
	}

	return nil
}

func (c *RedisReputationCache) Invalidate(ctx context.Context, contractorID uint) error {
	if err := c.client.Del(ctx, reputationKey(contractorID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate reputation cache: %w", err)
	}
	return nil
}
