package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/tmaziere/naturecamp-backend/internal/logger"
)

// RedisCache mirrors the in-process tier so a restarted or sibling process on
// the same box still sees the session's completion state. It is optional:
// when REDIS_ADDR is unset the completion service runs on memory alone.
type RedisCache struct {
	log       *logger.Logger
	rdb       *goredis.Client
	namespace string
	ttl       time.Duration
}

func NewRedisCache(log *logger.Logger, namespace string, ttl time.Duration) (*RedisCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if namespace == "" {
		namespace = "naturecamp"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{
		log:       log.With("service", "RedisCompletionCache"),
		rdb:       rdb,
		namespace: namespace,
		ttl:       ttl,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, stageID uuid.UUID) ([]int, bool, error) {
	raw, err := c.rdb.Get(ctx, c.setKey(stageID)).Result()
	if err != nil {
		if err == goredis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		c.log.Warn("bad completion payload in redis, treating as absent", "stage_id", stageID, "error", err)
		return nil, false, nil
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, true, nil
}

func (c *RedisCache) Put(ctx context.Context, stageID uuid.UUID, cardIDs []int) error {
	if cardIDs == nil {
		cardIDs = []int{}
	}
	raw, err := json.Marshal(cardIDs)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.setKey(stageID), raw, c.ttl).Err()
}

func (c *RedisCache) PutToggleState(ctx context.Context, stageID uuid.UUID, state map[string]bool) error {
	if state == nil {
		state = map[string]bool{}
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.toggleKey(stageID), raw, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func (c *RedisCache) setKey(stageID uuid.UUID) string {
	return fmt.Sprintf("%s:completion:%s", c.namespace, stageID)
}

func (c *RedisCache) toggleKey(stageID uuid.UUID) string {
	return fmt.Sprintf("%s:completion-toggles:%s", c.namespace, stageID)
}
