package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/twobeats/twobeats-backend/internal/logger"
	"github.com/twobeats/twobeats-backend/internal/types"
)

// ChartCache is a short-lived cache for ranking listings, keyed by the
// filter parameters. It is a latency optimization only; a miss or a cache
// failure never fails the read path.
type ChartCache interface {
	Get(ctx context.Context, key string) ([]*types.RankingEntry, bool)
	Set(ctx context.Context, key string, entries []*types.RankingEntry)
	Close() error
}

type chartCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewChartCache connects to REDIS_ADDR. The caller treats a missing address
// as "cache off" and passes the resulting nil interface around.
func NewChartCache(log *logger.Logger, ttl time.Duration) (ChartCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
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

	return &chartCache{
		log: log.With("service", "ChartCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (cc *chartCache) Get(ctx context.Context, key string) ([]*types.RankingEntry, bool) {
	raw, err := cc.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			cc.log.Warn("Chart cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var entries []*types.RankingEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		cc.log.Warn("Chart cache entry corrupt, dropping", "key", key, "error", err)
		_ = cc.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return entries, true
}

func (cc *chartCache) Set(ctx context.Context, key string, entries []*types.RankingEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		cc.log.Warn("Chart cache marshal failed", "key", key, "error", err)
		return
	}
	if err := cc.rdb.Set(ctx, key, raw, cc.ttl).Err(); err != nil {
		cc.log.Warn("Chart cache write failed", "key", key, "error", err)
	}
}

func (cc *chartCache) Close() error {
	return cc.rdb.Close()
}
