package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	endpointSetKey = "llm-mock:metrics:endpoints"
	statsKeyPrefix = "llm-mock:metrics:"
)

// RedisRecorder keeps counters in Redis hashes so multiple mock instances
// can aggregate into one view.
type RedisRecorder struct {
	rdb *redis.Client
}

// NewRedisRecorder wraps an existing Redis client.
func NewRedisRecorder(rdb *redis.Client) *RedisRecorder {
	return &RedisRecorder{rdb: rdb}
}

func statsKey(endpoint string) string {
	return statsKeyPrefix + endpoint
}

func (r *RedisRecorder) Record(ctx context.Context, endpoint string, status int, latency time.Duration) error {
	pipe := r.rdb.Pipeline()
	pipe.SAdd(ctx, endpointSetKey, endpoint)
	key := statsKey(endpoint)
	pipe.HIncrBy(ctx, key, "requests", 1)
	if status >= 400 {
		pipe.HIncrBy(ctx, key, "errors", 1)
	}
	pipe.HIncrBy(ctx, key, "total_latency_ms", latency.Milliseconds())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("metrics: record %s: %w", endpoint, err)
	}
	return nil
}

func (r *RedisRecorder) Snapshot(ctx context.Context) (map[string]EndpointStats, error) {
	endpoints, err := r.rdb.SMembers(ctx, endpointSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("metrics: list endpoints: %w", err)
	}

	out := make(map[string]EndpointStats, len(endpoints))
	for _, ep := range endpoints {
		var s EndpointStats
		if err := r.rdb.HGetAll(ctx, statsKey(ep)).Scan(&s); err != nil {
			return nil, fmt.Errorf("metrics: read stats for %s: %w", ep, err)
		}
		out[ep] = s
	}
	return out, nil
}
