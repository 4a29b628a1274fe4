package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/mealchain/internal/config"
	"github.com/andresuchdata/mealchain/internal/domain"
)

const (
	forecastKeyPrefix     = "forecast:run"
	forecastScanBatchSize = 100
	defaultForecastTTL    = time.Minute
)

// ForecastKey identifies a forecast run. Two requests with the same key on
// the same calendar day read the same snapshot window and produce the same
// result.
type ForecastKey struct {
	Day                time.Time
	PredictionPeriod   int
	TargetItems        []string
	IncludeSeasonality bool
	AlertThreshold     float64
}

type ForecastCache interface {
	Get(ctx context.Context, key ForecastKey) (*domain.ForecastResponse, bool, error)
	Set(ctx context.Context, key ForecastKey, resp *domain.ForecastResponse) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

// NewForecastCache connects to Redis when caching is enabled and returns a
// no-op cache otherwise. An unreachable Redis is an error.
func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	opts, err := forecastRedisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("forecast cache: redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.ForecastTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultForecastTTL
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// forecastRedisOptions prefers REDIS_URL and falls back to host, port and db.
func forecastRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("forecast cache: invalid redis url: %w", err)
		}
		return opts, nil
	}

	host, port := cfg.RedisHost, cfg.RedisPort
	if host == "" {
		host = "127.0.0.1"
	}
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, key ForecastKey) (*domain.ForecastResponse, bool, error) {
	payload, err := c.client.Get(ctx, buildForecastKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("forecast cache: redis get failed: %w", err)
	}

	var resp domain.ForecastResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return &resp, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, key ForecastKey, resp *domain.ForecastResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, buildForecastKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("forecast cache: redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll deletes every cached run, whatever its day or request hash.
func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, forecastKeyPrefix+":*", forecastScanBatchSize).Iterator()

	pending := make([]string, 0, forecastScanBatchSize)
	for iter.Next(ctx) {
		pending = append(pending, iter.Val())
		if len(pending) == forecastScanBatchSize {
			if err := c.client.Del(ctx, pending...).Err(); err != nil {
				return fmt.Errorf("forecast cache: delete failed: %w", err)
			}
			pending = pending[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("forecast cache: scan failed: %w", err)
	}

	if len(pending) > 0 {
		if err := c.client.Del(ctx, pending...).Err(); err != nil {
			return fmt.Errorf("forecast cache: delete failed: %w", err)
		}
	}
	return nil
}

func (n *noopForecastCache) Get(ctx context.Context, key ForecastKey) (*domain.ForecastResponse, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, key ForecastKey, resp *domain.ForecastResponse) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildForecastKey(key ForecastKey) string {
	return fmt.Sprintf("%s:%s:%s", forecastKeyPrefix, key.Day.Format("2006-01-02"), forecastKeyHash(key))
}

func forecastKeyHash(key ForecastKey) string {
	parts := []string{
		"period=" + strconv.Itoa(key.PredictionPeriod),
		"seasonality=" + strconv.FormatBool(key.IncludeSeasonality),
		"threshold=" + strconv.FormatFloat(key.AlertThreshold, 'f', -1, 64),
		"items=" + joinItemIDs(key.TargetItems),
	}

	raw := strings.Join(parts, "|")
	sum := sha1.Sum([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// joinItemIDs sorts and de-duplicates ids. IDs are case-sensitive.
func joinItemIDs(ids []string) string {
	c := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		c = append(c, id)
	}
	sort.Strings(c)
	return strings.Join(c, ",")
}
