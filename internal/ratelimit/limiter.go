package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-tokenomics/internal/adapter"
	"github.com/feral-file/ff-tokenomics/internal/logger"
)

// maxLocalKeys bounds the number of per-client local limiters kept in memory
const maxLocalKeys = 10_000

// Config holds the request rate limit applied to each API client
type Config struct {
	RequestsPerSecond int
	Burst             int
	RedisKeyPrefix    string
	// EnableLocalFallback lets the limiter keep working on in-process buckets while Redis is down
	EnableLocalFallback bool
	// RedisRetryInterval is how long the limiter stays on local buckets before trying Redis again
	RedisRetryInterval time.Duration
}

// Decision is the outcome of a rate limit check
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether a client may perform one more request
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request for key
	Allow(ctx context.Context, key string) (Decision, error)

	// Close releases the Redis connection
	Close() error
}

type limiter struct {
	config Config
	redis  adapter.RedisClient
	clock  adapter.Clock

	redisAvailable atomic.Bool
	redisFailedAt  atomic.Int64

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewLimiter creates a limiter. With a nil Redis client every bucket is kept in process.
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	l := &limiter{
		config: cfg,
		redis:  rc,
		clock:  clock,
		local:  make(map[string]*rate.Limiter),
	}

	if rc == nil {
		logger.Info("Rate limiter using local buckets only",
			zap.Int("requests_per_second", cfg.RequestsPerSecond),
			zap.Int("burst", cfg.Burst),
		)
		return l, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Ping(ctx); err != nil {
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
		l.markRedisDown()
	} else {
		l.redisAvailable.Store(true)
	}

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.useRedis() {
		decision, err := l.allowDistributed(ctx, key)
		if err == nil {
			return decision, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		l.markRedisDown()
		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	if l.redis != nil && !l.config.EnableLocalFallback {
		return Decision{}, fmt.Errorf("redis rate limiter unavailable")
	}
	return l.allowLocal(key), nil
}

// useRedis reports whether the next check should go to Redis.
// After a failure Redis is retried once the retry interval has passed.
func (l *limiter) useRedis() bool {
	if l.redis == nil {
		return false
	}
	if l.redisAvailable.Load() {
		return true
	}
	failedAt := time.Unix(0, l.redisFailedAt.Load())
	return l.clock.Since(failedAt) >= l.config.RedisRetryInterval
}

func (l *limiter) markRedisDown() {
	l.redisAvailable.Store(false)
	l.redisFailedAt.Store(l.clock.Now().UnixNano())
}

func (l *limiter) allowDistributed(ctx context.Context, key string) (Decision, error) {
	res, err := l.redis.Allow(ctx, l.config.RedisKeyPrefix+key, redis_rate.Limit{
		Rate:   l.config.RequestsPerSecond,
		Burst:  l.config.Burst,
		Period: time.Second,
	})
	if err != nil {
		return Decision{}, err
	}

	if !l.redisAvailable.Swap(true) {
		logger.InfoCtx(ctx, "Redis connection restored")
	}

	if res.Allowed == 0 {
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
		)
		return Decision{Allowed: false, Remaining: res.Remaining, RetryAfter: res.RetryAfter}, nil
	}
	return Decision{Allowed: true, Remaining: res.Remaining}, nil
}

func (l *limiter) allowLocal(key string) Decision {
	now := l.clock.Now()

	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		if len(l.local) >= maxLocalKeys {
			l.local = make(map[string]*rate.Limiter)
		}
		lim = rate.NewLimiter(rate.Limit(l.config.RequestsPerSecond), l.config.Burst)
		l.local[key] = lim
	}
	l.mu.Unlock()

	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}
	}
	return Decision{Allowed: true, Remaining: int(lim.TokensAt(now))}
}

func (l *limiter) Close() error {
	if l.redis == nil {
		return nil
	}
	if err := l.redis.Close(); err != nil {
		logger.Warn("Error closing Redis connection", zap.Error(err))
		return err
	}
	return nil
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *Config) error {
	if cfg.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.RedisKeyPrefix == "" {
		cfg.RedisKeyPrefix = "ff:tokenomics:ratelimit:"
	}
	if cfg.RedisRetryInterval <= 0 {
		cfg.RedisRetryInterval = 10 * time.Second
	}
	return nil
}
