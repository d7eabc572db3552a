package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/config"
)

// window is a fixed-window counter: first INCR of a window sets the expiry,
// so a stuck key can never throttle forever.
var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// Rule is the limit applied to a single caller
type Rule struct {
	Limit int
	Burst int
}

// Limiter is a Redis-backed fixed-window rate limiter
type Limiter struct {
	client redis.Cmdable
	script *redis.Script
	cfg    config.RateLimitConfig
	now    func() time.Time
}

// NewLimiter creates a limiter from configuration
func NewLimiter(client redis.Cmdable, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{
		client: client,
		script: windowScript,
		cfg:    cfg,
		now:    time.Now,
	}
}

// WithNow overrides the clock, for tests
func (l *Limiter) WithNow(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// RuleFor returns the rule for a caller; authenticated callers get the
// default limits, anonymous ones the stricter anonymous limits.
func (l *Limiter) RuleFor(authenticated bool) Rule {
	if authenticated {
		return Rule{Limit: l.cfg.DefaultLimit, Burst: l.cfg.DefaultBurst}
	}
	return Rule{Limit: l.cfg.AnonymousLimit, Burst: l.cfg.AnonymousBurst}
}

// Allow reports whether the identified caller may proceed. When the limiter
// is disabled or Redis is unreachable the request is allowed: throttling is
// protection, not a correctness requirement.
func (l *Limiter) Allow(ctx context.Context, identity string, rule Rule) (bool, error) {
	if !l.cfg.Enabled {
		return true, nil
	}

	window := l.now().Unix() / int64(l.cfg.WindowSeconds)
	key := fmt.Sprintf("%s:%s:%d", l.cfg.RedisPrefix, identity, window)

	count, err := l.script.Run(ctx, l.client, []string{key}, l.cfg.WindowSeconds).Int()
	if err != nil {
		return true, err
	}

	return count <= rule.Limit+rule.Burst, nil
}
