package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	sharederrors "github.com/mercora/retail-api/internal/shared/errors"
)

// Limiter enforces a fixed-window request quota per client IP, counted in
// Redis so the limit holds across replicas. A nil client disables limiting.
type Limiter struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
	limit  int64
	window time.Duration
}

func NewLimiter(client *redis.Client, logger *slog.Logger, prefix string, limit int64, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		logger: logger,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Middleware rejects requests over the quota with a 429 problem response.
// Redis errors fail open so a cache outage never takes the endpoint down.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil || l.client == nil {
			c.Next()
			return
		}
		allowed, err := l.allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			if l.logger != nil {
				l.logger.Warn("rate limiter unavailable, allowing request", slog.String("error", err.Error()))
			}
			c.Next()
			return
		}
		if !allowed {
			sharederrors.Respond(c, sharederrors.ErrTooManyRequests.
				WithDetail(fmt.Sprintf("limit of %d requests per %s exceeded", l.limit, l.window)).
				WithExtension("retryAfterSeconds", int(l.window.Seconds())))
			c.Abort()
			return
		}
		c.Next()
	}
}

func (l *Limiter) allow(ctx context.Context, clientID string) (bool, error) {
	key := fmt.Sprintf("%s:%s:%d", l.prefix, clientID, time.Now().Unix()/int64(l.window.Seconds()))
	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return count.Val() <= l.limit, nil
}
