package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-tokenomics/internal/api/shared/errors"
	"github.com/feral-file/ff-tokenomics/internal/logger"
	"github.com/feral-file/ff-tokenomics/internal/ratelimit"
)

// RateLimit returns a gin middleware that limits requests per client IP.
// Requests are let through when the limiter itself fails.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
		if err != nil {
			logger.WarnCtx(c.Request.Context(), "Rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			apiErr := apierrors.NewRateLimitedError()
			c.AbortWithStatusJSON(apiErr.StatusCode(), apiErr)
			return
		}

		c.Next()
	}
}
