package ratelimit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/logger"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
)

// Middleware throttles requests per authenticated user, falling back to the
// client IP for anonymous callers. It runs before AuthMiddleware, so it
// resolves the caller from the bearer token itself; invalid tokens fall
// through to the anonymous limits and are rejected later by the auth layer.
func Middleware(limiter *Limiter, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, authenticated := resolveIdentity(c, jwtSecret)

		allowed, err := limiter.Allow(c.Request.Context(), identity, limiter.RuleFor(authenticated))
		if err != nil {
			logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
		}
		if !allowed {
			common.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveIdentity keys the caller by user ID when a valid token is present,
// by client IP otherwise
func resolveIdentity(c *gin.Context, jwtSecret string) (string, bool) {
	if userID, err := middleware.GetUserID(c); err == nil {
		return userID.String(), true
	}
	if claims, err := middleware.ParseBearerToken(c.GetHeader("Authorization"), jwtSecret); err == nil {
		return claims.UserID.String(), true
	}
	return c.ClientIP(), false
}
