package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID
	UserIDKey = "user_id"
	// UserRoleKey is the gin context key for the authenticated user role
	UserRoleKey = "user_role"
)

// Claims are the JWT claims issued by the auth service
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// ParseBearerToken validates an Authorization header value and returns its
// claims. Callers that only need a best-effort identity (the rate limiter)
// use it directly; AuthMiddleware turns its errors into 401s.
func ParseBearerToken(header, secret string) (*Claims, error) {
	if header == "" {
		return nil, common.NewUnauthorizedError("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, common.NewUnauthorizedError("invalid authorization header")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, common.NewUnauthorizedError("invalid or expired token")
	}

	return claims, nil
}

// AuthMiddleware validates the Bearer token and stores the caller identity
// in the gin context
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ParseBearerToken(c.GetHeader("Authorization"), secret)
		if err != nil {
			message := "invalid or expired token"
			if appErr, ok := err.(*common.AppError); ok {
				message = appErr.Message
			}
			common.ErrorResponse(c, http.StatusUnauthorized, message)
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole rejects requests whose authenticated role doesn't match
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if r, _ := c.Get(UserRoleKey); r != role {
			common.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user ID from gin context
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, common.NewUnauthorizedError("user not authenticated")
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, common.NewUnauthorizedError("user not authenticated")
	}
	return id, nil
}

// GetUserRole extracts the authenticated user role from gin context
func GetUserRole(c *gin.Context) string {
	if r, exists := c.Get(UserRoleKey); exists {
		if role, ok := r.(string); ok {
			return role
		}
	}
	return ""
}
