package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
)

const testJWTSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := middleware.Claims{
		UserID: userID,
		Role:   "passenger",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func testContext(t *testing.T, authorization string) *gin.Context {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/rides", nil)
	c.Request.RemoteAddr = "192.0.2.1:52412"
	if authorization != "" {
		c.Request.Header.Set("Authorization", authorization)
	}
	return c
}

// The limiter runs before the auth middleware, so it must recognize the
// caller from the bearer token on its own; otherwise every authenticated
// user behind one NAT would share the anonymous per-IP budget.
func TestResolveIdentityBearerToken(t *testing.T) {
	userID := uuid.New()
	c := testContext(t, "Bearer "+signTestToken(t, userID))

	identity, authenticated := resolveIdentity(c, testJWTSecret)

	assert.True(t, authenticated)
	assert.Equal(t, userID.String(), identity)
}

func TestResolveIdentityAnonymous(t *testing.T) {
	c := testContext(t, "")

	identity, authenticated := resolveIdentity(c, testJWTSecret)

	assert.False(t, authenticated)
	assert.Equal(t, "192.0.2.1", identity)
}

func TestResolveIdentityInvalidToken(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
	}{
		{"garbage token", "Bearer not-a-token"},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"wrong secret", "Bearer " + func() string {
			claims := middleware.Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
			return s
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t, tt.authorization)

			identity, authenticated := resolveIdentity(c, testJWTSecret)

			assert.False(t, authenticated)
			assert.Equal(t, "192.0.2.1", identity)
		})
	}
}

func TestResolveIdentityPrefersContext(t *testing.T) {
	userID := uuid.New()
	c := testContext(t, "")
	c.Set(middleware.UserIDKey, userID)

	identity, authenticated := resolveIdentity(c, testJWTSecret)

	assert.True(t, authenticated)
	assert.Equal(t, userID.String(), identity)
}
