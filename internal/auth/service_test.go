package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

const testSecret = "test-secret"

type fakeRepo struct {
	users    map[uuid.UUID]*models.User
	profiles map[uuid.UUID]*models.DriverProfile
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:    make(map[uuid.UUID]*models.User),
		profiles: make(map[uuid.UUID]*models.DriverProfile),
	}
}

func (f *fakeRepo) CreateUser(_ context.Context, user *models.User, profile *models.DriverProfile) error {
	cp := *user
	f.users[user.ID] = &cp
	if profile != nil {
		pcp := *profile
		f.profiles[profile.UserID] = &pcp
	}
	return nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func newTestService(repo *fakeRepo) *Service {
	return NewService(repo, testSecret, time.Hour)
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:       "amal@htu.edu.jo",
		Password:    "correct-horse",
		FirstName:   "Amal",
		LastName:    "Haddad",
		PhoneNumber: "+962790000000",
		Role:        "passenger",
		Gender:      "female",
	}
}

func requireAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*common.AppError)
	require.True(t, ok, "expected *common.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, models.RolePassenger, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.Empty(t, repo.profiles)
}

func TestRegisterDriverGetsProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	req := registerRequest()
	req.Email = "driver@htu.edu.jo"
	req.Role = "driver"
	plate := "22-12345"
	req.VehiclePlate = &plate

	user, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	profile, ok := repo.profiles[user.ID]
	require.True(t, ok)
	assert.Equal(t, &plate, profile.VehiclePlate)
	assert.Equal(t, 0, profile.TotalRides)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	// email comparison is case-insensitive
	req := registerRequest()
	req.Email = "Amal@HTU.edu.jo"
	_, err = svc.Register(context.Background(), req)
	requireAppError(t, err, http.StatusConflict)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc := newTestService(newFakeRepo())

	req := registerRequest()
	req.Role = "admin"
	_, err := svc.Register(context.Background(), req)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "amal@htu.edu.jo",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	// the issued token carries the identity the auth middleware expects
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "passenger", claims.Role)
}

func TestLoginFailures(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "amal@htu.edu.jo", Password: "wrong"})
		requireAppError(t, err, http.StatusUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "nobody@htu.edu.jo", Password: "correct-horse"})
		requireAppError(t, err, http.StatusUnauthorized)
	})

	t.Run("deactivated account", func(t *testing.T) {
		repo.users[user.ID].IsActive = false
		_, err := svc.Login(context.Background(), &LoginRequest{Email: "amal@htu.edu.jo", Password: "correct-horse"})
		requireAppError(t, err, http.StatusForbidden)
	})
}

func TestGetProfile(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	got, err := svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	requireAppError(t, err, http.StatusNotFound)
}
