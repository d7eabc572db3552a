package auth

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/logger"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/middleware"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// Service handles authentication business logic
type Service struct {
	repo      RepositoryInterface
	jwtSecret string
	tokenTTL  time.Duration
}

// NewService creates a new auth service
func NewService(repo RepositoryInterface, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Register creates a new account. Drivers get an empty driver profile in
// the same transaction.
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	role := models.UserRole(req.Role)
	if role != models.RoleDriver && role != models.RolePassenger {
		return nil, common.NewBadRequestError("role must be driver or passenger", nil)
	}
	gender := models.Gender(req.Gender)
	if gender != models.GenderMale && gender != models.GenderFemale {
		return nil, common.NewBadRequestError("gender must be male or female", nil)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, common.NewConflictError("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewInternalServerError("failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Role:         role,
		Gender:       gender,
		UniversityID: req.UniversityID,
		IsActive:     true,
	}

	var profile *models.DriverProfile
	if role == models.RoleDriver {
		profile = &models.DriverProfile{
			UserID:       user.ID,
			VehicleModel: req.VehicleModel,
			VehiclePlate: req.VehiclePlate,
			VehicleColor: req.VehicleColor,
		}
	}

	if err := s.repo.CreateUser(ctx, user, profile); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	return user, nil
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NewUnauthorizedError("invalid email or password")
	}
	if !user.IsActive {
		return nil, common.NewForbiddenError("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.NewUnauthorizedError("invalid email or password")
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, common.NewInternalServerError("failed to sign token")
	}

	logger.WithContext(ctx).Info("user logged in",
		zap.String("user_id", user.ID.String()),
	)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// GetProfile returns the authenticated user's account
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NewNotFoundError("user not found", nil)
	}
	return user, nil
}
