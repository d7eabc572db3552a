package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// Service handles user profile business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new users service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// GetProfile returns a user's public profile, including the driver cache
// for drivers. The password hash never serializes.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.NewNotFoundError("user not found", nil)
	}

	profile := &PublicProfile{User: user}
	if user.Role == models.RoleDriver {
		dp, err := s.repo.GetDriverProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		profile.DriverProfile = dp
	}
	return profile, nil
}

// UpdateDriverProfile edits the caller's own vehicle details. Rating and
// total_rides are derived caches and cannot be set here.
func (s *Service) UpdateDriverProfile(ctx context.Context, userID uuid.UUID, req *UpdateDriverProfileRequest) (*models.DriverProfile, error) {
	profile, err := s.repo.GetDriverProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, common.NewNotFoundError("driver profile not found", nil)
	}

	if req.VehicleModel != nil {
		profile.VehicleModel = req.VehicleModel
	}
	if req.VehiclePlate != nil {
		profile.VehiclePlate = req.VehiclePlate
	}
	if req.VehicleColor != nil {
		profile.VehicleColor = req.VehicleColor
	}

	if err := s.repo.UpdateDriverProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
