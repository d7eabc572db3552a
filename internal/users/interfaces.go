package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// RepositoryInterface defines the user persistence operations. Lookups
// return (nil, nil) when the row doesn't exist.
type RepositoryInterface interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetDriverProfile(ctx context.Context, userID uuid.UUID) (*models.DriverProfile, error)
	UpdateDriverProfile(ctx context.Context, profile *models.DriverProfile) error
}
