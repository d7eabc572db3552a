package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// RepositoryInterface defines the interface for auth repository operations.
// Lookups return (nil, nil) when the user doesn't exist.
type RepositoryInterface interface {
	// CreateUser inserts the user row and, for drivers, the empty driver
	// profile, in one transaction
	CreateUser(ctx context.Context, user *models.User, profile *models.DriverProfile) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}
