package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// Repository handles user database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new users repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetUser gets a user by ID, or nil when it doesn't exist
func (r *Repository) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone_number,
			role, gender, university_id, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`, userID).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.PhoneNumber, &user.Role, &user.Gender, &user.UniversityID,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetDriverProfile gets a driver profile by user ID, or nil when it doesn't exist
func (r *Repository) GetDriverProfile(ctx context.Context, userID uuid.UUID) (*models.DriverProfile, error) {
	var profile models.DriverProfile
	err := r.db.QueryRow(ctx, `
		SELECT user_id, rating, total_rides, vehicle_model, vehicle_plate, vehicle_color,
			created_at, updated_at
		FROM driver_profiles WHERE user_id = $1
	`, userID).Scan(
		&profile.UserID, &profile.Rating, &profile.TotalRides,
		&profile.VehicleModel, &profile.VehiclePlate, &profile.VehicleColor,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateDriverProfile updates the vehicle details of a driver profile
func (r *Repository) UpdateDriverProfile(ctx context.Context, profile *models.DriverProfile) error {
	return r.db.QueryRow(ctx, `
		UPDATE driver_profiles
		SET vehicle_model = $2, vehicle_plate = $3, vehicle_color = $4, updated_at = NOW()
		WHERE user_id = $1
		RETURNING updated_at
	`, profile.UserID, profile.VehicleModel, profile.VehiclePlate, profile.VehicleColor,
	).Scan(&profile.UpdatedAt)
}
