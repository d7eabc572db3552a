package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/database"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone_number,
	role, gender, university_id, is_active, created_at, updated_at`

// Repository handles database operations for authentication
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new auth repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user and, when a profile is given, the driver
// profile row alongside it
func (r *Repository) CreateUser(ctx context.Context, user *models.User, profile *models.DriverProfile) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number,
				role, gender, university_id, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at
		`, user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
			user.PhoneNumber, user.Role, user.Gender, user.UniversityID, user.IsActive,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return err
		}

		if profile == nil {
			return nil
		}
		return tx.QueryRow(ctx, `
			INSERT INTO driver_profiles (user_id, vehicle_model, vehicle_plate, vehicle_color)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at, updated_at
		`, profile.UserID, profile.VehicleModel, profile.VehiclePlate, profile.VehicleColor,
		).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	})
}

// GetUserByEmail retrieves a user by email, or nil when none exists
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// GetUserByID retrieves a user by ID, or nil when none exists
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
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
