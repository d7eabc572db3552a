package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's role in the marketplace
type UserRole string

const (
	RoleDriver    UserRole = "driver"
	RolePassenger UserRole = "passenger"
)

// Gender is used for ride gender preferences
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User represents a registered user
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PhoneNumber  string    `json:"phone_number" db:"phone_number"`
	Role         UserRole  `json:"role" db:"role"`
	Gender       Gender    `json:"gender" db:"gender"`
	UniversityID *string   `json:"university_id,omitempty" db:"university_id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DriverProfile is the denormalized per-driver aggregate row. Rating and
// TotalRides are caches recomputed from reviews and completed rides; the
// review and booking tables remain the source of truth.
type DriverProfile struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Rating       float64   `json:"rating" db:"rating"`
	TotalRides   int       `json:"total_rides" db:"total_rides"`
	VehicleModel *string   `json:"vehicle_model,omitempty" db:"vehicle_model"`
	VehiclePlate *string   `json:"vehicle_plate,omitempty" db:"vehicle_plate"`
	VehicleColor *string   `json:"vehicle_color,omitempty" db:"vehicle_color"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
