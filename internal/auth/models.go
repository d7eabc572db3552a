package auth

import (
	"time"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// RegisterRequest is the payload for creating an account. Drivers may
// attach their vehicle details at signup.
type RegisterRequest struct {
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"required,min=8"`
	FirstName    string  `json:"first_name" binding:"required" validate:"max=100"`
	LastName     string  `json:"last_name" binding:"required" validate:"max=100"`
	PhoneNumber  string  `json:"phone_number" binding:"required" validate:"max=20"`
	Role         string  `json:"role" binding:"required" validate:"oneof=driver passenger"`
	Gender       string  `json:"gender" binding:"required" validate:"oneof=male female"`
	UniversityID *string `json:"university_id,omitempty"`
	VehicleModel *string `json:"vehicle_model,omitempty"`
	VehiclePlate *string `json:"vehicle_plate,omitempty"`
	VehicleColor *string `json:"vehicle_color,omitempty"`
}

// LoginRequest is the payload for authenticating
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}
