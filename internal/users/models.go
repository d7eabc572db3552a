package users

import (
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// UpdateDriverProfileRequest is the payload for editing vehicle details
type UpdateDriverProfileRequest struct {
	VehicleModel *string `json:"vehicle_model,omitempty" validate:"omitempty,max=100"`
	VehiclePlate *string `json:"vehicle_plate,omitempty" validate:"omitempty,max=20"`
	VehicleColor *string `json:"vehicle_color,omitempty" validate:"omitempty,max=50"`
}

// PublicProfile is what other users see of an account. The rating and ride
// count come from the driver profile cache and are only set for drivers.
type PublicProfile struct {
	User          *models.User          `json:"user"`
	DriverProfile *models.DriverProfile `json:"driver_profile,omitempty"`
}
