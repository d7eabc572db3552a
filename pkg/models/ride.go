package models

import (
	"time"

	"github.com/google/uuid"
)

// RideStatus represents the lifecycle state of a ride
type RideStatus string

const (
	RideStatusScheduled RideStatus = "scheduled"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
)

// GenderPreference restricts who may book a ride
type GenderPreference string

const (
	GenderPreferenceAny    GenderPreference = "any"
	GenderPreferenceMale   GenderPreference = "male"
	GenderPreferenceFemale GenderPreference = "female"
)

// RideDirection distinguishes trips toward campus from trips away from it
type RideDirection string

const (
	DirectionToUniversity   RideDirection = "to_university"
	DirectionFromUniversity RideDirection = "from_university"
)

// Ride represents a driver-published trip with fixed seat capacity.
// AvailableSeats is the seat inventory: it always stays within
// [0, TotalSeats] and is only mutated inside booking/lifecycle
// transactions. TrafficFee is computed once at creation and never changes.
type Ride struct {
	ID               uuid.UUID        `json:"id" db:"id"`
	DriverID         uuid.UUID        `json:"driver_id" db:"driver_id"`
	Origin           string           `json:"origin" db:"origin"`
	Destination      string           `json:"destination" db:"destination"`
	OriginLat        *float64         `json:"origin_lat,omitempty" db:"origin_lat"`
	OriginLng        *float64         `json:"origin_lng,omitempty" db:"origin_lng"`
	DestinationLat   *float64         `json:"destination_lat,omitempty" db:"destination_lat"`
	DestinationLng   *float64         `json:"destination_lng,omitempty" db:"destination_lng"`
	DepartureTime    time.Time        `json:"departure_time" db:"departure_time"`
	TotalSeats       int              `json:"total_seats" db:"total_seats"`
	AvailableSeats   int              `json:"available_seats" db:"available_seats"`
	PricePerSeat     float64          `json:"price_per_seat" db:"price_per_seat"`
	TrafficFee       float64          `json:"traffic_fee" db:"traffic_fee"`
	Status           RideStatus       `json:"status" db:"status"`
	GenderPreference GenderPreference `json:"gender_preference" db:"gender_preference"`
	UniversityID     *string          `json:"university_id,omitempty" db:"university_id"`
	Direction        *RideDirection   `json:"direction,omitempty" db:"direction"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}
