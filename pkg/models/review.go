package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a rating left by one party of a completed booking for the
// other. At most one review exists per (booking, reviewer).
type Review struct {
	ID         uuid.UUID `json:"id" db:"id"`
	BookingID  uuid.UUID `json:"booking_id" db:"booking_id"`
	ReviewerID uuid.UUID `json:"reviewer_id" db:"reviewer_id"`
	RevieweeID uuid.UUID `json:"reviewee_id" db:"reviewee_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    *string   `json:"comment,omitempty" db:"comment"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}
