package reviews

import (
	"github.com/google/uuid"
)

// SubmitReviewRequest is the payload for reviewing the other party of a
// completed booking
type SubmitReviewRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required" validate:"gte=1,lte=5"`
	Comment   *string   `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// UpdateReviewRequest is the payload for editing an existing review
type UpdateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required" validate:"gte=1,lte=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}
