package reviews

import (
	"context"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/logger"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// Service handles review business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new reviews service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Submit reviews the other party of a completed booking. The reviewee is
// derived, never client-supplied: the driver reviews the passenger and the
// passenger reviews the driver. One review per (booking, reviewer).
func (s *Service) Submit(ctx context.Context, reviewerID uuid.UUID, req *SubmitReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, common.NewBadRequestError("rating must be between 1 and 5", nil)
	}

	var review *models.Review
	err := s.repo.InTx(ctx, func(tx TxStore) error {
		booking, err := tx.GetBooking(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return common.NewNotFoundError("booking not found", nil)
		}
		if booking.Status != models.BookingStatusCompleted {
			return common.NewConflictError("only completed bookings can be reviewed")
		}

		ride, err := tx.GetRide(ctx, booking.RideID)
		if err != nil {
			return err
		}
		if ride == nil {
			return common.NewNotFoundError("ride not found", nil)
		}

		var revieweeID uuid.UUID
		switch reviewerID {
		case booking.PassengerID:
			revieweeID = ride.DriverID
		case ride.DriverID:
			revieweeID = booking.PassengerID
		default:
			return common.NewForbiddenError("only the booking's passenger or driver can review it")
		}

		existing, err := tx.ReviewForBooking(ctx, booking.ID, reviewerID)
		if err != nil {
			return err
		}
		if existing != nil {
			return common.NewConflictError("you already reviewed this booking")
		}

		review = &models.Review{
			ID:         uuid.New(),
			BookingID:  booking.ID,
			ReviewerID: reviewerID,
			RevieweeID: revieweeID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := tx.InsertReview(ctx, review); err != nil {
			return err
		}
		return s.recomputeRating(ctx, tx, revieweeID)
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("reviewee_id", review.RevieweeID.String()),
		zap.Int("rating", review.Rating),
	)

	return review, nil
}

// Update edits the caller's review and recomputes the reviewee's aggregate
func (s *Service) Update(ctx context.Context, reviewerID, reviewID uuid.UUID, req *UpdateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, common.NewBadRequestError("rating must be between 1 and 5", nil)
	}

	var review *models.Review
	err := s.repo.InTx(ctx, func(tx TxStore) error {
		r, err := tx.ReviewForUpdate(ctx, reviewID)
		if err != nil {
			return err
		}
		if r == nil {
			return common.NewNotFoundError("review not found", nil)
		}
		if r.ReviewerID != reviewerID {
			return common.NewForbiddenError("not authorized to edit this review")
		}

		r.Rating = req.Rating
		r.Comment = req.Comment
		if err := tx.UpdateReview(ctx, r); err != nil {
			return err
		}
		review = r
		return s.recomputeRating(ctx, tx, r.RevieweeID)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the caller's review and recomputes the reviewee's aggregate
func (s *Service) Delete(ctx context.Context, reviewerID, reviewID uuid.UUID) error {
	return s.repo.InTx(ctx, func(tx TxStore) error {
		r, err := tx.ReviewForUpdate(ctx, reviewID)
		if err != nil {
			return err
		}
		if r == nil {
			return common.NewNotFoundError("review not found", nil)
		}
		if r.ReviewerID != reviewerID {
			return common.NewForbiddenError("not authorized to delete this review")
		}

		if err := tx.DeleteReview(ctx, reviewID); err != nil {
			return err
		}
		return s.recomputeRating(ctx, tx, r.RevieweeID)
	})
}

// Get returns a review by ID
func (s *Service) Get(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	review, err := s.repo.Get(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, common.NewNotFoundError("review not found", nil)
	}
	return review, nil
}

// ListForUser returns the reviews held against a user, newest first
func (s *Service) ListForUser(ctx context.Context, revieweeID uuid.UUID, limit, offset int) ([]models.Review, int64, error) {
	return s.repo.ListForUser(ctx, revieweeID, limit, offset)
}

// recomputeRating replaces the reviewee's cached aggregate with the mean of
// every rating currently held against them, rounded to two decimals, zero
// when none remain. Always runs inside the mutating transaction.
func (s *Service) recomputeRating(ctx context.Context, tx TxStore, revieweeID uuid.UUID) error {
	ratings, err := tx.RatingsFor(ctx, revieweeID)
	if err != nil {
		return err
	}

	var aggregate float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r
		}
		aggregate = math.Round(float64(sum)/float64(len(ratings))*100) / 100
	}
	return tx.SetUserRating(ctx, revieweeID, aggregate)
}
