package bookings

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/logger"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// Service handles booking business logic
type Service struct {
	repo RepositoryInterface
	now  func() time.Time
}

// NewService creates a new bookings service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock, for tests
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create books seats on a ride for a passenger. The seat reservation and
// the booking row write happen in one transaction against the locked ride
// row; a cancelled booking for the same (ride, passenger) pair is
// reactivated in place with a fresh reservation.
func (s *Service) Create(ctx context.Context, passengerID uuid.UUID, req *CreateBookingRequest) (*models.Booking, error) {
	if req.Seats < 1 || req.Seats > MaxSeatsPerBooking {
		return nil, common.NewBadRequestError("seats must be between 1 and 8", nil)
	}

	var booking *models.Booking
	err := s.repo.InTx(ctx, func(tx TxStore) error {
		ride, err := tx.RideForUpdate(ctx, req.RideID)
		if err != nil {
			return err
		}
		if ride == nil {
			return common.NewNotFoundError("ride not found", nil)
		}
		if ride.Status != models.RideStatusScheduled {
			return common.NewConflictError("ride is not open for booking")
		}
		if !ride.DepartureTime.After(s.now()) {
			return common.NewConflictError("ride has already departed")
		}
		if ride.DriverID == passengerID {
			return common.NewBadRequestError("drivers cannot book their own ride", nil)
		}

		existing, err := tx.BookingForRide(ctx, ride.ID, passengerID)
		if err != nil {
			return err
		}
		if existing != nil && existing.Status != models.BookingStatusCancelled {
			return common.NewConflictErrorWithCode(CodeAlreadyBooked, "you already have a booking on this ride")
		}

		if ride.AvailableSeats < req.Seats {
			return common.NewConflictErrorWithCode(CodeInsufficientSeats, "not enough seats available")
		}
		if err := tx.AdjustAvailableSeats(ctx, ride.ID, -req.Seats); err != nil {
			return err
		}

		price := round2(ride.PricePerSeat*float64(req.Seats) + ride.TrafficFee)

		if existing != nil {
			// Reactivation: the cancelled booking already returned its
			// seats, so this is a fresh reservation, not a delta.
			existing.Status = models.BookingStatusPending
			existing.SeatsBooked = req.Seats
			existing.TotalPrice = price
			existing.Pickup = req.Pickup
			existing.Dropoff = req.Dropoff
			booking = existing
			return tx.UpdateBooking(ctx, existing)
		}

		booking = &models.Booking{
			ID:          uuid.New(),
			RideID:      ride.ID,
			PassengerID: passengerID,
			SeatsBooked: req.Seats,
			TotalPrice:  price,
			Status:      models.BookingStatusPending,
			Pickup:      req.Pickup,
			Dropoff:     req.Dropoff,
		}
		return tx.InsertBooking(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("ride_id", booking.RideID.String()),
		zap.Int("seats", booking.SeatsBooked),
	)

	return booking, nil
}

// UpdateStatus applies a single transition from the booking state machine.
// Confirm and complete are driver-only; cancel is open to either party and
// returns the booked seats to the ride inside the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, bookingID, requesterID uuid.UUID, newStatus models.BookingStatus) (*models.Booking, error) {
	switch newStatus {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted:
	default:
		return nil, common.NewBadRequestError("status must be confirmed, cancelled or completed", nil)
	}

	var booking *models.Booking
	err := s.repo.InTx(ctx, func(tx TxStore) error {
		b, err := tx.BookingForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b == nil {
			return common.NewNotFoundError("booking not found", nil)
		}

		ride, err := tx.RideForUpdate(ctx, b.RideID)
		if err != nil {
			return err
		}
		if ride == nil {
			return common.NewNotFoundError("ride not found", nil)
		}

		isDriver := ride.DriverID == requesterID
		if !isDriver && b.PassengerID != requesterID {
			return common.NewForbiddenError("not authorized to update this booking")
		}
		if driverOnly(newStatus) && !isDriver {
			return common.NewForbiddenError("only the ride's driver can do that")
		}
		if !CanTransition(b.Status, newStatus) {
			return common.NewConflictError("booking cannot go from " + string(b.Status) + " to " + string(newStatus))
		}

		if releasesSeats(b.Status, newStatus) {
			if err := tx.AdjustAvailableSeats(ctx, ride.ID, b.SeatsBooked); err != nil {
				return err
			}
		}

		b.Status = newStatus
		booking = b
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("booking status updated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("status", string(booking.Status)),
	)

	return booking, nil
}

// Get returns a booking visible to its passenger or the ride's driver
func (s *Service) Get(ctx context.Context, bookingID, requesterID uuid.UUID) (*models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, common.NewNotFoundError("booking not found", nil)
	}

	if booking.PassengerID != requesterID {
		ride, err := s.repo.GetRide(ctx, booking.RideID)
		if err != nil {
			return nil, err
		}
		if ride == nil || ride.DriverID != requesterID {
			return nil, common.NewForbiddenError("not authorized to view this booking")
		}
	}

	return booking, nil
}

// ListMine returns the requester's bookings, newest first
func (s *Service) ListMine(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	return s.repo.ListByPassenger(ctx, passengerID, limit, offset)
}

// ListForRide returns every booking on a ride; only its driver may ask
func (s *Service) ListForRide(ctx context.Context, rideID, requesterID uuid.UUID) ([]models.Booking, error) {
	ride, err := s.repo.GetRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, common.NewNotFoundError("ride not found", nil)
	}
	if ride.DriverID != requesterID {
		return nil, common.NewForbiddenError("only the ride's driver can list its bookings")
	}
	return s.repo.ListByRide(ctx, rideID)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
