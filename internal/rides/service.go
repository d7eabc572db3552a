package rides

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ahmadmeltaha/tareeqi-backend/internal/geo"
	"github.com/Ahmadmeltaha/tareeqi-backend/internal/pricing"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/logger"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// Service handles ride business logic
type Service struct {
	repo RepositoryInterface
	now  func() time.Time
}

// NewService creates a new rides service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithNow overrides the clock, for tests
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create publishes a ride. The traffic fee is computed here, once, from the
// departure hour and the origin-destination distance, and frozen into the
// ride row; later fare or schedule edits never recompute it.
func (s *Service) Create(ctx context.Context, driverID uuid.UUID, req *CreateRideRequest) (*models.Ride, error) {
	if req.TotalSeats < 1 || req.TotalSeats > MaxSeatsPerRide {
		return nil, common.NewBadRequestError("total seats must be between 1 and 8", nil)
	}
	if req.PricePerSeat < 0 {
		return nil, common.NewBadRequestError("price per seat cannot be negative", nil)
	}
	if (req.OriginLat == nil) != (req.OriginLng == nil) || (req.DestinationLat == nil) != (req.DestinationLng == nil) {
		return nil, common.NewBadRequestError("coordinates must come in lat/lng pairs", nil)
	}

	departure, err := pricing.ParseDeparture(req.DepartureTime)
	if err != nil {
		return nil, err
	}
	if !departure.After(s.now()) {
		return nil, common.NewBadRequestError("departure time must be in the future", nil)
	}

	var distanceKm float64
	if req.OriginLat != nil && req.DestinationLat != nil {
		distanceKm = geo.Distance(*req.OriginLat, *req.OriginLng, *req.DestinationLat, *req.DestinationLng)
	}
	fee := pricing.TrafficFee(departure, distanceKm)

	pref := models.GenderPreference(req.GenderPreference)
	if pref == "" {
		pref = models.GenderPreferenceAny
	}
	var direction *models.RideDirection
	if req.Direction != nil {
		d := models.RideDirection(*req.Direction)
		direction = &d
	}

	ride := &models.Ride{
		ID:               uuid.New(),
		DriverID:         driverID,
		Origin:           req.Origin,
		Destination:      req.Destination,
		OriginLat:        req.OriginLat,
		OriginLng:        req.OriginLng,
		DestinationLat:   req.DestinationLat,
		DestinationLng:   req.DestinationLng,
		DepartureTime:    departure,
		TotalSeats:       req.TotalSeats,
		AvailableSeats:   req.TotalSeats,
		PricePerSeat:     req.PricePerSeat,
		TrafficFee:       fee,
		Status:           models.RideStatusScheduled,
		GenderPreference: pref,
		UniversityID:     req.UniversityID,
		Direction:        direction,
	}

	if err := s.repo.Create(ctx, ride); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("ride created",
		zap.String("ride_id", ride.ID.String()),
		zap.String("driver_id", driverID.String()),
		zap.Float64("traffic_fee", fee),
	)

	return ride, nil
}

// Get returns a ride by ID
func (s *Service) Get(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	ride, err := s.repo.Get(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, common.NewNotFoundError("ride not found", nil)
	}
	return ride, nil
}

// Search lists open rides matching the filters. When a radius filter is
// set, the SQL filters run without pagination and the Haversine cut plus
// limit/offset are applied here; rides without origin coordinates never
// match a radius search.
func (s *Service) Search(ctx context.Context, f *SearchFilters) ([]models.Ride, int64, error) {
	if !f.HasRadius() {
		return s.repo.Search(ctx, f)
	}

	limit, offset := f.Limit, f.Offset
	unpaged := *f
	unpaged.Limit = 0
	unpaged.Offset = 0

	all, _, err := s.repo.Search(ctx, &unpaged)
	if err != nil {
		return nil, 0, err
	}

	var matched []models.Ride
	for _, ride := range all {
		if ride.OriginLat == nil || ride.OriginLng == nil {
			continue
		}
		if geo.Distance(*f.NearLat, *f.NearLng, *ride.OriginLat, *ride.OriginLng) <= f.RadiusKm {
			matched = append(matched, ride)
		}
	}

	total := int64(len(matched))
	if offset >= len(matched) {
		return []models.Ride{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ListMine returns the driver's own rides, newest departure first
func (s *Service) ListMine(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.Ride, int64, error) {
	return s.repo.ListByDriver(ctx, driverID, limit, offset)
}

// Complete finishes a scheduled ride. In one transaction every confirmed
// booking becomes completed, every pending booking becomes cancelled with
// no seat release, the ride becomes completed and the driver's ride count
// goes up by one.
func (s *Service) Complete(ctx context.Context, rideID, requesterID uuid.UUID) (*models.Ride, error) {
	return s.finish(ctx, rideID, requesterID, models.RideStatusCompleted)
}

// Cancel calls off a scheduled ride. In one transaction every pending and
// confirmed booking becomes cancelled and the ride becomes cancelled. The
// ride is closing, so the ledger is left alone.
func (s *Service) Cancel(ctx context.Context, rideID, requesterID uuid.UUID) (*models.Ride, error) {
	return s.finish(ctx, rideID, requesterID, models.RideStatusCancelled)
}

func (s *Service) finish(ctx context.Context, rideID, requesterID uuid.UUID, target models.RideStatus) (*models.Ride, error) {
	var ride *models.Ride
	err := s.repo.InTx(ctx, func(tx TxStore) error {
		r, err := tx.RideForUpdate(ctx, rideID)
		if err != nil {
			return err
		}
		if r == nil {
			return common.NewNotFoundError("ride not found", nil)
		}
		if r.DriverID != requesterID {
			return common.NewForbiddenError("only the ride's driver can do that")
		}
		if r.Status != models.RideStatusScheduled {
			return common.NewConflictError("ride is already " + string(r.Status))
		}

		if target == models.RideStatusCompleted {
			if _, err := tx.RetargetBookings(ctx, rideID, models.BookingStatusConfirmed, models.BookingStatusCompleted); err != nil {
				return err
			}
			if _, err := tx.RetargetBookings(ctx, rideID, models.BookingStatusPending, models.BookingStatusCancelled); err != nil {
				return err
			}
			if err := tx.IncrementDriverRides(ctx, r.DriverID); err != nil {
				return err
			}
		} else {
			if _, err := tx.RetargetBookings(ctx, rideID, models.BookingStatusPending, models.BookingStatusCancelled); err != nil {
				return err
			}
			if _, err := tx.RetargetBookings(ctx, rideID, models.BookingStatusConfirmed, models.BookingStatusCancelled); err != nil {
				return err
			}
		}

		if err := tx.SetRideStatus(ctx, rideID, target); err != nil {
			return err
		}
		r.Status = target
		ride = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Info("ride "+string(target),
		zap.String("ride_id", rideID.String()),
	)

	return ride, nil
}
