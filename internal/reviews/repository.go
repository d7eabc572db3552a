package reviews

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/database"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

const reviewColumns = `id, booking_id, reviewer_id, reviewee_id, rating, comment, created_at, updated_at`

// Repository handles review database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new reviews repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InTx runs fn against a transactional store; any error rolls the whole
// transaction back
func (r *Repository) InTx(ctx context.Context, fn func(TxStore) error) error {
	return database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(&txStore{tx: tx})
	})
}

// Get gets a review by ID, or nil when it doesn't exist
func (r *Repository) Get(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, reviewID)
	return scanReview(row)
}

// ListForUser returns the reviews held against a user, newest first, with
// the total count
func (r *Repository) ListForUser(ctx context.Context, revieweeID uuid.UUID, limit, offset int) ([]models.Review, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM reviews WHERE reviewee_id = $1`, revieweeID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE reviewee_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		revieweeID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(
			&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// txStore implements TxStore on an open pgx transaction
type txStore struct {
	tx pgx.Tx
}

func (s *txStore) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := s.tx.QueryRow(ctx, `
		SELECT id, ride_id, passenger_id, seats_booked, total_price, status, pickup, dropoff, created_at, updated_at
		FROM bookings WHERE id = $1
	`, bookingID).Scan(
		&b.ID, &b.RideID, &b.PassengerID, &b.SeatsBooked, &b.TotalPrice,
		&b.Status, &b.Pickup, &b.Dropoff, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *txStore) GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	var ride models.Ride
	err := s.tx.QueryRow(ctx, `
		SELECT id, driver_id, origin, destination, origin_lat, origin_lng, destination_lat, destination_lng,
			departure_time, total_seats, available_seats, price_per_seat, traffic_fee, status,
			gender_preference, university_id, direction, created_at, updated_at
		FROM rides WHERE id = $1
	`, rideID).Scan(
		&ride.ID, &ride.DriverID, &ride.Origin, &ride.Destination,
		&ride.OriginLat, &ride.OriginLng, &ride.DestinationLat, &ride.DestinationLng,
		&ride.DepartureTime, &ride.TotalSeats, &ride.AvailableSeats,
		&ride.PricePerSeat, &ride.TrafficFee, &ride.Status, &ride.GenderPreference,
		&ride.UniversityID, &ride.Direction, &ride.CreatedAt, &ride.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ride, nil
}

func (s *txStore) ReviewForBooking(ctx context.Context, bookingID, reviewerID uuid.UUID) (*models.Review, error) {
	row := s.tx.QueryRow(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE booking_id = $1 AND reviewer_id = $2`,
		bookingID, reviewerID,
	)
	return scanReview(row)
}

func (s *txStore) ReviewForUpdate(ctx context.Context, reviewID uuid.UUID) (*models.Review, error) {
	row := s.tx.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1 FOR UPDATE`, reviewID)
	return scanReview(row)
}

func (s *txStore) InsertReview(ctx context.Context, review *models.Review) error {
	return s.tx.QueryRow(ctx, `
		INSERT INTO reviews (id, booking_id, reviewer_id, reviewee_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, review.ID, review.BookingID, review.ReviewerID, review.RevieweeID, review.Rating, review.Comment,
	).Scan(&review.CreatedAt, &review.UpdatedAt)
}

func (s *txStore) UpdateReview(ctx context.Context, review *models.Review) error {
	return s.tx.QueryRow(ctx, `
		UPDATE reviews SET rating = $2, comment = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, review.ID, review.Rating, review.Comment,
	).Scan(&review.UpdatedAt)
}

func (s *txStore) DeleteReview(ctx context.Context, reviewID uuid.UUID) error {
	_, err := s.tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, reviewID)
	return err
}

func (s *txStore) RatingsFor(ctx context.Context, revieweeID uuid.UUID) ([]int, error) {
	rows, err := s.tx.Query(ctx, `SELECT rating FROM reviews WHERE reviewee_id = $1`, revieweeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

func (s *txStore) SetUserRating(ctx context.Context, userID uuid.UUID, rating float64) error {
	_, err := s.tx.Exec(ctx, `
		UPDATE driver_profiles SET rating = $2, updated_at = NOW() WHERE user_id = $1
	`, userID, rating)
	return err
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	err := row.Scan(
		&rv.ID, &rv.BookingID, &rv.ReviewerID, &rv.RevieweeID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
