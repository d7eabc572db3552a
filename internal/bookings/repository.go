package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/database"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

const bookingColumns = `id, ride_id, passenger_id, seats_booked, total_price, status, pickup, dropoff, created_at, updated_at`

const rideColumns = `id, driver_id, origin, destination, origin_lat, origin_lng, destination_lat, destination_lng,
	departure_time, total_seats, available_seats, price_per_seat, traffic_fee, status, gender_preference,
	university_id, direction, created_at, updated_at`

// Repository handles booking database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new bookings repository
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

// GetBooking gets a booking by ID, or nil when it doesn't exist
func (r *Repository) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, bookingID)
	return scanBooking(row)
}

// GetRide gets a ride by ID without locking it, or nil when it doesn't exist
func (r *Repository) GetRide(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	row := r.db.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, rideID)
	return scanRide(row)
}

// ListByPassenger returns a passenger's bookings, newest first, with the total count
func (r *Repository) ListByPassenger(ctx context.Context, passengerID uuid.UUID, limit, offset int) ([]models.Booking, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE passenger_id = $1`, passengerID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE passenger_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		passengerID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ListByRide returns every booking on a ride
func (r *Repository) ListByRide(ctx context.Context, rideID uuid.UUID) ([]models.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE ride_id = $1 ORDER BY created_at`, rideID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBookings(rows)
}

// txStore implements TxStore on an open pgx transaction
type txStore struct {
	tx pgx.Tx
}

func (s *txStore) RideForUpdate(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	row := s.tx.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1 FOR UPDATE`, rideID)
	return scanRide(row)
}

func (s *txStore) BookingForUpdate(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	row := s.tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, bookingID)
	return scanBooking(row)
}

func (s *txStore) BookingForRide(ctx context.Context, rideID, passengerID uuid.UUID) (*models.Booking, error) {
	row := s.tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE ride_id = $1 AND passenger_id = $2 FOR UPDATE`,
		rideID, passengerID,
	)
	return scanBooking(row)
}

func (s *txStore) AdjustAvailableSeats(ctx context.Context, rideID uuid.UUID, delta int) error {
	_, err := s.tx.Exec(ctx, `
		UPDATE rides
		SET available_seats = GREATEST(0, LEAST(total_seats, available_seats + $2)),
		    updated_at = NOW()
		WHERE id = $1
	`, rideID, delta)
	return err
}

func (s *txStore) InsertBooking(ctx context.Context, b *models.Booking) error {
	return s.tx.QueryRow(ctx, `
		INSERT INTO bookings (id, ride_id, passenger_id, seats_booked, total_price, status, pickup, dropoff)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, b.ID, b.RideID, b.PassengerID, b.SeatsBooked, b.TotalPrice, b.Status, b.Pickup, b.Dropoff,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
}

func (s *txStore) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return s.tx.QueryRow(ctx, `
		UPDATE bookings
		SET seats_booked = $2, total_price = $3, status = $4, pickup = $5, dropoff = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`, b.ID, b.SeatsBooked, b.TotalPrice, b.Status, b.Pickup, b.Dropoff,
	).Scan(&b.UpdatedAt)
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
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

func scanRide(row pgx.Row) (*models.Ride, error) {
	var ride models.Ride
	err := row.Scan(
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

func collectBookings(rows pgx.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.ID, &b.RideID, &b.PassengerID, &b.SeatsBooked, &b.TotalPrice,
			&b.Status, &b.Pickup, &b.Dropoff, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
