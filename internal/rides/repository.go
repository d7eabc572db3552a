package rides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/database"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

const rideColumns = `id, driver_id, origin, destination, origin_lat, origin_lng, destination_lat, destination_lng,
	departure_time, total_seats, available_seats, price_per_seat, traffic_fee, status, gender_preference,
	university_id, direction, created_at, updated_at`

// Repository handles ride database operations
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new rides repository
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

// Create inserts a new ride
func (r *Repository) Create(ctx context.Context, ride *models.Ride) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO rides (id, driver_id, origin, destination, origin_lat, origin_lng,
			destination_lat, destination_lng, departure_time, total_seats, available_seats,
			price_per_seat, traffic_fee, status, gender_preference, university_id, direction)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at, updated_at
	`, ride.ID, ride.DriverID, ride.Origin, ride.Destination, ride.OriginLat, ride.OriginLng,
		ride.DestinationLat, ride.DestinationLng, ride.DepartureTime, ride.TotalSeats,
		ride.AvailableSeats, ride.PricePerSeat, ride.TrafficFee, ride.Status,
		ride.GenderPreference, ride.UniversityID, ride.Direction,
	).Scan(&ride.CreatedAt, &ride.UpdatedAt)
}

// Get gets a ride by ID, or nil when it doesn't exist
func (r *Repository) Get(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	row := r.db.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1`, rideID)
	return scanRide(row)
}

// buildSearchFilters turns the search filters into a WHERE clause. Only
// open rides with a future departure ever match.
func buildSearchFilters(f *SearchFilters) (string, []interface{}, int) {
	where := []string{"status = $1", "departure_time > NOW()"}
	args := []interface{}{models.RideStatusScheduled}
	argIdx := 2

	if f.UniversityID != "" {
		where = append(where, fmt.Sprintf("university_id = $%d", argIdx))
		args = append(args, f.UniversityID)
		argIdx++
	}
	if f.Direction != "" {
		where = append(where, fmt.Sprintf("direction = $%d", argIdx))
		args = append(args, f.Direction)
		argIdx++
	}
	if f.GenderPreference != "" {
		// "any" rides match every passenger
		where = append(where, fmt.Sprintf("gender_preference IN ('any', $%d)", argIdx))
		args = append(args, f.GenderPreference)
		argIdx++
	}
	if f.Date != "" {
		where = append(where, fmt.Sprintf("departure_time::date = $%d::date", argIdx))
		args = append(args, f.Date)
		argIdx++
	}
	if f.MinSeats > 0 {
		where = append(where, fmt.Sprintf("available_seats >= $%d", argIdx))
		args = append(args, f.MinSeats)
		argIdx++
	}

	return strings.Join(where, " AND "), args, argIdx
}

// Search lists scheduled future rides matching the filters with the total
// count. Limit 0 skips the LIMIT clause.
func (r *Repository) Search(ctx context.Context, f *SearchFilters) ([]models.Ride, int64, error) {
	whereClause, args, argIdx := buildSearchFilters(f)

	var total int64
	countQuery := "SELECT COUNT(*) FROM rides WHERE " + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM rides WHERE %s ORDER BY departure_time", rideColumns, whereClause)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rides, err := collectRides(rows)
	if err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// ListByDriver returns a driver's rides, latest departure first, with the total count
func (r *Repository) ListByDriver(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.Ride, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM rides WHERE driver_id = $1`, driverID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+rideColumns+` FROM rides WHERE driver_id = $1 ORDER BY departure_time DESC LIMIT $2 OFFSET $3`,
		driverID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rides, err := collectRides(rows)
	if err != nil {
		return nil, 0, err
	}
	return rides, total, nil
}

// txStore implements TxStore on an open pgx transaction
type txStore struct {
	tx pgx.Tx
}

func (s *txStore) RideForUpdate(ctx context.Context, rideID uuid.UUID) (*models.Ride, error) {
	row := s.tx.QueryRow(ctx, `SELECT `+rideColumns+` FROM rides WHERE id = $1 FOR UPDATE`, rideID)
	return scanRide(row)
}

func (s *txStore) SetRideStatus(ctx context.Context, rideID uuid.UUID, status models.RideStatus) error {
	_, err := s.tx.Exec(ctx,
		`UPDATE rides SET status = $2, updated_at = NOW() WHERE id = $1`, rideID, status)
	return err
}

func (s *txStore) RetargetBookings(ctx context.Context, rideID uuid.UUID, from, to models.BookingStatus) (int64, error) {
	tag, err := s.tx.Exec(ctx, `
		UPDATE bookings SET status = $3, updated_at = NOW()
		WHERE ride_id = $1 AND status = $2
	`, rideID, from, to)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *txStore) IncrementDriverRides(ctx context.Context, driverID uuid.UUID) error {
	_, err := s.tx.Exec(ctx, `
		UPDATE driver_profiles SET total_rides = total_rides + 1, updated_at = NOW()
		WHERE user_id = $1
	`, driverID)
	return err
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

func collectRides(rows pgx.Rows) ([]models.Ride, error) {
	var rides []models.Ride
	for rows.Next() {
		var ride models.Ride
		if err := rows.Scan(
			&ride.ID, &ride.DriverID, &ride.Origin, &ride.Destination,
			&ride.OriginLat, &ride.OriginLng, &ride.DestinationLat, &ride.DestinationLng,
			&ride.DepartureTime, &ride.TotalSeats, &ride.AvailableSeats,
			&ride.PricePerSeat, &ride.TrafficFee, &ride.Status, &ride.GenderPreference,
			&ride.UniversityID, &ride.Direction, &ride.CreatedAt, &ride.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}
