package reviews

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/common"
	"github.com/Ahmadmeltaha/tareeqi-backend/pkg/models"
)

// fakeStore is an in-memory RepositoryInterface. InTx restores a snapshot
// when fn fails so a review mutation and its aggregate write stay atomic.
type fakeStore struct {
	rides    map[uuid.UUID]*models.Ride
	bookings map[uuid.UUID]*models.Booking
	reviews  map[uuid.UUID]*models.Review
	ratings  map[uuid.UUID]float64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		rides:    make(map[uuid.UUID]*models.Ride),
		bookings: make(map[uuid.UUID]*models.Booking),
		reviews:  make(map[uuid.UUID]*models.Review),
		ratings:  make(map[uuid.UUID]float64),
	}
}

func (f *fakeStore) InTx(_ context.Context, fn func(TxStore) error) error {
	reviews := make(map[uuid.UUID]*models.Review, len(f.reviews))
	for id, r := range f.reviews {
		cp := *r
		reviews[id] = &cp
	}
	ratings := make(map[uuid.UUID]float64, len(f.ratings))
	for id, v := range f.ratings {
		ratings[id] = v
	}

	if err := fn(&fakeTx{store: f}); err != nil {
		f.reviews, f.ratings = reviews, ratings
		return err
	}
	return nil
}

func (f *fakeStore) Get(_ context.Context, reviewID uuid.UUID) (*models.Review, error) {
	if r, ok := f.reviews[reviewID]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListForUser(_ context.Context, revieweeID uuid.UUID, limit, offset int) ([]models.Review, int64, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) GetBooking(_ context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	if b, ok := t.store.bookings[bookingID]; ok {
		return b, nil
	}
	return nil, nil
}

func (t *fakeTx) GetRide(_ context.Context, rideID uuid.UUID) (*models.Ride, error) {
	if r, ok := t.store.rides[rideID]; ok {
		return r, nil
	}
	return nil, nil
}

func (t *fakeTx) ReviewForBooking(_ context.Context, bookingID, reviewerID uuid.UUID) (*models.Review, error) {
	for _, r := range t.store.reviews {
		if r.BookingID == bookingID && r.ReviewerID == reviewerID {
			return r, nil
		}
	}
	return nil, nil
}

func (t *fakeTx) ReviewForUpdate(_ context.Context, reviewID uuid.UUID) (*models.Review, error) {
	if r, ok := t.store.reviews[reviewID]; ok {
		return r, nil
	}
	return nil, nil
}

func (t *fakeTx) InsertReview(_ context.Context, review *models.Review) error {
	cp := *review
	t.store.reviews[review.ID] = &cp
	return nil
}

func (t *fakeTx) UpdateReview(_ context.Context, review *models.Review) error {
	cp := *review
	t.store.reviews[review.ID] = &cp
	return nil
}

func (t *fakeTx) DeleteReview(_ context.Context, reviewID uuid.UUID) error {
	delete(t.store.reviews, reviewID)
	return nil
}

func (t *fakeTx) RatingsFor(_ context.Context, revieweeID uuid.UUID) ([]int, error) {
	var ratings []int
	for _, r := range t.store.reviews {
		if r.RevieweeID == revieweeID {
			ratings = append(ratings, r.Rating)
		}
	}
	return ratings, nil
}

func (t *fakeTx) SetUserRating(_ context.Context, userID uuid.UUID, rating float64) error {
	t.store.ratings[userID] = rating
	return nil
}

// seedCompletedBooking wires a driver, a passenger, a ride and a completed
// booking together
func seedCompletedBooking(store *fakeStore) (driverID, passengerID, bookingID uuid.UUID) {
	driverID = uuid.New()
	passengerID = uuid.New()
	ride := &models.Ride{
		ID:       uuid.New(),
		DriverID: driverID,
		Status:   models.RideStatusCompleted,
	}
	booking := &models.Booking{
		ID:          uuid.New(),
		RideID:      ride.ID,
		PassengerID: passengerID,
		SeatsBooked: 1,
		Status:      models.BookingStatusCompleted,
	}
	store.rides[ride.ID] = ride
	store.bookings[booking.ID] = booking
	return driverID, passengerID, booking.ID
}

func requireAppError(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*common.AppError)
	require.True(t, ok, "expected *common.AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)
}

func TestSubmitReview(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	driverID, passengerID, bookingID := seedCompletedBooking(store)

	review, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    5,
	})
	require.NoError(t, err)

	assert.Equal(t, passengerID, review.ReviewerID)
	assert.Equal(t, driverID, review.RevieweeID)
	assert.Equal(t, 5.0, store.ratings[driverID])
}

func TestSubmitReviewDriverReviewsPassenger(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	driverID, passengerID, bookingID := seedCompletedBooking(store)

	review, err := svc.Submit(context.Background(), driverID, &SubmitReviewRequest{
		BookingID: bookingID,
		Rating:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, driverID, review.ReviewerID)
	assert.Equal(t, passengerID, review.RevieweeID)
	assert.Equal(t, 4.0, store.ratings[passengerID])
}

func TestSubmitReviewGuards(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	_, passengerID, bookingID := seedCompletedBooking(store)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: bookingID, Rating: 6})
		requireAppError(t, err, http.StatusBadRequest)
		_, err = svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: bookingID, Rating: 0})
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("booking not found", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: uuid.New(), Rating: 5})
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("third party cannot review", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), uuid.New(), &SubmitReviewRequest{BookingID: bookingID, Rating: 5})
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("booking not completed", func(t *testing.T) {
		pending := &models.Booking{
			ID:          uuid.New(),
			RideID:      uuid.New(),
			PassengerID: passengerID,
			Status:      models.BookingStatusConfirmed,
		}
		store.bookings[pending.ID] = pending
		_, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: pending.ID, Rating: 5})
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("duplicate review", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: bookingID, Rating: 5})
		require.NoError(t, err)
		_, err = svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: bookingID, Rating: 3})
		requireAppError(t, err, http.StatusConflict)
	})
}

func TestRatingAggregate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	driverID := uuid.New()
	var reviewIDs []uuid.UUID
	for _, rating := range []int{5, 4, 3} {
		passengerID := uuid.New()
		ride := &models.Ride{ID: uuid.New(), DriverID: driverID, Status: models.RideStatusCompleted}
		booking := &models.Booking{
			ID: uuid.New(), RideID: ride.ID, PassengerID: passengerID,
			Status: models.BookingStatusCompleted,
		}
		store.rides[ride.ID] = ride
		store.bookings[booking.ID] = booking

		review, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{
			BookingID: booking.ID,
			Rating:    rating,
		})
		require.NoError(t, err)
		reviewIDs = append(reviewIDs, review.ID)
	}

	// mean(5, 4, 3) = 4.00
	assert.Equal(t, 4.0, store.ratings[driverID])

	// dropping the 3 leaves mean(5, 4) = 4.50
	lastReviewer := store.reviews[reviewIDs[2]].ReviewerID
	require.NoError(t, svc.Delete(context.Background(), lastReviewer, reviewIDs[2]))
	assert.Equal(t, 4.5, store.ratings[driverID])

	// deleting the rest resets the aggregate to zero
	for _, id := range reviewIDs[:2] {
		reviewer := store.reviews[id].ReviewerID
		require.NoError(t, svc.Delete(context.Background(), reviewer, id))
	}
	assert.Equal(t, 0.0, store.ratings[driverID])
}

func TestUpdateReview(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	driverID, passengerID, bookingID := seedCompletedBooking(store)

	review, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: bookingID, Rating: 2})
	require.NoError(t, err)
	require.Equal(t, 2.0, store.ratings[driverID])

	updated, err := svc.Update(context.Background(), passengerID, review.ID, &UpdateReviewRequest{Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, 5.0, store.ratings[driverID])

	// only the author can edit
	_, err = svc.Update(context.Background(), uuid.New(), review.ID, &UpdateReviewRequest{Rating: 1})
	requireAppError(t, err, http.StatusForbidden)

	_, err = svc.Update(context.Background(), passengerID, uuid.New(), &UpdateReviewRequest{Rating: 1})
	requireAppError(t, err, http.StatusNotFound)
}

func TestDeleteReviewGuards(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	_, passengerID, bookingID := seedCompletedBooking(store)

	review, err := svc.Submit(context.Background(), passengerID, &SubmitReviewRequest{BookingID: bookingID, Rating: 4})
	require.NoError(t, err)

	requireAppError(t, svc.Delete(context.Background(), uuid.New(), review.ID), http.StatusForbidden)
	requireAppError(t, svc.Delete(context.Background(), passengerID, uuid.New()), http.StatusNotFound)
	require.NoError(t, svc.Delete(context.Background(), passengerID, review.ID))
}
