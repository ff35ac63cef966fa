package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/studyspot/studyspot/internal/model"
	"github.com/studyspot/studyspot/internal/outbox"
	"github.com/studyspot/studyspot/internal/schedule"
	"github.com/studyspot/studyspot/libs/db"
)

// BookingRepository persists bookings and stages their domain events in the
// same transaction. Rows are append-only: cancellation is an in-place status
// edit, nothing is ever deleted.
type BookingRepository struct {
	pool       *db.Pool
	outboxRepo *outbox.Repository
}

func NewBookingRepository(pool *db.Pool, outboxRepo *outbox.Repository) *BookingRepository {
	return &BookingRepository{pool: pool, outboxRepo: outboxRepo}
}

const bookingColumns = `
	id, space_id, user_id, space_name, space_location, booking_date,
	slot_label, price, status, created_at, cancelled_at`

func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings
			(id, space_id, user_id, space_name, space_location, booking_date, slot_label, price, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9, $10)
	`, b.ID, b.SpaceID, b.UserID, b.SpaceName, b.SpaceLocation, b.BookingDate,
		b.SlotLabel, b.Price, b.Status, b.CreatedAt)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]any{
		"booking_id":   b.ID,
		"space_id":     b.SpaceID,
		"user_id":      b.UserID,
		"booking_date": b.BookingDate,
		"slot_label":   b.SlotLabel,
		"price":        b.Price,
		"created_at":   b.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	if err := r.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   b.ID,
		EventType:     outbox.EventBookingCreated,
		Payload:       payload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Cancel marks a booking cancelled. Cancelling an already-cancelled booking
// is a no-op that returns the stored row unchanged; the transition is one-way.
func (r *BookingRepository) Cancel(ctx context.Context, userID, bookingID string) (model.Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Booking{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		SELECT`+bookingColumns+`
		FROM bookings
		WHERE id = $1 AND user_id = $2
		FOR UPDATE
	`, bookingID, userID)
	b, err := scanBooking(row)
	if err != nil {
		return model.Booking{}, err
	}

	if b.Cancelled() {
		return b, nil
	}

	var cancelledAt time.Time
	err = tx.QueryRow(ctx, `
		UPDATE bookings
		SET status = $3, cancelled_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING cancelled_at
	`, bookingID, userID, model.StatusCancelled).Scan(&cancelledAt)
	if err != nil {
		return model.Booking{}, err
	}
	b.Status = model.StatusCancelled
	b.CancelledAt = &cancelledAt

	payload, err := json.Marshal(map[string]any{
		"booking_id":   b.ID,
		"space_id":     b.SpaceID,
		"user_id":      b.UserID,
		"booking_date": b.BookingDate,
		"slot_label":   b.SlotLabel,
		"cancelled_at": cancelledAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return model.Booking{}, err
	}
	if err := r.outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "booking",
		AggregateID:   b.ID,
		EventType:     outbox.EventBookingCancelled,
		Payload:       payload,
	}); err != nil {
		return model.Booking{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// ListForSpace returns one user's bookings for one space, oldest first. The
// availability engine receives exactly this slice.
func (r *BookingRepository) ListForSpace(ctx context.Context, userID, spaceID string) ([]model.Booking, error) {
	return r.list(ctx, `
		SELECT`+bookingColumns+`
		FROM bookings
		WHERE user_id = $1 AND space_id = $2
		ORDER BY created_at ASC
	`, userID, spaceID)
}

// ListForUser returns all of a user's bookings, newest first.
func (r *BookingRepository) ListForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	return r.list(ctx, `
		SELECT`+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return bookings, nil
}

func scanBooking(row pgx.Row) (model.Booking, error) {
	var b model.Booking
	var day time.Time
	var cancelledAt *time.Time
	err := row.Scan(
		&b.ID,
		&b.SpaceID,
		&b.UserID,
		&b.SpaceName,
		&b.SpaceLocation,
		&day,
		&b.SlotLabel,
		&b.Price,
		&b.Status,
		&b.CreatedAt,
		&cancelledAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	b.BookingDate = day.Format(schedule.DateLayout)
	b.CancelledAt = cancelledAt
	return b, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
