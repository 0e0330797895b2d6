package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rentx/internal/booking"
	"rentx/internal/db"
	apperr "rentx/internal/errors"
)

const bookingColumns = `id, code, vehicle_id, user_id, customer_name, customer_email, customer_phone,
	start_date, end_date, total_price_cents, status, created_at, updated_at`

type BookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(database *sql.DB) *BookingRepository {
	return &BookingRepository{DB: database}
}

func scanBooking(row interface{ Scan(...interface{}) error }) (*db.Booking, error) {
	var b db.Booking
	err := row.Scan(
		&b.ID, &b.Code, &b.VehicleID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone,
		&b.StartDate, &b.EndDate, &b.TotalPriceCents, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BusyIntervals returns the date ranges of all non-cancelled bookings for a
// vehicle, for client-side calendar exclusion.
func (r *BookingRepository) BusyIntervals(ctx context.Context, vehicleID int) ([]booking.Interval, error) {
	query := `
		SELECT start_date, end_date
		FROM bookings
		WHERE vehicle_id = $1 AND status <> 'cancelled'
		ORDER BY start_date`
	rows, err := r.DB.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error querying busy intervals: %w", err)
	}
	defer rows.Close()

	var intervals []booking.Interval
	for rows.Next() {
		var iv booking.Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("error scanning busy interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating busy intervals: %w", err)
	}
	return intervals, nil
}

// HasOverlappingBooking reports whether any non-cancelled booking for the
// vehicle conflicts with [start, end). Strict inequalities on both sides:
// back-to-back bookings do not conflict.
func (r *BookingRepository) HasOverlappingBooking(ctx context.Context, vehicleID int, iv booking.Interval) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vehicle_id = $1
			  AND status <> 'cancelled'
			  AND start_date < $3
			  AND end_date > $2
		)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, vehicleID, iv.Start, iv.End).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking booking overlap: %w", err)
	}
	return exists, nil
}

// HasOverlappingMaintenance reports whether a maintenance block conflicts
// with [start, end). Maintenance blocks apply regardless of booking status.
func (r *BookingRepository) HasOverlappingMaintenance(ctx context.Context, vehicleID int, iv booking.Interval) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM maintenance_blocks
			WHERE vehicle_id = $1
			  AND start_date < $3
			  AND end_date > $2
		)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, vehicleID, iv.Start, iv.End).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking maintenance overlap: %w", err)
	}
	return exists, nil
}

// Create inserts a pending booking after re-validating both overlap checks
// inside a SERIALIZABLE transaction. The partial exclusion constraint on
// (vehicle_id, daterange) is the backstop for the second of two concurrent
// writers; either the constraint or the isolation level rejects it, and both
// surface as a conflict.
func (r *BookingRepository) Create(ctx context.Context, b *db.Booking) error {
	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return apperr.Storage(fmt.Errorf("error beginning booking transaction: %w", err))
	}
	defer tx.Rollback()

	var bookingClash bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vehicle_id = $1 AND status <> 'cancelled'
			  AND start_date < $3 AND end_date > $2
		)`, b.VehicleID, b.StartDate, b.EndDate).Scan(&bookingClash)
	if err != nil {
		return translateError(err, "dates unavailable")
	}
	if bookingClash {
		return apperr.Conflict("dates unavailable")
	}

	var maintenanceClash bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM maintenance_blocks
			WHERE vehicle_id = $1 AND start_date < $3 AND end_date > $2
		)`, b.VehicleID, b.StartDate, b.EndDate).Scan(&maintenanceClash)
	if err != nil {
		return translateError(err, "vehicle blocked")
	}
	if maintenanceClash {
		return apperr.Conflict("vehicle blocked")
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings
			(code, vehicle_id, user_id, customer_name, customer_email, customer_phone,
			 start_date, end_date, total_price_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		b.Code, b.VehicleID, b.UserID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.StartDate, b.EndDate, b.TotalPriceCents, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return translateError(err, "dates unavailable")
	}

	if err := tx.Commit(); err != nil {
		return translateError(err, "dates unavailable")
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int) (*db.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("booking %d not found", id))
		}
		return nil, apperr.Storage(fmt.Errorf("error querying booking: %w", err))
	}
	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter BookingFilter) ([]db.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.VehicleID > 0 {
		query += fmt.Sprintf(" AND vehicle_id = $%d", idx)
		args = append(args, filter.VehicleID)
		idx++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.UserID > 0 {
		query += fmt.Sprintf(" AND user_id = $%d", idx)
		args = append(args, filter.UserID)
		idx++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("error listing bookings: %w", err))
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, apperr.Storage(fmt.Errorf("error scanning booking: %w", err))
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(fmt.Errorf("error iterating bookings: %w", err))
	}
	return bookings, nil
}

// BookingFilter narrows admin and user listings. Zero values mean no filter.
type BookingFilter struct {
	VehicleID int
	Status    string
	UserID    int
}

// UpdateStatus applies a transition only if the row still holds the status
// the caller read. Zero matched rows means another admin moved the booking
// in between, and the caller's transition decision is stale.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, from, to string) (*db.Booking, error) {
	row := r.DB.QueryRowContext(ctx, `
		UPDATE bookings SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+bookingColumns, to, id, from)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Conflict(fmt.Sprintf("booking %d was updated concurrently", id))
		}
		return nil, translateError(err, "dates unavailable")
	}
	return b, nil
}

// Delete removes the row entirely. This is distinct from cancellation and
// loses history.
func (r *BookingRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error deleting booking: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound(fmt.Sprintf("booking %d not found", id))
	}
	return nil
}
