package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"

	"rentx/internal/booking"
	"rentx/internal/db"
	"rentx/internal/entities"
	apperr "rentx/internal/errors"
	"rentx/internal/repository"
)

// BookingStore is the persistence surface the booking flow needs.
type BookingStore interface {
	BusyIntervals(ctx context.Context, vehicleID int) ([]booking.Interval, error)
	HasOverlappingBooking(ctx context.Context, vehicleID int, iv booking.Interval) (bool, error)
	HasOverlappingMaintenance(ctx context.Context, vehicleID int, iv booking.Interval) (bool, error)
	Create(ctx context.Context, b *db.Booking) error
	GetByID(ctx context.Context, id int) (*db.Booking, error)
	List(ctx context.Context, filter repository.BookingFilter) ([]db.Booking, error)
	UpdateStatus(ctx context.Context, id int, from, to string) (*db.Booking, error)
	Delete(ctx context.Context, id int) error
}

type VehicleGetter interface {
	GetByID(ctx context.Context, id int) (*db.Vehicle, error)
}

// Notifier sends booking lifecycle notifications. Implementations must not
// block the request path.
type Notifier interface {
	NotifyBookingStatus(b *db.Booking, vehicleName string, status booking.Status)
}

type BookingService struct {
	bookings BookingStore
	vehicles VehicleGetter
	notifier Notifier
}

func NewBookingService(bookings BookingStore, vehicles VehicleGetter, notifier Notifier) *BookingService {
	return &BookingService{bookings: bookings, vehicles: vehicles, notifier: notifier}
}

// BusyDates lists the occupied ranges of a vehicle for calendar exclusion.
func (s *BookingService) BusyDates(ctx context.Context, vehicleID int) ([]entities.BusyDateRange, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	intervals, err := s.bookings.BusyIntervals(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	ranges := make([]entities.BusyDateRange, 0, len(intervals))
	for _, iv := range intervals {
		ranges = append(ranges, entities.BusyDateRange{
			StartDate: iv.Start.Format(booking.DateLayout),
			EndDate:   iv.End.Format(booking.DateLayout),
		})
	}
	return ranges, nil
}

// CheckAvailability reports whether a vehicle is free over [start, end).
func (s *BookingService) CheckAvailability(ctx context.Context, vehicleID int, startDate, endDate string) (bool, error) {
	iv, err := parseInterval(startDate, endDate)
	if err != nil {
		return false, err
	}
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return false, err
	}
	booked, err := s.bookings.HasOverlappingBooking(ctx, vehicleID, iv)
	if err != nil {
		return false, err
	}
	if booked {
		return false, nil
	}
	blocked, err := s.bookings.HasOverlappingMaintenance(ctx, vehicleID, iv)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// Create validates and persists a new pending booking. The repository
// re-validates both overlap checks inside a serializable transaction, so two
// concurrent requests for the same dates cannot both succeed.
func (s *BookingService) Create(ctx context.Context, req entities.CreateBookingRequest) (*entities.BookingResponse, error) {
	iv, err := parseInterval(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.HasOverlappingBooking(ctx, req.VehicleID, iv)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, apperr.Conflict("dates unavailable")
	}

	blocked, err := s.bookings.HasOverlappingMaintenance(ctx, req.VehicleID, iv)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, apperr.Conflict("vehicle blocked")
	}

	// Should not trigger after the interval check, but guards the price math.
	total, err := booking.TotalPrice(iv, vehicle.PricePerDayCents)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	b := &db.Booking{
		Code:            uuid.NewString(),
		VehicleID:       req.VehicleID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		StartDate:       iv.Start,
		EndDate:         iv.End,
		TotalPriceCents: total,
		Status:          string(booking.StatusPending),
	}
	if req.UserID != nil {
		b.UserID = sql.NullInt64{Int64: int64(*req.UserID), Valid: true}
	}
	if req.CustomerPhone != "" {
		b.CustomerPhone = sql.NullString{String: req.CustomerPhone, Valid: true}
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Printf("booking %s created for vehicle %d (%s to %s)",
		b.Code, b.VehicleID, req.StartDate, req.EndDate)
	return bookingResponse(b), nil
}

// UpdateStatus applies an admin status transition.
func (s *BookingService) UpdateStatus(ctx context.Context, id int, statusStr string) (*entities.BookingResponse, error) {
	to, err := booking.ParseStatus(statusStr)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := booking.Status(current.Status)
	if !booking.CanTransition(from, to) {
		return nil, apperr.Conflict(fmt.Sprintf("cannot move booking from %s to %s", from, to))
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, string(from), string(to))
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && from != to && (to == booking.StatusConfirmed || to == booking.StatusCancelled) {
		vehicleName := ""
		if v, err := s.vehicles.GetByID(ctx, updated.VehicleID); err == nil {
			vehicleName = v.Brand + " " + v.Model
		}
		s.notifier.NotifyBookingStatus(updated, vehicleName, to)
	}
	return bookingResponse(updated), nil
}

// Delete removes a booking outright, regardless of status. Distinct from
// cancellation: the row and its history are gone.
func (s *BookingService) Delete(ctx context.Context, id int) error {
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) List(ctx context.Context, filter repository.BookingFilter) ([]entities.BookingResponse, error) {
	rows, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]entities.BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *bookingResponse(&rows[i]))
	}
	return out, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int) ([]entities.BookingResponse, error) {
	return s.List(ctx, repository.BookingFilter{UserID: userID})
}

func parseInterval(startDate, endDate string) (booking.Interval, error) {
	start, err := booking.ParseDate(startDate)
	if err != nil {
		return booking.Interval{}, apperr.Validation(err.Error())
	}
	end, err := booking.ParseDate(endDate)
	if err != nil {
		return booking.Interval{}, apperr.Validation(err.Error())
	}
	iv, err := booking.NewInterval(start, end)
	if err != nil {
		return booking.Interval{}, apperr.Validation(err.Error())
	}
	return iv, nil
}

func bookingResponse(b *db.Booking) *entities.BookingResponse {
	resp := &entities.BookingResponse{
		ID:              b.ID,
		Code:            b.Code,
		VehicleID:       b.VehicleID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		StartDate:       b.StartDate.Format(booking.DateLayout),
		EndDate:         b.EndDate.Format(booking.DateLayout),
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.UserID.Valid {
		id := int(b.UserID.Int64)
		resp.UserID = &id
	}
	if b.CustomerPhone.Valid {
		resp.CustomerPhone = b.CustomerPhone.String
	}
	return resp
}
