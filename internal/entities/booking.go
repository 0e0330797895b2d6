package entities

import "time"

// CreateBookingRequest is the body of POST /api/bookings. Field types are
// strict: malformed or mistyped payloads are rejected before they reach the
// business logic.
type CreateBookingRequest struct {
	VehicleID     int    `json:"vehicleId" validate:"required,gt=0"`
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerPhone string `json:"customerPhone" validate:"omitempty,e164"`
	UserID        *int   `json:"userId" validate:"omitempty,gt=0"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type BookingResponse struct {
	ID              int       `json:"id"`
	Code            string    `json:"code"`
	VehicleID       int       `json:"vehicle_id"`
	UserID          *int      `json:"user_id,omitempty"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BusyDateRange is one occupied range returned by GET /api/bookings/busy-dates,
// consumed by the client calendar to gray out days.
type BusyDateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}
