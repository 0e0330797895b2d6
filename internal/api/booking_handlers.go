package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentx/internal/auth"
	"rentx/internal/entities"
	apperr "rentx/internal/errors"
	"rentx/internal/repository"
	"rentx/internal/service"
	"rentx/internal/validation"
)

type BookingHandler struct {
	Service   *service.BookingService
	Validator *validation.Validator
}

func NewBookingHandler(svc *service.BookingService, v *validation.Validator) *BookingHandler {
	return &BookingHandler{Service: svc, Validator: v}
}

// BusyDates handles GET /api/bookings/busy-dates?vehicleId=
func (h *BookingHandler) BusyDates(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := queryInt(r, "vehicleId")
	if err != nil {
		writeError(w, err)
		return
	}
	ranges, err := h.Service.BusyDates(r.Context(), vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranges)
}

// CheckAvailability handles GET /api/bookings/check?vehicleId=&startDate=&endDate=
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := queryInt(r, "vehicleId")
	if err != nil {
		writeError(w, err)
		return
	}
	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		writeError(w, apperr.Validation("startDate and endDate are required"))
		return
	}

	available, err := h.Service.CheckAvailability(r.Context(), vehicleID, startDate, endDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entities.AvailabilityResponse{Available: available})
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/bookings (admin), filterable by status and vehicleId.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := repository.BookingFilter{Status: r.URL.Query().Get("status")}
	if v := r.URL.Query().Get("vehicleId"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, apperr.Validation("vehicleId must be an integer"))
			return
		}
		filter.VehicleID = id
	}
	bookings, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// MyBookings handles GET /api/bookings/my-bookings for the logged-in user.
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, apperr.Unauthorized("missing credentials"))
		return
	}
	bookings, err := h.Service.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// UpdateStatus handles PUT /api/bookings/{id}/status (admin).
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.UpdateBookingStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.Service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/bookings/{id} (admin).
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking deleted"})
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.Validation(name + " is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return v, nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return v, nil
}
