package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentx/internal/booking"
	"rentx/internal/db"
	apperr "rentx/internal/errors"
	"rentx/internal/repository"
	"rentx/internal/service"
	"rentx/internal/validation"
)

type memBookingStore struct {
	bookings []db.Booking
	nextID   int
}

func (m *memBookingStore) active(b *db.Booking) bool {
	return booking.Status(b.Status).Active()
}

func (m *memBookingStore) BusyIntervals(_ context.Context, vehicleID int) ([]booking.Interval, error) {
	var out []booking.Interval
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.VehicleID == vehicleID && m.active(b) {
			out = append(out, booking.Interval{Start: b.StartDate, End: b.EndDate})
		}
	}
	return out, nil
}

func (m *memBookingStore) HasOverlappingBooking(_ context.Context, vehicleID int, iv booking.Interval) (bool, error) {
	for i := range m.bookings {
		b := &m.bookings[i]
		if b.VehicleID == vehicleID && m.active(b) && iv.Overlaps(booking.Interval{Start: b.StartDate, End: b.EndDate}) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookingStore) HasOverlappingMaintenance(context.Context, int, booking.Interval) (bool, error) {
	return false, nil
}

func (m *memBookingStore) Create(ctx context.Context, b *db.Booking) error {
	clash, _ := m.HasOverlappingBooking(ctx, b.VehicleID, booking.Interval{Start: b.StartDate, End: b.EndDate})
	if clash {
		return apperr.Conflict("dates unavailable")
	}
	m.nextID++
	b.ID = m.nextID
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memBookingStore) GetByID(_ context.Context, id int) (*db.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, apperr.NotFound("booking not found")
}

func (m *memBookingStore) List(_ context.Context, filter repository.BookingFilter) ([]db.Booking, error) {
	var out []db.Booking
	for _, b := range m.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.UserID > 0 && (!b.UserID.Valid || int(b.UserID.Int64) != filter.UserID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *memBookingStore) UpdateStatus(_ context.Context, id int, from, to string) (*db.Booking, error) {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			if m.bookings[i].Status != from {
				return nil, apperr.Conflict("booking was updated concurrently")
			}
			m.bookings[i].Status = to
			b := m.bookings[i]
			return &b, nil
		}
	}
	return nil, apperr.NotFound("booking not found")
}

func (m *memBookingStore) Delete(_ context.Context, id int) error {
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("booking not found")
}

type memVehicles struct{}

func (memVehicles) GetByID(_ context.Context, id int) (*db.Vehicle, error) {
	if id != 1 {
		return nil, apperr.NotFound("vehicle not found")
	}
	return &db.Vehicle{ID: 1, Brand: "BMW", Model: "X6", PricePerDayCents: 45000, IsAvailable: true}, nil
}

func newTestRouter() (*mux.Router, *memBookingStore) {
	store := &memBookingStore{}
	svc := service.NewBookingService(store, memVehicles{}, nil)
	h := NewBookingHandler(svc, validation.New())

	r := mux.NewRouter()
	r.HandleFunc("/api/bookings/busy-dates", h.BusyDates).Methods("GET")
	r.HandleFunc("/api/bookings/check", h.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/bookings", h.Create).Methods("POST")
	r.HandleFunc("/api/bookings", h.List).Methods("GET")
	r.HandleFunc("/api/bookings/my-bookings", h.MyBookings).Methods("GET")
	r.HandleFunc("/api/bookings/{id}/status", h.UpdateStatus).Methods("PUT")
	r.HandleFunc("/api/bookings/{id}", h.Delete).Methods("DELETE")
	return r, store
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func validCreateBody() map[string]interface{} {
	return map[string]interface{}{
		"vehicleId":     1,
		"startDate":     "2024-06-05",
		"endDate":       "2024-06-08",
		"customerName":  "Jane Renter",
		"customerEmail": "jane@example.com",
	}
}

func TestCreateBookingEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, float64(135000), body["total_price_cents"])
	assert.NotEmpty(t, body["code"])
}

func TestCreateBookingEndpoint_Validation(t *testing.T) {
	r, _ := newTestRouter()

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"missing email", func(b map[string]interface{}) { delete(b, "customerEmail") }},
		{"bad email", func(b map[string]interface{}) { b["customerEmail"] = "not-an-email" }},
		{"missing vehicle", func(b map[string]interface{}) { delete(b, "vehicleId") }},
		{"missing dates", func(b map[string]interface{}) { delete(b, "startDate") }},
		{"inverted dates", func(b map[string]interface{}) {
			b["startDate"] = "2024-06-08"
			b["endDate"] = "2024-06-05"
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validCreateBody()
			tc.mutate(payload)
			rec := doJSON(t, r, "POST", "/api/bookings", payload)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Equal(t, string(apperr.KindValidation), decodeBody(t, rec)["error"])
		})
	}
}

func TestCreateBookingEndpoint_MalformedJSON(t *testing.T) {
	r, _ := newTestRouter()

	req := httptest.NewRequest("POST", "/api/bookings", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(apperr.KindValidation), decodeBody(t, rec)["error"])
}

func TestCreateBookingEndpoint_Conflict(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	payload := validCreateBody()
	payload["startDate"] = "2024-06-07"
	payload["endDate"] = "2024-06-10"
	rec = doJSON(t, r, "POST", "/api/bookings", payload)
	require.Equal(t, http.StatusConflict, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, string(apperr.KindConflict), body["error"])
	assert.Equal(t, "dates unavailable", body["message"])
}

func TestCreateBookingEndpoint_UnknownVehicle(t *testing.T) {
	r, _ := newTestRouter()

	payload := validCreateBody()
	payload["vehicleId"] = 42
	rec := doJSON(t, r, "POST", "/api/bookings", payload)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, "GET", "/api/bookings/check?vehicleId=1&startDate=2024-06-06&endDate=2024-06-09", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["available"])

	rec = doJSON(t, r, "GET", "/api/bookings/check?vehicleId=1&startDate=2024-06-08&endDate=2024-06-11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])

	rec = doJSON(t, r, "GET", "/api/bookings/check?vehicleId=1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBusyDatesEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, "GET", "/api/bookings/busy-dates?vehicleId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ranges []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranges))
	require.Len(t, ranges, 1)
	assert.Equal(t, "2024-06-05", ranges[0]["start_date"])
	assert.Equal(t, "2024-06-08", ranges[0]["end_date"])

	rec = doJSON(t, r, "GET", "/api/bookings/busy-dates?vehicleId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, "GET", "/api/bookings/busy-dates", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	r, _ := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, "PUT", "/api/bookings/1/status", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "confirmed", decodeBody(t, rec)["status"])

	// Completed bookings cannot be cancelled.
	rec = doJSON(t, r, "PUT", "/api/bookings/1/status", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, r, "PUT", "/api/bookings/1/status", map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, string(apperr.KindConflict), decodeBody(t, rec)["error"])

	rec = doJSON(t, r, "PUT", "/api/bookings/1/status", map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, "PUT", "/api/bookings/99/status", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBookingEndpoint(t *testing.T) {
	r, store := newTestRouter()

	rec := doJSON(t, r, "POST", "/api/bookings", validCreateBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, "DELETE", "/api/bookings/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.bookings)

	rec = doJSON(t, r, "DELETE", "/api/bookings/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMyBookingsEndpoint_RequiresClaims(t *testing.T) {
	r, _ := newTestRouter()

	// Route mounted without the auth middleware: no claims in context.
	rec := doJSON(t, r, "GET", "/api/bookings/my-bookings", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
