package api

import (
	"net/http"
	"strconv"

	"rentx/internal/entities"
	apperr "rentx/internal/errors"
	"rentx/internal/service"
	"rentx/internal/validation"
)

type VehicleHandler struct {
	Service     *service.VehicleService
	Maintenance *service.MaintenanceService
	Validator   *validation.Validator
}

func NewVehicleHandler(svc *service.VehicleService, maintenance *service.MaintenanceService, v *validation.Validator) *VehicleHandler {
	return &VehicleHandler{Service: svc, Maintenance: maintenance, Validator: v}
}

// List handles GET /api/vehicles?category=&minPrice=&maxPrice=
// Prices are filtered in currency minor units.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := entities.VehicleFilter{Category: r.URL.Query().Get("category")}

	if v := r.URL.Query().Get("minPrice"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, apperr.Validation("minPrice must be an integer"))
			return
		}
		filter.MinPriceCents = cents
	}
	if v := r.URL.Query().Get("maxPrice"); v != "" {
		cents, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, apperr.Validation("maxPrice must be an integer"))
			return
		}
		filter.MaxPriceCents = cents
	}

	vehicles, err := h.Service.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	vehicle, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateVehicleRequest
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

func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.UpdateVehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// ListMaintenance handles GET /api/vehicles/{id}/maintenance.
func (h *VehicleHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	blocks, err := h.Maintenance.ListByVehicle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, blocks)
}

// CreateMaintenance handles POST /api/vehicles/{id}/maintenance (admin).
func (h *VehicleHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req entities.CreateMaintenanceBlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Validator.Validate(req); err != nil {
		writeError(w, err)
		return
	}
	created, err := h.Maintenance.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeleteMaintenance handles DELETE /api/maintenance/{id} (admin).
func (h *VehicleHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Maintenance.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Maintenance block deleted"})
}
