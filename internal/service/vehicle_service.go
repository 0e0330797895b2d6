package service

import (
	"context"
	"log"

	"rentx/internal/db"
	"rentx/internal/entities"
)

// VehicleStore is implemented by repository.VehicleRepository.
type VehicleStore interface {
	List(ctx context.Context, filter entities.VehicleFilter) ([]db.Vehicle, error)
	GetByID(ctx context.Context, id int) (*db.Vehicle, error)
	Create(ctx context.Context, v *db.Vehicle) error
	Update(ctx context.Context, v *db.Vehicle) error
	Delete(ctx context.Context, id int) error
}

// VehicleCache fronts unfiltered catalog reads. A nil cache degrades to
// plain database reads.
type VehicleCache interface {
	GetVehicles(ctx context.Context) ([]db.Vehicle, error)
	SetVehicles(ctx context.Context, vehicles []db.Vehicle) error
	InvalidateVehicles(ctx context.Context) error
}

type VehicleService struct {
	vehicles VehicleStore
	cache    VehicleCache
}

func NewVehicleService(vehicles VehicleStore, cache VehicleCache) *VehicleService {
	return &VehicleService{vehicles: vehicles, cache: cache}
}

func (s *VehicleService) List(ctx context.Context, filter entities.VehicleFilter) ([]entities.VehicleResponse, error) {
	unfiltered := filter == (entities.VehicleFilter{})

	if unfiltered && s.cache != nil {
		cached, err := s.cache.GetVehicles(ctx)
		if err != nil {
			log.Printf("vehicle cache read failed, falling back to db: %v", err)
		} else if cached != nil {
			return vehicleResponses(cached), nil
		}
	}

	vehicles, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if unfiltered && s.cache != nil {
		if err := s.cache.SetVehicles(ctx, vehicles); err != nil {
			log.Printf("vehicle cache write failed: %v", err)
		}
	}
	return vehicleResponses(vehicles), nil
}

func (s *VehicleService) GetByID(ctx context.Context, id int) (*entities.VehicleResponse, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := vehicleResponse(v)
	return &resp, nil
}

func (s *VehicleService) Create(ctx context.Context, req entities.CreateVehicleRequest) (*entities.VehicleResponse, error) {
	v := &db.Vehicle{
		Brand:            req.Brand,
		Model:            req.Model,
		Category:         req.Category,
		Transmission:     req.Transmission,
		Fuel:             req.Fuel,
		Description:      req.Description,
		Images:           req.Images,
		PricePerDayCents: req.PricePerDayCents,
		IsAvailable:      true,
	}
	if v.Transmission == "" {
		v.Transmission = "Manual"
	}
	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	resp := vehicleResponse(v)
	return &resp, nil
}

func (s *VehicleService) Update(ctx context.Context, id int, req entities.UpdateVehicleRequest) (*entities.VehicleResponse, error) {
	v, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Brand != nil {
		v.Brand = *req.Brand
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Category != nil {
		v.Category = *req.Category
	}
	if req.Transmission != nil {
		v.Transmission = *req.Transmission
	}
	if req.Fuel != nil {
		v.Fuel = *req.Fuel
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Images != nil {
		v.Images = *req.Images
	}
	// Rate changes only affect future bookings; existing bookings keep their
	// captured total.
	if req.PricePerDayCents != nil {
		v.PricePerDayCents = *req.PricePerDayCents
	}
	if req.IsAvailable != nil {
		v.IsAvailable = *req.IsAvailable
	}
	if err := s.vehicles.Update(ctx, v); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	resp := vehicleResponse(v)
	return &resp, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *VehicleService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateVehicles(ctx); err != nil {
		log.Printf("vehicle cache invalidation failed: %v", err)
	}
}

func vehicleResponse(v *db.Vehicle) entities.VehicleResponse {
	return entities.VehicleResponse{
		ID:               v.ID,
		Brand:            v.Brand,
		Model:            v.Model,
		Category:         v.Category,
		Transmission:     v.Transmission,
		Fuel:             v.Fuel,
		Description:      v.Description,
		Images:           v.Images,
		PricePerDayCents: v.PricePerDayCents,
		IsAvailable:      v.IsAvailable,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func vehicleResponses(vehicles []db.Vehicle) []entities.VehicleResponse {
	out := make([]entities.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		out = append(out, vehicleResponse(&vehicles[i]))
	}
	return out
}
