package service

import (
	"context"

	"rentx/internal/booking"
	"rentx/internal/db"
	"rentx/internal/entities"
	apperr "rentx/internal/errors"
)

type MaintenanceStore interface {
	ListByVehicle(ctx context.Context, vehicleID int) ([]db.MaintenanceBlock, error)
	Create(ctx context.Context, b *db.MaintenanceBlock) error
	Delete(ctx context.Context, id int) error
}

type MaintenanceService struct {
	blocks   MaintenanceStore
	vehicles VehicleGetter
}

func NewMaintenanceService(blocks MaintenanceStore, vehicles VehicleGetter) *MaintenanceService {
	return &MaintenanceService{blocks: blocks, vehicles: vehicles}
}

func (s *MaintenanceService) ListByVehicle(ctx context.Context, vehicleID int) ([]entities.MaintenanceBlockResponse, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	blocks, err := s.blocks.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	out := make([]entities.MaintenanceBlockResponse, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, maintenanceResponse(&b))
	}
	return out, nil
}

func (s *MaintenanceService) Create(ctx context.Context, vehicleID int, req entities.CreateMaintenanceBlockRequest) (*entities.MaintenanceBlockResponse, error) {
	iv, err := parseInterval(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "maintenance"
	}
	block := &db.MaintenanceBlock{
		VehicleID: vehicleID,
		StartDate: iv.Start,
		EndDate:   iv.End,
		Reason:    reason,
	}
	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, err
	}
	resp := maintenanceResponse(block)
	return &resp, nil
}

func (s *MaintenanceService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return apperr.Validation("invalid maintenance block id")
	}
	return s.blocks.Delete(ctx, id)
}

func maintenanceResponse(b *db.MaintenanceBlock) entities.MaintenanceBlockResponse {
	return entities.MaintenanceBlockResponse{
		ID:        b.ID,
		VehicleID: b.VehicleID,
		StartDate: b.StartDate.Format(booking.DateLayout),
		EndDate:   b.EndDate.Format(booking.DateLayout),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}
