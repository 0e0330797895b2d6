package entities

import "time"

type CreateMaintenanceBlockRequest struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
	Reason    string `json:"reason"`
}

type MaintenanceBlockResponse struct {
	ID        int       `json:"id"`
	VehicleID int       `json:"vehicle_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
