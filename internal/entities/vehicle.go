package entities

import "time"

type CreateVehicleRequest struct {
	Brand            string   `json:"brand" validate:"required"`
	Model            string   `json:"model" validate:"required"`
	Category         string   `json:"category" validate:"required"`
	Transmission     string   `json:"transmission" validate:"omitempty,oneof=Automatic Manual"`
	Fuel             string   `json:"fuel"`
	Description      string   `json:"description"`
	Images           []string `json:"images"`
	PricePerDayCents int64    `json:"price_per_day_cents" validate:"required,gt=0"`
}

// UpdateVehicleRequest uses pointers so absent fields keep their value.
type UpdateVehicleRequest struct {
	Brand            *string   `json:"brand"`
	Model            *string   `json:"model"`
	Category         *string   `json:"category"`
	Transmission     *string   `json:"transmission" validate:"omitempty,oneof=Automatic Manual"`
	Fuel             *string   `json:"fuel"`
	Description      *string   `json:"description"`
	Images           *[]string `json:"images"`
	PricePerDayCents *int64    `json:"price_per_day_cents" validate:"omitempty,gt=0"`
	IsAvailable      *bool     `json:"is_available"`
}

type VehicleResponse struct {
	ID               int       `json:"id"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	Category         string    `json:"category"`
	Transmission     string    `json:"transmission"`
	Fuel             string    `json:"fuel"`
	Description      string    `json:"description"`
	Images           []string  `json:"images"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	IsAvailable      bool      `json:"is_available"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// VehicleFilter narrows catalog listings. Zero values mean "no filter".
type VehicleFilter struct {
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
}
