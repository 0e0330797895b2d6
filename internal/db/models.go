package db

import (
	"database/sql"
	"time"
)

type Vehicle struct {
	ID               int
	Brand            string
	Model            string
	Category         string
	Transmission     string
	Fuel             string
	Description      string
	Images           []string
	PricePerDayCents int64
	IsAvailable      bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Booking struct {
	ID              int
	Code            string
	VehicleID       int
	UserID          sql.NullInt64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   sql.NullString
	StartDate       time.Time
	EndDate         time.Time
	TotalPriceCents int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type MaintenanceBlock struct {
	ID        int
	VehicleID int
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	CreatedAt time.Time
}

type User struct {
	ID           int
	Name         string
	Email        string
	PasswordHash string
	Phone        sql.NullString
	CreatedAt    time.Time
}

type Admin struct {
	ID           int
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type Message struct {
	ID        int
	Name      string
	Email     string
	Subject   sql.NullString
	Body      string
	Status    string
	CreatedAt time.Time
}
