// Command provision performs one-time, idempotent environment setup: schema,
// the admin account, and sample catalog data. It is meant to run out-of-band
// at deploy time; the server itself never creates or repairs accounts.
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"rentx/internal/db"
	"rentx/internal/repository"
)

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id                  SERIAL PRIMARY KEY,
		brand               TEXT NOT NULL,
		model               TEXT NOT NULL,
		category            TEXT NOT NULL DEFAULT '',
		transmission        TEXT NOT NULL DEFAULT 'Manual',
		fuel                TEXT NOT NULL DEFAULT '',
		description         TEXT NOT NULL DEFAULT '',
		images              JSONB NOT NULL DEFAULT '[]',
		price_per_day_cents BIGINT NOT NULL CHECK (price_per_day_cents > 0),
		is_available        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            SERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone         TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS admins (
		id            SERIAL PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// The exclusion constraint is the database-level backstop for the
	// overlap check: it rejects the second of two concurrent writers even
	// if both passed the application-level check. Cancelled rows are
	// excluded so they free their dates.
	`CREATE TABLE IF NOT EXISTS bookings (
		id                SERIAL PRIMARY KEY,
		code              TEXT NOT NULL UNIQUE,
		vehicle_id        INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		user_id           INTEGER REFERENCES users(id) ON DELETE SET NULL,
		customer_name     TEXT NOT NULL,
		customer_email    TEXT NOT NULL,
		customer_phone    TEXT,
		start_date        DATE NOT NULL,
		end_date          DATE NOT NULL,
		total_price_cents BIGINT NOT NULL,
		status            TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'confirmed', 'completed', 'cancelled')),
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (start_date < end_date),
		EXCLUDE USING gist (
			vehicle_id WITH =,
			daterange(start_date, end_date) WITH &&
		) WHERE (status <> 'cancelled')
	)`,

	`CREATE TABLE IF NOT EXISTS maintenance_blocks (
		id         SERIAL PRIMARY KEY,
		vehicle_id INTEGER NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL,
		reason     TEXT NOT NULL DEFAULT 'maintenance',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CHECK (start_date < end_date)
	)`,

	`CREATE TABLE IF NOT EXISTS messages (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		subject    TEXT,
		body       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'unread' CHECK (status IN ('unread', 'read')),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

var sampleVehicles = []db.Vehicle{
	{
		Brand: "Mercedes-Benz", Model: "G-Class", Category: "Luxury",
		Transmission: "Automatic", Fuel: "Petrol",
		Description:      "Luxury SUV for a premium experience.",
		Images:           []string{"/images/car1.png"},
		PricePerDayCents: 45000, IsAvailable: true,
	},
	{
		Brand: "Range Rover", Model: "Sport", Category: "SUV",
		Transmission: "Automatic", Fuel: "Diesel",
		Description:      "Sporty and comfortable SUV.",
		Images:           []string{"/images/car2.png"},
		PricePerDayCents: 40000, IsAvailable: true,
	},
	{
		Brand: "BMW", Model: "X6", Category: "Luxury",
		Transmission: "Automatic", Fuel: "Petrol",
		Description:      "Dynamic coupe-like SUV.",
		Images:           []string{"/images/car3.png"},
		PricePerDayCents: 38000, IsAvailable: true,
	},
}

func main() {
	godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()

	for _, stmt := range schema {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("Schema statement failed: %v", err)
		}
	}
	log.Println("Schema is up to date.")

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	userRepo := repository.NewUserRepository(database)
	if err := userRepo.UpsertAdmin(ctx, adminEmail, string(hash)); err != nil {
		log.Fatalf("Failed to provision admin: %v", err)
	}
	log.Printf("Admin %s provisioned.", adminEmail)

	vehicleRepo := repository.NewVehicleRepository(database)
	count, err := vehicleRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count vehicles: %v", err)
	}
	if count == 0 {
		for i := range sampleVehicles {
			if err := vehicleRepo.Create(ctx, &sampleVehicles[i]); err != nil {
				log.Fatalf("Failed to seed vehicle: %v", err)
			}
		}
		log.Printf("Seeded %d sample vehicles.", len(sampleVehicles))
	} else {
		log.Println("Vehicles already present, skipping seed.")
	}

	log.Println("Provisioning completed.")
}
