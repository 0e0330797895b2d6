package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"rentx/internal/db"
	"rentx/internal/entities"
	apperr "rentx/internal/errors"
)

const vehicleColumns = `id, brand, model, category, transmission, fuel, description, images,
	price_per_day_cents, is_available, created_at, updated_at`

type VehicleRepository struct {
	DB *sql.DB
}

func NewVehicleRepository(database *sql.DB) *VehicleRepository {
	return &VehicleRepository{DB: database}
}

func scanVehicle(row interface{ Scan(...interface{}) error }) (*db.Vehicle, error) {
	var v db.Vehicle
	var images []byte
	err := row.Scan(
		&v.ID, &v.Brand, &v.Model, &v.Category, &v.Transmission, &v.Fuel, &v.Description, &images,
		&v.PricePerDayCents, &v.IsAvailable, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &v.Images); err != nil {
			return nil, fmt.Errorf("error decoding vehicle images: %w", err)
		}
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context, filter entities.VehicleFilter) ([]db.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.Category != "" && filter.Category != "All" {
		query += fmt.Sprintf(" AND category = $%d", idx)
		args = append(args, filter.Category)
		idx++
	}
	if filter.MinPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents >= $%d", idx)
		args = append(args, filter.MinPriceCents)
		idx++
	}
	if filter.MaxPriceCents > 0 {
		query += fmt.Sprintf(" AND price_per_day_cents <= $%d", idx)
		args = append(args, filter.MaxPriceCents)
		idx++
	}
	query += " ORDER BY id"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("error listing vehicles: %w", err))
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, apperr.Storage(fmt.Errorf("error scanning vehicle: %w", err))
		}
		vehicles = append(vehicles, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(fmt.Errorf("error iterating vehicles: %w", err))
	}
	return vehicles, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int) (*db.Vehicle, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound(fmt.Sprintf("vehicle %d not found", id))
		}
		return nil, apperr.Storage(fmt.Errorf("error querying vehicle: %w", err))
	}
	return v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *db.Vehicle) error {
	images, err := json.Marshal(v.Images)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error encoding vehicle images: %w", err))
	}
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO vehicles
			(brand, model, category, transmission, fuel, description, images,
			 price_per_day_cents, is_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at`,
		v.Brand, v.Model, v.Category, v.Transmission, v.Fuel, v.Description, images,
		v.PricePerDayCents, v.IsAvailable,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return translateError(err, "vehicle already exists")
	}
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *db.Vehicle) error {
	images, err := json.Marshal(v.Images)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error encoding vehicle images: %w", err))
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicles SET
			brand = $1, model = $2, category = $3, transmission = $4, fuel = $5,
			description = $6, images = $7, price_per_day_cents = $8, is_available = $9,
			updated_at = NOW()
		WHERE id = $10`,
		v.Brand, v.Model, v.Category, v.Transmission, v.Fuel,
		v.Description, images, v.PricePerDayCents, v.IsAvailable, v.ID)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error updating vehicle: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound(fmt.Sprintf("vehicle %d not found", v.ID))
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return translateError(err, "vehicle has bookings")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound(fmt.Sprintf("vehicle %d not found", id))
	}
	return nil
}

// Count supports the provisioning command's "seed only when empty" check.
func (r *VehicleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&n); err != nil {
		return 0, apperr.Storage(fmt.Errorf("error counting vehicles: %w", err))
	}
	return n, nil
}
