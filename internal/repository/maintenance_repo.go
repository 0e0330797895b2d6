package repository

import (
	"context"
	"database/sql"
	"fmt"

	"rentx/internal/db"
	apperr "rentx/internal/errors"
)

type MaintenanceRepository struct {
	DB *sql.DB
}

func NewMaintenanceRepository(database *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{DB: database}
}

func (r *MaintenanceRepository) ListByVehicle(ctx context.Context, vehicleID int) ([]db.MaintenanceBlock, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, vehicle_id, start_date, end_date, reason, created_at
		FROM maintenance_blocks
		WHERE vehicle_id = $1
		ORDER BY start_date`, vehicleID)
	if err != nil {
		return nil, apperr.Storage(fmt.Errorf("error listing maintenance blocks: %w", err))
	}
	defer rows.Close()

	var blocks []db.MaintenanceBlock
	for rows.Next() {
		var b db.MaintenanceBlock
		if err := rows.Scan(&b.ID, &b.VehicleID, &b.StartDate, &b.EndDate, &b.Reason, &b.CreatedAt); err != nil {
			return nil, apperr.Storage(fmt.Errorf("error scanning maintenance block: %w", err))
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(fmt.Errorf("error iterating maintenance blocks: %w", err))
	}
	return blocks, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, b *db.MaintenanceBlock) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO maintenance_blocks (vehicle_id, start_date, end_date, reason, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`,
		b.VehicleID, b.StartDate, b.EndDate, b.Reason,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return translateError(err, "maintenance block conflicts")
	}
	return nil
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM maintenance_blocks WHERE id = $1`, id)
	if err != nil {
		return apperr.Storage(fmt.Errorf("error deleting maintenance block: %w", err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if affected == 0 {
		return apperr.NotFound(fmt.Sprintf("maintenance block %d not found", id))
	}
	return nil
}
