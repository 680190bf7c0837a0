package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lanvy-atelier/dress-rental/internal/core/domain"
)

type InstanceRepository struct {
	db *sql.DB
}

func NewInstanceRepository(db *sql.DB) *InstanceRepository {
	return &InstanceRepository{db: db}
}

const instanceColumns = `id, model_id, status, version, reserved_at, hold_start, hold_end, held_by_order_id, rental_start, rental_end`

func (r *InstanceRepository) GetByID(ctx context.Context, instanceID uuid.UUID) (*domain.DressInstance, error) {
	query := `
	SELECT ` + instanceColumns + `
	FROM dress_instances
	WHERE id = $1
	`

	inst, err := scanInstance(r.db.QueryRowContext(ctx, query, instanceID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return inst, nil
}

func (r *InstanceRepository) ListAvailableByModel(ctx context.Context, modelID uuid.UUID) ([]domain.DressInstance, error) {
	query := `
	SELECT ` + instanceColumns + `
	FROM dress_instances
	WHERE model_id = $1 AND status = 'AVAILABLE'
	ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, modelID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var instances []domain.DressInstance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, *inst)
	}

	return instances, rows.Err()
}

// ReserveOldestAvailable is a single conditional UPDATE: the subselect picks
// the lowest-id AVAILABLE instance and SKIP LOCKED keeps two concurrent
// reservers from ever selecting the same row.
func (r *InstanceRepository) ReserveOldestAvailable(ctx context.Context, modelID uuid.UUID, start, end, now time.Time) (*domain.DressInstance, error) {
	query := `
	UPDATE dress_instances
	SET status = 'RESERVED',
		reserved_at = $2,
		hold_start = $3,
		hold_end = $4,
		version = version + 1
	WHERE id = (
		SELECT id FROM dress_instances
		WHERE model_id = $1 AND status = 'AVAILABLE'
		ORDER BY id
		LIMIT 1
		FOR UPDATE SKIP LOCKED
	)
	RETURNING ` + instanceColumns + `
	`

	inst, err := scanInstance(r.db.QueryRowContext(ctx, query, modelID, now, start, end))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrOutOfStock
		}
		return nil, fmt.Errorf("reserve instance: %w", err)
	}

	return inst, nil
}

func (r *InstanceRepository) Release(ctx context.Context, instanceID uuid.UUID) (bool, error) {
	query := `
	UPDATE dress_instances
	SET status = 'AVAILABLE',
		reserved_at = NULL,
		hold_start = NULL,
		hold_end = NULL,
		held_by_order_id = NULL,
		version = version + 1
	WHERE id = $1 AND status = 'RESERVED'
	`

	result, err := r.db.ExecContext(ctx, query, instanceID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if affected == 0 {
		// Not RESERVED: a no-op for AVAILABLE or RENTED instances, an error
		// only when the instance does not exist at all.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM dress_instances WHERE id = $1)`, instanceID,
		).Scan(&exists); err != nil {
			return false, err
		}
		if !exists {
			return false, domain.ErrNotFound
		}
		return false, nil
	}

	return true, nil
}

func (r *InstanceRepository) ReleaseExpired(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	query := `
	UPDATE dress_instances
	SET status = 'AVAILABLE',
		reserved_at = NULL,
		hold_start = NULL,
		hold_end = NULL,
		held_by_order_id = NULL,
		version = version + 1
	WHERE status = 'RESERVED' AND reserved_at < $1
	RETURNING model_id
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("release expired holds: %w", err)
	}

	defer rows.Close()

	var modelIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		modelIDs = append(modelIDs, id)
	}

	return modelIDs, rows.Err()
}

func (r *InstanceRepository) ClaimForOrder(ctx context.Context, instanceID, orderID uuid.UUID, currentVersion int) error {
	query := `
	UPDATE dress_instances
	SET held_by_order_id = $2,
		version = version + 1
	WHERE id = $1 AND version = $3 AND status = 'RESERVED' AND held_by_order_id IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, instanceID, orderID, currentVersion)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *InstanceRepository) ReleaseClaim(ctx context.Context, instanceID uuid.UUID) error {
	query := `
	UPDATE dress_instances
	SET held_by_order_id = NULL,
		version = version + 1
	WHERE id = $1 AND status = 'RESERVED'
	`

	_, err := r.db.ExecContext(ctx, query, instanceID)

	return err
}

func (r *InstanceRepository) Delete(ctx context.Context, instanceID uuid.UUID) error {
	query := `
	DELETE FROM dress_instances
	WHERE id = $1 AND status IN ('AVAILABLE', 'MAINTENANCE')
	`

	result, err := r.db.ExecContext(ctx, query, instanceID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM dress_instances WHERE id = $1)`, instanceID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInstanceInUse
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstance(row rowScanner) (*domain.DressInstance, error) {
	var inst domain.DressInstance
	var reservedAt, holdStart, holdEnd, rentalStart, rentalEnd sql.NullTime
	var heldBy sql.NullString

	err := row.Scan(
		&inst.ID,
		&inst.ModelID,
		&inst.Status,
		&inst.Version,
		&reservedAt,
		&holdStart,
		&holdEnd,
		&heldBy,
		&rentalStart,
		&rentalEnd,
	)
	if err != nil {
		return nil, err
	}

	if reservedAt.Valid {
		inst.ReservedAt = &reservedAt.Time
	}
	if holdStart.Valid {
		inst.HoldStart = &holdStart.Time
	}
	if holdEnd.Valid {
		inst.HoldEnd = &holdEnd.Time
	}
	if rentalStart.Valid {
		inst.RentalStart = &rentalStart.Time
	}
	if rentalEnd.Valid {
		inst.RentalEnd = &rentalEnd.Time
	}
	if heldBy.Valid && heldBy.String != "" {
		uid, err := uuid.Parse(heldBy.String)
		if err == nil {
			inst.HeldByOrderID = &uid
		}
	}

	return &inst, nil
}
