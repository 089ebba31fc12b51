package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/models"
	"pcon/ports"
)

// StopRepositoryImpl implements StopRepository for PostgreSQL
type StopRepositoryImpl struct {
	db *sqlx.DB
}

// NewStopRepository creates a new PostgreSQL stop repository
func NewStopRepository(db *sqlx.DB) ports.StopRepository {
	return &StopRepositoryImpl{db: db}
}

// Insert adds a stop row. The drop number lands on a UNIQUE primary key, so
// a lost allocation race surfaces here as STORE_CONSTRAINT_VIOLATION.
func (r *StopRepositoryImpl) Insert(ctx context.Context, s *models.Stop) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO manifest_destinations (drop_no, manifest_no, stop_order, code_destination, shipvia)
		VALUES ($1, $2, $3, $4, $5)
	`, s.DropNo, s.ManifestNo, s.StopOrder, s.CodeDestination, s.ShipVia)
	return storeErr("stop insert", err)
}

// ListForManifest returns a manifest's stops ordered by stop order
func (r *StopRepositoryImpl) ListForManifest(ctx context.Context, manifestNo string) ([]models.Stop, error) {
	var stops []models.Stop
	err := r.db.SelectContext(ctx, &stops, `
		SELECT drop_no, manifest_no, stop_order, code_destination, shipvia
		FROM manifest_destinations
		WHERE manifest_no = $1
		ORDER BY stop_order
	`, manifestNo)
	if err != nil {
		return nil, storeErr("stop list", err)
	}
	return stops, nil
}

// Exists reports whether a stop with the given drop number is present
func (r *StopRepositoryImpl) Exists(ctx context.Context, dropNo code.Code) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM manifest_destinations WHERE drop_no = $1)", dropNo)
	if err != nil {
		return false, storeErr("stop existence check", err)
	}
	return exists, nil
}

// DeleteCascade removes the stop and its dependents in one transaction.
// Delete order is fixed: SIDs, OSDs, shipments, stop. The schema carries no
// ON DELETE CASCADE; the ordering here is the referential guarantee.
func (r *StopRepositoryImpl) DeleteCascade(ctx context.Context, dropNo code.Code) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("stop delete begin", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM sid WHERE order_id IN (SELECT order_id FROM shipment_detail WHERE drop_no = $1)`,
		`DELETE FROM osd WHERE order_id IN (SELECT order_id FROM shipment_detail WHERE drop_no = $1)`,
		`DELETE FROM shipment_detail WHERE drop_no = $1`,
		`DELETE FROM manifest_destinations WHERE drop_no = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, dropNo); err != nil {
			return storeErr("stop cascade delete", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.StoreUnavailable("stop delete commit", err)
	}
	return nil
}
