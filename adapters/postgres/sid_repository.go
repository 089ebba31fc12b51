package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pcon/domain/code"
	"pcon/models"
	"pcon/ports"
)

// SIDRepositoryImpl implements SIDRepository for PostgreSQL
type SIDRepositoryImpl struct {
	db *sqlx.DB
}

// NewSIDRepository creates a new PostgreSQL SID repository
func NewSIDRepository(db *sqlx.DB) ports.SIDRepository {
	return &SIDRepositoryImpl{db: db}
}

// Insert adds a SID row
func (r *SIDRepositoryImpl) Insert(ctx context.Context, s *models.SID) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sid (sid_id, order_id, sid_number)
		VALUES ($1, $2, $3)
	`, s.SIDID, s.OrderID, s.SIDNumber)
	return storeErr("SID insert", err)
}

// ListForOrder returns a shipment's SIDs ordered by SID number
func (r *SIDRepositoryImpl) ListForOrder(ctx context.Context, orderID code.Code) ([]models.SID, error) {
	var sids []models.SID
	err := r.db.SelectContext(ctx, &sids, `
		SELECT sid_id, order_id, sid_number
		FROM sid
		WHERE order_id = $1
		ORDER BY sid_number
	`, orderID)
	if err != nil {
		return nil, storeErr("SID list", err)
	}
	return sids, nil
}

// Delete removes a single SID row
func (r *SIDRepositoryImpl) Delete(ctx context.Context, sidID code.Code) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sid WHERE sid_id = $1", sidID)
	return storeErr("SID delete", err)
}
