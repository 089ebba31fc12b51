package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pcon/domain/code"
	"pcon/models"
	"pcon/ports"
)

// OSDRepositoryImpl implements OSDRepository for PostgreSQL
type OSDRepositoryImpl struct {
	db *sqlx.DB
}

// NewOSDRepository creates a new PostgreSQL OSD repository
func NewOSDRepository(db *sqlx.DB) ports.OSDRepository {
	return &OSDRepositoryImpl{db: db}
}

// Insert adds an OSD exception row
func (r *OSDRepositoryImpl) Insert(ctx context.Context, o *models.OSD) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO osd (osd_index, order_id, reason_code, pallets_billed, boxes_billed,
		                 pallets_received, boxes_received, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, o.OSDIndex, o.OrderID, o.ReasonCode, o.PalletsBilled, o.BoxesBilled,
		o.PalletsReceived, o.BoxesReceived, o.Comments)
	return storeErr("OSD insert", err)
}

// ListForOrder returns a shipment's OSD rows ordered by OSD index
func (r *OSDRepositoryImpl) ListForOrder(ctx context.Context, orderID code.Code) ([]models.OSD, error) {
	var rows []models.OSD
	err := r.db.SelectContext(ctx, &rows, `
		SELECT osd_index, order_id, reason_code, pallets_billed, boxes_billed,
		       pallets_received, boxes_received, comments
		FROM osd
		WHERE order_id = $1
		ORDER BY osd_index
	`, orderID)
	if err != nil {
		return nil, storeErr("OSD list", err)
	}
	return rows, nil
}

// Delete removes a single OSD row
func (r *OSDRepositoryImpl) Delete(ctx context.Context, osdIndex code.Code) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM osd WHERE osd_index = $1", osdIndex)
	return storeErr("OSD delete", err)
}
