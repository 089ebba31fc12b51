package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/models"
	"pcon/ports"
)

// ShipmentRepositoryImpl implements ShipmentRepository for PostgreSQL
type ShipmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewShipmentRepository creates a new PostgreSQL shipment repository
func NewShipmentRepository(db *sqlx.DB) ports.ShipmentRepository {
	return &ShipmentRepositoryImpl{db: db}
}

// Insert adds a shipment row
func (r *ShipmentRepositoryImpl) Insert(ctx context.Context, s *models.Shipment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shipment_detail (
			order_id, drop_no, vendorcode, sid, bol_no, pro_no, po_number,
			ib_carrier_code, skids, boxes, weight_lb, declared_value, notes,
			hazmat, hazmat_description
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, s.OrderID, s.DropNo, s.VendorCode, s.SID, s.BOLNo, s.PRONo, s.PONumber,
		s.IBCarrierCode, s.Skids, s.Boxes, s.WeightLb, s.DeclaredValue, s.Notes,
		s.Hazmat, s.HazmatDesc)
	return storeErr("shipment insert", err)
}

// ListForStop returns a stop's shipments, BOL number first like the entry
// screens, falling back to order id for rows without one
func (r *ShipmentRepositoryImpl) ListForStop(ctx context.Context, dropNo code.Code) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.SelectContext(ctx, &shipments, `
		SELECT order_id, drop_no, vendorcode, sid, bol_no, pro_no, po_number,
		       ib_carrier_code, skids, boxes, weight_lb, declared_value, notes,
		       hazmat, hazmat_description
		FROM shipment_detail
		WHERE drop_no = $1
		ORDER BY COALESCE(NULLIF(bol_no, ''), order_id)
	`, dropNo)
	if err != nil {
		return nil, storeErr("shipment list", err)
	}
	return shipments, nil
}

// GetPrimarySID reads the primary SID column off the shipment row
func (r *ShipmentRepositoryImpl) GetPrimarySID(ctx context.Context, orderID code.Code) (*string, error) {
	var sid *string
	err := r.db.GetContext(ctx, &sid,
		"SELECT sid FROM shipment_detail WHERE order_id = $1", orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("shipment " + orderID.String())
	}
	if err != nil {
		return nil, storeErr("primary SID lookup", err)
	}
	return sid, nil
}

// SetPrimarySID writes the primary SID column; nil clears it
func (r *ShipmentRepositoryImpl) SetPrimarySID(ctx context.Context, orderID code.Code, sidNumber *string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE shipment_detail SET sid = $2 WHERE order_id = $1", orderID, sidNumber)
	if err != nil {
		return storeErr("primary SID update", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.NotFound("shipment " + orderID.String())
	}
	return nil
}

// DeleteCascade removes the shipment and its dependents in one transaction,
// in the fixed order SIDs, OSDs, shipment
func (r *ShipmentRepositoryImpl) DeleteCascade(ctx context.Context, orderID code.Code) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("shipment delete begin", err)
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM sid WHERE order_id = $1`,
		`DELETE FROM osd WHERE order_id = $1`,
		`DELETE FROM shipment_detail WHERE order_id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt, orderID); err != nil {
			return storeErr("shipment cascade delete", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.StoreUnavailable("shipment delete commit", err)
	}
	return nil
}
