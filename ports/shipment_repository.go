package ports

import (
	"context"

	"pcon/domain/code"
	"pcon/models"
)

// ShipmentRepository handles shipment-detail persistence
type ShipmentRepository interface {
	Insert(ctx context.Context, s *models.Shipment) error
	ListForStop(ctx context.Context, dropNo code.Code) ([]models.Shipment, error)
	// GetPrimarySID reads the primary SID column off the shipment row;
	// nil means no primary SID is set.
	GetPrimarySID(ctx context.Context, orderID code.Code) (*string, error)
	// SetPrimarySID writes the primary SID column; nil clears it.
	SetPrimarySID(ctx context.Context, orderID code.Code, sidNumber *string) error
	// DeleteCascade removes the shipment and every dependent row in one
	// transaction, deleting in the fixed order SIDs, OSDs, shipment.
	DeleteCascade(ctx context.Context, orderID code.Code) error
}
