package ports

import (
	"context"

	"pcon/domain/code"
	"pcon/models"
)

// OSDRepository handles overage/shortage/damage row persistence
type OSDRepository interface {
	Insert(ctx context.Context, o *models.OSD) error
	ListForOrder(ctx context.Context, orderID code.Code) ([]models.OSD, error)
	Delete(ctx context.Context, osdIndex code.Code) error
}
