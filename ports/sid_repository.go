package ports

import (
	"context"

	"pcon/domain/code"
	"pcon/models"
)

// SIDRepository handles secondary shipping identifier persistence
type SIDRepository interface {
	Insert(ctx context.Context, s *models.SID) error
	ListForOrder(ctx context.Context, orderID code.Code) ([]models.SID, error)
	Delete(ctx context.Context, sidID code.Code) error
}
