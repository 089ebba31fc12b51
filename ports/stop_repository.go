package ports

import (
	"context"

	"pcon/domain/code"
	"pcon/models"
)

// StopRepository handles manifest-destination (drop) persistence
type StopRepository interface {
	Insert(ctx context.Context, s *models.Stop) error
	ListForManifest(ctx context.Context, manifestNo string) ([]models.Stop, error)
	Exists(ctx context.Context, dropNo code.Code) (bool, error)
	// DeleteCascade removes the stop and every dependent row in one
	// transaction, deleting in the fixed order SIDs, OSDs, shipments, stop.
	DeleteCascade(ctx context.Context, dropNo code.Code) error
}
