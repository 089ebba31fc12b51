package ports

import (
	"context"

	"pcon/models"
)

// ManifestRepository handles manifest persistence
type ManifestRepository interface {
	Create(ctx context.Context, m *models.Manifest) error
	Get(ctx context.Context, manifestNo string) (*models.Manifest, error)
	Exists(ctx context.Context, manifestNo string) (bool, error)
	// Search applies the filter's non-zero criteria, ordered ship date then
	// manifest number descending, capped at limit rows.
	Search(ctx context.Context, filter models.ManifestFilter, limit int) ([]models.Manifest, error)
}
