package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	apperrors "pcon/internal/errors"
	"pcon/models"
	"pcon/ports"
)

// ManifestRepositoryImpl implements ManifestRepository for PostgreSQL
type ManifestRepositoryImpl struct {
	db *sqlx.DB
}

// NewManifestRepository creates a new PostgreSQL manifest repository
func NewManifestRepository(db *sqlx.DB) ports.ManifestRepository {
	return &ManifestRepositoryImpl{db: db}
}

// Create inserts a new manifest row
func (r *ManifestRepositoryImpl) Create(ctx context.Context, m *models.Manifest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO manifest (manifest_no, trailer_number, seal, ship_date, ob_carrier_code, pars_load_number)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ManifestNo, m.TrailerNumber, m.Seal, m.ShipDate, m.OBCarrierCode, m.PARSLoadNumber)
	return storeErr("manifest insert", err)
}

// Get retrieves a manifest by number
func (r *ManifestRepositoryImpl) Get(ctx context.Context, manifestNo string) (*models.Manifest, error) {
	var m models.Manifest
	err := r.db.GetContext(ctx, &m, `
		SELECT manifest_no, trailer_number, seal, ship_date, ob_carrier_code, pars_load_number, created_at
		FROM manifest
		WHERE manifest_no = $1
	`, manifestNo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("manifest " + manifestNo)
	}
	if err != nil {
		return nil, storeErr("manifest lookup", err)
	}
	return &m, nil
}

// Exists reports whether a manifest with the given number is present
func (r *ManifestRepositoryImpl) Exists(ctx context.Context, manifestNo string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM manifest WHERE manifest_no = $1)", manifestNo)
	if err != nil {
		return false, storeErr("manifest existence check", err)
	}
	return exists, nil
}

// Search applies the filter's non-zero criteria with case-insensitive
// substring matching on manifest number and carrier, newest ship date first
func (r *ManifestRepositoryImpl) Search(ctx context.Context, filter models.ManifestFilter, limit int) ([]models.Manifest, error) {
	query := `
		SELECT manifest_no, trailer_number, seal, ship_date, ob_carrier_code, pars_load_number, created_at
		FROM manifest
		WHERE 1=1
	`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.ManifestNo != "" {
		query += " AND manifest_no ILIKE '%' || " + arg(filter.ManifestNo) + " || '%'"
	}
	if filter.CarrierCode != "" {
		query += " AND ob_carrier_code ILIKE '%' || " + arg(filter.CarrierCode) + " || '%'"
	}
	if filter.DateFrom != nil {
		query += " AND ship_date >= " + arg(*filter.DateFrom)
	}
	if filter.DateTo != nil {
		query += " AND ship_date <= " + arg(*filter.DateTo)
	}
	query += " ORDER BY ship_date DESC NULLS LAST, manifest_no DESC LIMIT " + arg(limit)

	var manifests []models.Manifest
	if err := r.db.SelectContext(ctx, &manifests, query, args...); err != nil {
		return nil, storeErr("manifest search", err)
	}
	return manifests, nil
}
