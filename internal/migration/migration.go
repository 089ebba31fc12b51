package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pcon/internal/errors"
)

// MigrationRunner creates the manifest schema on startup
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all schema migrations in dependency order. Every code column
// is a primary key, so allocation collisions fail at insert instead of
// silently duplicating.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createManifestTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create manifest table")
	}
	if err := r.createManifestDestinationsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create manifest_destinations table")
	}
	if err := r.createShipmentDetailTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create shipment_detail table")
	}
	if err := r.createSIDTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create sid table")
	}
	if err := r.createOSDTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create osd table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createManifestTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS manifest (
			manifest_no VARCHAR(50) PRIMARY KEY,
			trailer_number VARCHAR(50) NOT NULL DEFAULT '',
			seal VARCHAR(50) NOT NULL DEFAULT '',
			ship_date DATE,
			ob_carrier_code VARCHAR(50) NOT NULL DEFAULT '',
			pars_load_number VARCHAR(50) NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createManifestDestinationsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS manifest_destinations (
			drop_no CHAR(8) PRIMARY KEY,
			manifest_no VARCHAR(50) NOT NULL REFERENCES manifest(manifest_no),
			stop_order INTEGER NOT NULL DEFAULT 0,
			code_destination VARCHAR(50) NOT NULL DEFAULT '',
			shipvia VARCHAR(50) NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *MigrationRunner) createShipmentDetailTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS shipment_detail (
			order_id CHAR(8) PRIMARY KEY,
			drop_no CHAR(8) NOT NULL REFERENCES manifest_destinations(drop_no),
			vendorcode VARCHAR(50) NOT NULL DEFAULT '',
			sid VARCHAR(100),
			bol_no VARCHAR(100) NOT NULL DEFAULT '',
			pro_no VARCHAR(100) NOT NULL DEFAULT '',
			po_number VARCHAR(100) NOT NULL DEFAULT '',
			ib_carrier_code VARCHAR(50) NOT NULL DEFAULT '',
			skids INTEGER NOT NULL DEFAULT 0,
			boxes INTEGER NOT NULL DEFAULT 0,
			weight_lb NUMERIC(12,2) NOT NULL DEFAULT 0,
			declared_value NUMERIC(14,2) NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			hazmat BOOLEAN NOT NULL DEFAULT false,
			hazmat_description VARCHAR(20) NOT NULL DEFAULT ''
		)
	`)
	return err
}

func (r *MigrationRunner) createSIDTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS sid (
			sid_id CHAR(8) PRIMARY KEY,
			order_id CHAR(8) NOT NULL REFERENCES shipment_detail(order_id),
			sid_number VARCHAR(100) NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createOSDTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS osd (
			osd_index CHAR(8) PRIMARY KEY,
			order_id CHAR(8) NOT NULL REFERENCES shipment_detail(order_id),
			reason_code VARCHAR(20) NOT NULL,
			pallets_billed INTEGER NOT NULL DEFAULT 0,
			boxes_billed INTEGER NOT NULL DEFAULT 0,
			pallets_received INTEGER NOT NULL DEFAULT 0,
			boxes_received INTEGER NOT NULL DEFAULT 0,
			comments TEXT
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_manifest_ship_date ON manifest(ship_date DESC)",
		"CREATE INDEX IF NOT EXISTS idx_manifest_dest_manifest_no ON manifest_destinations(manifest_no)",
		"CREATE INDEX IF NOT EXISTS idx_shipment_drop_no ON shipment_detail(drop_no)",
		"CREATE INDEX IF NOT EXISTS idx_sid_order_id ON sid(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_osd_order_id ON osd(order_id)",
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
