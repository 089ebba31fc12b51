package models

import (
	"strings"
	"time"

	apperrors "pcon/internal/errors"
)

// Manifest represents one outbound freight manifest
type Manifest struct {
	ManifestNo     string     `json:"manifest_no" db:"manifest_no"`
	TrailerNumber  string     `json:"trailer_number" db:"trailer_number"`
	Seal           string     `json:"seal" db:"seal"`
	ShipDate       *time.Time `json:"ship_date,omitempty" db:"ship_date"`
	OBCarrierCode  string     `json:"ob_carrier_code" db:"ob_carrier_code"`
	PARSLoadNumber string     `json:"pars_load_number" db:"pars_load_number"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// Validate checks the fields a manifest cannot be created without
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.ManifestNo) == "" {
		return apperrors.ValidationError("manifest number is required")
	}
	return nil
}

// ManifestFilter holds the optional search criteria for manifests.
// Zero-valued fields are not applied.
type ManifestFilter struct {
	ManifestNo  string     `json:"manifest_no"`
	CarrierCode string     `json:"carrier_code"`
	DateFrom    *time.Time `json:"date_from"`
	DateTo      *time.Time `json:"date_to"`
}

// IsEmpty reports whether no criterion is set
func (f ManifestFilter) IsEmpty() bool {
	return f.ManifestNo == "" && f.CarrierCode == "" && f.DateFrom == nil && f.DateTo == nil
}
