package models

import (
	"strings"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
)

// Stop represents one delivery destination (legacy term: drop) on a manifest
type Stop struct {
	DropNo          code.Code `json:"drop_no" db:"drop_no"`
	ManifestNo      string    `json:"manifest_no" db:"manifest_no"`
	StopOrder       int       `json:"stop_order" db:"stop_order"`
	CodeDestination string    `json:"code_destination" db:"code_destination"`
	ShipVia         string    `json:"shipvia" db:"shipvia"`
}

// Validate checks the fields a stop cannot be inserted without.
// DropNo is allocated by the service, not supplied by the caller.
func (s *Stop) Validate() error {
	if strings.TrimSpace(s.ManifestNo) == "" {
		return apperrors.ValidationError("stop requires a manifest number")
	}
	if s.StopOrder < 0 {
		return apperrors.ValidationError("stop order must not be negative")
	}
	return nil
}
