package models

import (
	"pcon/domain/code"
	apperrors "pcon/internal/errors"
)

// OSDReason classifies an overage/shortage/damage exception
type OSDReason string

const (
	OSDOverage OSDReason = "Overage"
	OSDShort   OSDReason = "Short"
	OSDDamage  OSDReason = "Damage"
	OSDOther   OSDReason = "Other"
)

// OSDReasons lists every accepted reason code
var OSDReasons = []OSDReason{OSDOverage, OSDShort, OSDDamage, OSDOther}

func (r OSDReason) Valid() bool {
	for _, known := range OSDReasons {
		if r == known {
			return true
		}
	}
	return false
}

// OSD is an overage/shortage/damage exception recorded against a shipment
type OSD struct {
	OSDIndex        code.Code `json:"osd_index" db:"osd_index"`
	OrderID         code.Code `json:"order_id" db:"order_id"`
	ReasonCode      OSDReason `json:"reason_code" db:"reason_code"`
	PalletsBilled   int       `json:"pallets_billed" db:"pallets_billed"`
	BoxesBilled     int       `json:"boxes_billed" db:"boxes_billed"`
	PalletsReceived int       `json:"pallets_received" db:"pallets_received"`
	BoxesReceived   int       `json:"boxes_received" db:"boxes_received"`
	Comments        *string   `json:"comments,omitempty" db:"comments"`
}

// Validate checks the fields an OSD row cannot be inserted without.
// OSDIndex is allocated by the service, not supplied by the caller.
func (o *OSD) Validate() error {
	if o.OrderID.IsZero() {
		return apperrors.ValidationError("OSD entry requires an order id")
	}
	if !o.ReasonCode.Valid() {
		return apperrors.ValidationError("unknown OSD reason code " + string(o.ReasonCode))
	}
	if o.PalletsBilled < 0 || o.BoxesBilled < 0 || o.PalletsReceived < 0 || o.BoxesReceived < 0 {
		return apperrors.ValidationError("billed and received counts must not be negative")
	}
	return nil
}
