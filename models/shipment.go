package models

import (
	"strings"

	"github.com/shopspring/decimal"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
)

// HazmatClass identifies a hazardous-material classification on a shipment
type HazmatClass string

const (
	HazmatNone      HazmatClass = ""
	HazmatGas       HazmatClass = "CL2_GAS"
	HazmatFlammable HazmatClass = "CL3_FLAMMABLE"
	HazmatCorrosive HazmatClass = "CL8_CORROSIVE"
	HazmatMisc      HazmatClass = "CL9_MISC"
)

// HazmatClasses lists every accepted hazmat classification, the empty class first
var HazmatClasses = []HazmatClass{HazmatNone, HazmatGas, HazmatFlammable, HazmatCorrosive, HazmatMisc}

func (h HazmatClass) Valid() bool {
	for _, known := range HazmatClasses {
		if h == known {
			return true
		}
	}
	return false
}

// Shipment represents a single consignment recorded against a stop
type Shipment struct {
	OrderID       code.Code       `json:"order_id" db:"order_id"`
	DropNo        code.Code       `json:"drop_no" db:"drop_no"`
	VendorCode    string          `json:"vendorcode" db:"vendorcode"`
	SID           *string         `json:"sid,omitempty" db:"sid"` // primary SID, nil when unset
	BOLNo         string          `json:"bol_no" db:"bol_no"`
	PRONo         string          `json:"pro_no" db:"pro_no"`
	PONumber      string          `json:"po_number" db:"po_number"`
	IBCarrierCode string          `json:"ib_carrier_code" db:"ib_carrier_code"`
	Skids         int             `json:"skids" db:"skids"`
	Boxes         int             `json:"boxes" db:"boxes"`
	WeightLb      decimal.Decimal `json:"weight_lb" db:"weight_lb"`
	DeclaredValue decimal.Decimal `json:"declared_value" db:"declared_value"`
	Notes         string          `json:"notes" db:"notes"`
	Hazmat        bool            `json:"hazmat" db:"hazmat"`
	HazmatDesc    HazmatClass     `json:"hazmat_description" db:"hazmat_description"`
}

// Validate checks the fields a shipment cannot be inserted without.
// OrderID is allocated by the service, not supplied by the caller.
func (s *Shipment) Validate() error {
	if strings.TrimSpace(s.DropNo.String()) == "" {
		return apperrors.ValidationError("shipment requires a drop number")
	}
	if s.Skids < 0 || s.Boxes < 0 {
		return apperrors.ValidationError("skids and boxes must not be negative")
	}
	if s.WeightLb.IsNegative() || s.DeclaredValue.IsNegative() {
		return apperrors.ValidationError("weight and declared value must not be negative")
	}
	if !s.HazmatDesc.Valid() {
		return apperrors.ValidationError("unknown hazmat classification " + string(s.HazmatDesc))
	}
	if s.Hazmat && s.HazmatDesc == HazmatNone {
		return apperrors.ValidationError("hazmat shipments need a hazmat classification")
	}
	return nil
}
