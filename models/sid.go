package models

import (
	"pcon/domain/code"
)

// SID is a secondary shipping identifier attached to a shipment. A shipment
// may carry several; at most one is marked primary on the shipment row itself.
type SID struct {
	SIDID     code.Code `json:"sid_id" db:"sid_id"`
	OrderID   code.Code `json:"order_id" db:"order_id"`
	SIDNumber string    `json:"sid_number" db:"sid_number"`
}
