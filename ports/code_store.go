package ports

import (
	"context"

	"pcon/domain/code"
)

// Series names one independent numbering sequence: a (table, column) pair.
// Series share the code format but never share counters.
type Series struct {
	Table  string
	Column string
}

func (s Series) String() string {
	return s.Table + "." + s.Column
}

// The four fixed series of the manifest schema. Their (table, column)
// identity is external contract: any reimplementation must keep them to
// interoperate with existing rows.
var (
	SeriesStop     = Series{Table: "manifest_destinations", Column: "drop_no"}
	SeriesShipment = Series{Table: "shipment_detail", Column: "order_id"}
	SeriesSID      = Series{Table: "sid", Column: "sid_id"}
	SeriesOSD      = Series{Table: "osd", Column: "osd_index"}
)

// CodeStore is the allocator's only boundary with the persistent store.
type CodeStore interface {
	// MaxCode returns the greatest strictly-conforming code in the series
	// under the composite letter/digit order, or ok=false when no conforming
	// row exists. Non-conforming legacy values are excluded, never fatal.
	MaxCode(ctx context.Context, series Series) (last code.Code, ok bool, err error)

	// CodeExists reports whether a row already carries the given code.
	CodeExists(ctx context.Context, series Series, c code.Code) (bool, error)
}
