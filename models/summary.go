package models

import (
	"github.com/shopspring/decimal"
)

// StopDetail pairs a stop with its shipments for report and export views
type StopDetail struct {
	Stop      Stop       `json:"stop"`
	Shipments []Shipment `json:"shipments"`
}

// ManifestDetail is the fully loaded manifest tree
type ManifestDetail struct {
	Manifest Manifest     `json:"manifest"`
	Stops    []StopDetail `json:"stops"`
}

// ManifestSummary holds the aggregate totals panel for one manifest
type ManifestSummary struct {
	ManifestNo         string          `json:"manifest_no"`
	StopCount          int             `json:"stop_count"`
	ShipmentCount      int             `json:"shipment_count"`
	HazmatCount        int             `json:"hazmat_count"`
	TotalSkids         int             `json:"total_skids"`
	TotalBoxes         int             `json:"total_boxes"`
	TotalWeightLb      float64         `json:"total_weight_lb"`
	MeanWeightLb       float64         `json:"mean_weight_lb"`
	MedianWeightLb     float64         `json:"median_weight_lb"`
	TotalDeclaredValue decimal.Decimal `json:"total_declared_value"`
}
