package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestManifestValidate(t *testing.T) {
	tests := []struct {
		name        string
		manifest    Manifest
		expectError bool
	}{
		{
			name:        "valid",
			manifest:    Manifest{ManifestNo: "MAN-001", OBCarrierCode: "XPO"},
			expectError: false,
		},
		{
			name:        "missing number",
			manifest:    Manifest{OBCarrierCode: "XPO"},
			expectError: true,
		},
		{
			name:        "whitespace number",
			manifest:    Manifest{ManifestNo: "   "},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.manifest.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestStopValidate(t *testing.T) {
	tests := []struct {
		name        string
		stop        Stop
		expectError bool
	}{
		{"valid", Stop{ManifestNo: "MAN-001", StopOrder: 1}, false},
		{"missing manifest", Stop{StopOrder: 1}, true},
		{"negative order", Stop{ManifestNo: "MAN-001", StopOrder: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stop.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestShipmentValidate(t *testing.T) {
	base := Shipment{DropNo: "AAAA0000"}

	tests := []struct {
		name        string
		mutate      func(*Shipment)
		expectError bool
	}{
		{"minimal valid", func(s *Shipment) {}, false},
		{"hazmat with class", func(s *Shipment) { s.Hazmat = true; s.HazmatDesc = HazmatCorrosive }, false},
		{"missing drop", func(s *Shipment) { s.DropNo = "" }, true},
		{"negative boxes", func(s *Shipment) { s.Boxes = -2 }, true},
		{"negative declared value", func(s *Shipment) { s.DeclaredValue = decimal.NewFromInt(-1) }, true},
		{"hazmat without class", func(s *Shipment) { s.Hazmat = true }, true},
		{"unknown class", func(s *Shipment) { s.HazmatDesc = "CL1_EXPLOSIVE" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := base
			tt.mutate(&sh)
			err := sh.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestOSDValidate(t *testing.T) {
	tests := []struct {
		name        string
		osd         OSD
		expectError bool
	}{
		{"valid overage", OSD{OrderID: "AAAA0000", ReasonCode: OSDOverage}, false},
		{"valid other", OSD{OrderID: "AAAA0000", ReasonCode: OSDOther, PalletsBilled: 3}, false},
		{"missing order", OSD{ReasonCode: OSDShort}, true},
		{"unknown reason", OSD{OrderID: "AAAA0000", ReasonCode: "Misplaced"}, true},
		{"negative counts", OSD{OrderID: "AAAA0000", ReasonCode: OSDDamage, BoxesReceived: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.osd.Validate()
			if tt.expectError && err == nil {
				t.Errorf("expected error for %s, got nil", tt.name)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for %s: %v", tt.name, err)
			}
		})
	}
}

func TestManifestFilterIsEmpty(t *testing.T) {
	if !(ManifestFilter{}).IsEmpty() {
		t.Error("zero filter should be empty")
	}
	if (ManifestFilter{CarrierCode: "XPO"}).IsEmpty() {
		t.Error("filter with carrier should not be empty")
	}
}
