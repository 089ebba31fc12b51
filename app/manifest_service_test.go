package app

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcon/domain/code"
	apperrors "pcon/internal/errors"
	"pcon/internal/testkit"
	"pcon/models"
)

func newTestService(t *testing.T) (*ManifestService, *testkit.TestKit) {
	t.Helper()
	kit := testkit.NewTestKit()
	svc := NewManifestService(kit.Manifests, kit.Stops, kit.Shipments, kit.SIDs, kit.OSDs,
		NewAllocatorService(kit.Codes))
	return svc, kit
}

func mustCreateManifest(t *testing.T, svc *ManifestService, manifestNo string) {
	t.Helper()
	err := svc.CreateManifest(context.Background(), &models.Manifest{ManifestNo: manifestNo})
	require.NoError(t, err)
}

func mustAddStop(t *testing.T, svc *ManifestService, manifestNo string, order int) code.Code {
	t.Helper()
	dropNo, err := svc.AddStop(context.Background(), &models.Stop{ManifestNo: manifestNo, StopOrder: order})
	require.NoError(t, err)
	return dropNo
}

func mustAddShipment(t *testing.T, svc *ManifestService, sh *models.Shipment) code.Code {
	t.Helper()
	orderID, err := svc.AddShipment(context.Background(), sh)
	require.NoError(t, err)
	return orderID
}

func TestCreateManifest_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")

	err := svc.CreateManifest(context.Background(), &models.Manifest{ManifestNo: "MAN-100"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDuplicate, apperrors.GetCode(err))
}

func TestCreateManifest_RequiresNumber(t *testing.T) {
	svc, _ := newTestService(t)
	err := svc.CreateManifest(context.Background(), &models.Manifest{ManifestNo: "  "})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationError, apperrors.GetCode(err))
}

func TestAddStop_AllocatesSequentially(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")

	first := mustAddStop(t, svc, "MAN-100", 1)
	second := mustAddStop(t, svc, "MAN-100", 2)
	assert.Equal(t, code.Code("AAAA0000"), first)
	assert.Equal(t, code.Code("AAAA0001"), second)
}

func TestAddStop_UnknownManifest(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddStop(context.Background(), &models.Stop{ManifestNo: "NOPE", StopOrder: 1})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

// Series never share counters: the first shipment still gets AAAA0000 even
// though stops have consumed codes of their own.
func TestSeriesAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	dropNo := mustAddStop(t, svc, "MAN-100", 1)
	mustAddStop(t, svc, "MAN-100", 2)

	orderID := mustAddShipment(t, svc, &models.Shipment{DropNo: dropNo})
	assert.Equal(t, code.Code("AAAA0000"), orderID)

	osdIndex, err := svc.AddOSD(context.Background(), &models.OSD{OrderID: orderID, ReasonCode: models.OSDShort})
	require.NoError(t, err)
	assert.Equal(t, code.Code("AAAA0000"), osdIndex)
}

func TestAddShipment_UnknownStop(t *testing.T) {
	svc, kit := newTestService(t)

	_, err := svc.AddShipment(context.Background(), &models.Shipment{DropNo: "ZZZZ0042"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))

	shipments, err := kit.Shipments.ListForStop(context.Background(), "ZZZZ0042")
	require.NoError(t, err)
	assert.Empty(t, shipments, "no shipment may be recorded against a missing stop")
}

func TestAddShipment_Validation(t *testing.T) {
	svc, kit := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	dropNo := mustAddStop(t, svc, "MAN-100", 1)

	tests := []struct {
		name     string
		shipment models.Shipment
	}{
		{"negative skids", models.Shipment{DropNo: dropNo, Skids: -1}},
		{"negative weight", models.Shipment{DropNo: dropNo, WeightLb: decimal.NewFromInt(-5)}},
		{"unknown hazmat class", models.Shipment{DropNo: dropNo, HazmatDesc: "CL7_RADIOACTIVE"}},
		{"hazmat without class", models.Shipment{DropNo: dropNo, Hazmat: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddShipment(context.Background(), &tt.shipment)
			require.Error(t, err)
			assert.Equal(t, apperrors.CodeValidationError, apperrors.GetCode(err))
		})
	}
	// Nothing was inserted along the way
	shipments, err := kit.Shipments.ListForStop(context.Background(), dropNo)
	require.NoError(t, err)
	assert.Empty(t, shipments)
}

func TestAddSIDs_DeduplicatesAndSkipsBlanks(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	dropNo := mustAddStop(t, svc, "MAN-100", 1)
	orderID := mustAddShipment(t, svc, &models.Shipment{DropNo: dropNo})

	added, err := svc.AddSIDs(context.Background(), orderID, []string{"SID-1", " SID-2 ", "", "   "})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// Re-adding one known and one new yields a single insert
	added, err = svc.AddSIDs(context.Background(), orderID, []string{"SID-2", "SID-3"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	sids, err := svc.ListSIDs(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, sids, 3)
	assert.Equal(t, "SID-1", sids[0].SIDNumber)
	assert.Equal(t, code.Code("AAAA0000"), sids[0].SIDID)
}

func TestSetPrimarySID_BlankClears(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	dropNo := mustAddStop(t, svc, "MAN-100", 1)
	orderID := mustAddShipment(t, svc, &models.Shipment{DropNo: dropNo})

	sidNumber := "SID-1"
	require.NoError(t, svc.SetPrimarySID(context.Background(), orderID, &sidNumber))
	got, err := svc.GetPrimarySID(context.Background(), orderID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SID-1", *got)

	blank := "   "
	require.NoError(t, svc.SetPrimarySID(context.Background(), orderID, &blank))
	got, err = svc.GetPrimarySID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteStop_CascadeOrder(t *testing.T) {
	svc, kit := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	dropNo := mustAddStop(t, svc, "MAN-100", 1)
	orderID := mustAddShipment(t, svc, &models.Shipment{DropNo: dropNo})
	_, err := svc.AddSIDs(context.Background(), orderID, []string{"SID-1"})
	require.NoError(t, err)
	_, err = svc.AddOSD(context.Background(), &models.OSD{OrderID: orderID, ReasonCode: models.OSDDamage})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStop(context.Background(), dropNo))
	assert.Equal(t, []string{"sid", "osd", "shipment_detail", "manifest_destinations"}, kit.Stops.CascadeLog)

	stops, err := svc.ListStops(context.Background(), "MAN-100")
	require.NoError(t, err)
	assert.Empty(t, stops)
	sids, err := svc.ListSIDs(context.Background(), orderID)
	require.NoError(t, err)
	assert.Empty(t, sids)
}

func TestDeleteShipment_CascadeOrder(t *testing.T) {
	svc, kit := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	dropNo := mustAddStop(t, svc, "MAN-100", 1)
	orderID := mustAddShipment(t, svc, &models.Shipment{DropNo: dropNo})
	_, err := svc.AddSIDs(context.Background(), orderID, []string{"SID-1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShipment(context.Background(), orderID))
	assert.Equal(t, []string{"sid", "osd", "shipment_detail"}, kit.Shipments.CascadeLog)

	shipments, err := svc.ListShipments(context.Background(), dropNo)
	require.NoError(t, err)
	assert.Empty(t, shipments)
}

func TestSummary(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	stop1 := mustAddStop(t, svc, "MAN-100", 1)
	stop2 := mustAddStop(t, svc, "MAN-100", 2)

	mustAddShipment(t, svc, &models.Shipment{
		DropNo: stop1, Skids: 2, Boxes: 10,
		WeightLb:      decimal.NewFromInt(100),
		DeclaredValue: decimal.NewFromInt(1000),
	})
	mustAddShipment(t, svc, &models.Shipment{
		DropNo: stop1, Skids: 1, Boxes: 5,
		WeightLb:      decimal.NewFromInt(200),
		DeclaredValue: decimal.NewFromInt(500),
		Hazmat:        true, HazmatDesc: models.HazmatFlammable,
	})
	mustAddShipment(t, svc, &models.Shipment{
		DropNo: stop2, Skids: 3, Boxes: 1,
		WeightLb:      decimal.NewFromInt(600),
		DeclaredValue: decimal.NewFromInt(250),
	})

	summary, err := svc.Summary(context.Background(), "MAN-100")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.StopCount)
	assert.Equal(t, 3, summary.ShipmentCount)
	assert.Equal(t, 1, summary.HazmatCount)
	assert.Equal(t, 6, summary.TotalSkids)
	assert.Equal(t, 16, summary.TotalBoxes)
	assert.InDelta(t, 900.0, summary.TotalWeightLb, 1e-9)
	assert.InDelta(t, 300.0, summary.MeanWeightLb, 1e-9)
	assert.InDelta(t, 200.0, summary.MedianWeightLb, 1e-9)
	assert.True(t, summary.TotalDeclaredValue.Equal(decimal.NewFromInt(1750)))
}

func TestDetail_PreservesStopOrder(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreateManifest(t, svc, "MAN-100")
	// Insert out of order; detail must come back sorted by stop order
	mustAddStop(t, svc, "MAN-100", 3)
	mustAddStop(t, svc, "MAN-100", 1)
	mustAddStop(t, svc, "MAN-100", 2)

	detail, err := svc.Detail(context.Background(), "MAN-100")
	require.NoError(t, err)
	require.Len(t, detail.Stops, 3)
	for i, stop := range detail.Stops {
		assert.Equal(t, i+1, stop.Stop.StopOrder)
	}
}

func TestDetail_UnknownManifest(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Detail(context.Background(), "NOPE")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}
