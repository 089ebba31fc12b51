package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	apperrors "pcon/internal/errors"
	"pcon/models"
)

// ManifestWriter renders a loaded manifest tree to an xlsx workbook:
// one summary row block, then a sheet-wide table of stops and shipments.
type ManifestWriter struct{}

// NewManifestWriter creates a manifest spreadsheet writer
func NewManifestWriter() *ManifestWriter {
	return &ManifestWriter{}
}

var shipmentHeader = []string{
	"Stop Order", "Drop No", "Destination", "Ship Via",
	"Order ID", "Vendor Code", "Primary SID", "BOL Number", "PRO Number", "PO Number",
	"Inbound Carrier", "Skids", "Boxes", "Weight (lb)", "Declared Value", "Hazmat", "Hazmat Class", "Notes",
}

// Write renders the manifest detail into w as an xlsx workbook
func (mw *ManifestWriter) Write(detail *models.ManifestDetail, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Manifest"
	f.SetSheetName("Sheet1", sheet)

	m := detail.Manifest
	shipDate := ""
	if m.ShipDate != nil {
		shipDate = m.ShipDate.Format("2006-01-02")
	}
	headerRows := [][]interface{}{
		{"Manifest No", m.ManifestNo},
		{"Trailer Number", m.TrailerNumber},
		{"Seal", m.Seal},
		{"Ship Date", shipDate},
		{"Outbound Carrier", m.OBCarrierCode},
		{"PARS Load Number", m.PARSLoadNumber},
	}
	row := 1
	for _, pair := range headerRows {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &pair); err != nil {
			return apperrors.Wrap(err, "failed to write manifest header")
		}
		row++
	}

	row++ // blank separator
	cell, _ := excelize.CoordinatesToCellName(1, row)
	header := make([]interface{}, len(shipmentHeader))
	for i, h := range shipmentHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return apperrors.Wrap(err, "failed to write shipment header")
	}
	row++

	for _, stop := range detail.Stops {
		if len(stop.Shipments) == 0 {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{stop.Stop.StopOrder, stop.Stop.DropNo.String(), stop.Stop.CodeDestination, stop.Stop.ShipVia}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return apperrors.Wrap(err, "failed to write stop row")
			}
			row++
			continue
		}
		for _, sh := range stop.Shipments {
			primarySID := ""
			if sh.SID != nil {
				primarySID = *sh.SID
			}
			hazmat := "No"
			if sh.Hazmat {
				hazmat = "Yes"
			}
			values := []interface{}{
				stop.Stop.StopOrder, stop.Stop.DropNo.String(), stop.Stop.CodeDestination, stop.Stop.ShipVia,
				sh.OrderID.String(), sh.VendorCode, primarySID, sh.BOLNo, sh.PRONo, sh.PONumber,
				sh.IBCarrierCode, sh.Skids, sh.Boxes, sh.WeightLb.InexactFloat64(),
				sh.DeclaredValue.InexactFloat64(), hazmat, string(sh.HazmatDesc), sh.Notes,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return apperrors.Wrap(err, fmt.Sprintf("failed to write shipment row for order %s", sh.OrderID))
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return apperrors.Wrap(err, "failed to write workbook")
	}
	return nil
}
