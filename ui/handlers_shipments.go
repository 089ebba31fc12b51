package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pcon/models"
)

type addShipmentRequest struct {
	VendorCode    string          `json:"vendorcode"`
	BOLNo         string          `json:"bol_no"`
	PRONo         string          `json:"pro_no"`
	PONumber      string          `json:"po_number"`
	IBCarrierCode string          `json:"ib_carrier_code"`
	Skids         int             `json:"skids"`
	Boxes         int             `json:"boxes"`
	WeightLb      decimal.Decimal `json:"weight_lb"`
	DeclaredValue decimal.Decimal `json:"declared_value"`
	Notes         string          `json:"notes"`
	Hazmat        bool            `json:"hazmat"`
	HazmatDesc    string          `json:"hazmat_description"`
}

// handleAddShipment allocates an order id and records the shipment on a stop
func (s *Server) handleAddShipment(c *gin.Context) {
	dropNo, ok := s.pathCode(c, "dropNo")
	if !ok {
		return
	}
	var req addShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipment payload: " + err.Error()})
		return
	}

	sh := &models.Shipment{
		DropNo:        dropNo,
		VendorCode:    req.VendorCode,
		BOLNo:         req.BOLNo,
		PRONo:         req.PRONo,
		PONumber:      req.PONumber,
		IBCarrierCode: req.IBCarrierCode,
		Skids:         req.Skids,
		Boxes:         req.Boxes,
		WeightLb:      req.WeightLb,
		DeclaredValue: req.DeclaredValue,
		Notes:         req.Notes,
		Hazmat:        req.Hazmat,
		HazmatDesc:    models.HazmatClass(req.HazmatDesc),
	}
	orderID, err := s.service.AddShipment(c.Request.Context(), sh)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.log.Info("added shipment %s to stop %s", orderID, dropNo)
	c.JSON(http.StatusCreated, sh)
}

// handleListShipments returns the shipments recorded against a stop
func (s *Server) handleListShipments(c *gin.Context) {
	dropNo, ok := s.pathCode(c, "dropNo")
	if !ok {
		return
	}
	shipments, err := s.service.ListShipments(c.Request.Context(), dropNo)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipments": shipments, "count": len(shipments)})
}

// handleDeleteShipment cascades the delete through SIDs and OSDs
func (s *Server) handleDeleteShipment(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	if err := s.service.DeleteShipment(c.Request.Context(), orderID); err != nil {
		s.respondError(c, err)
		return
	}
	s.log.Info("deleted shipment %s", orderID)
	c.Status(http.StatusNoContent)
}
