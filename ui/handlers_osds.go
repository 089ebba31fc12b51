package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcon/models"
)

type addOSDRequest struct {
	ReasonCode      string  `json:"reason_code" binding:"required"`
	PalletsBilled   int     `json:"pallets_billed"`
	BoxesBilled     int     `json:"boxes_billed"`
	PalletsReceived int     `json:"pallets_received"`
	BoxesReceived   int     `json:"boxes_received"`
	Comments        *string `json:"comments"`
}

// handleListOSDs returns a shipment's overage/shortage/damage rows
func (s *Server) handleListOSDs(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	rows, err := s.service.ListOSDs(c.Request.Context(), orderID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"osd": rows, "count": len(rows)})
}

// handleAddOSD allocates an OSD index and records the exception
func (s *Server) handleAddOSD(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	var req addOSDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid OSD payload: " + err.Error()})
		return
	}
	o := &models.OSD{
		OrderID:         orderID,
		ReasonCode:      models.OSDReason(req.ReasonCode),
		PalletsBilled:   req.PalletsBilled,
		BoxesBilled:     req.BoxesBilled,
		PalletsReceived: req.PalletsReceived,
		BoxesReceived:   req.BoxesReceived,
		Comments:        req.Comments,
	}
	osdIndex, err := s.service.AddOSD(c.Request.Context(), o)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.log.Info("added OSD %s to shipment %s", osdIndex, orderID)
	c.JSON(http.StatusCreated, o)
}

// handleDeleteOSD removes a single OSD row
func (s *Server) handleDeleteOSD(c *gin.Context) {
	osdIndex, ok := s.pathCode(c, "osdIndex")
	if !ok {
		return
	}
	if err := s.service.DeleteOSD(c.Request.Context(), osdIndex); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
