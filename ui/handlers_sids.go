package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addSIDsRequest struct {
	SIDNumbers []string `json:"sid_numbers" binding:"required"`
}

type primarySIDRequest struct {
	SIDNumber *string `json:"sid_number"`
}

// handleListSIDs returns a shipment's secondary shipping identifiers
func (s *Server) handleListSIDs(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	sids, err := s.service.ListSIDs(c.Request.Context(), orderID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sids": sids, "count": len(sids)})
}

// handleAddSIDs records any SID numbers the shipment does not already carry
func (s *Server) handleAddSIDs(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	var req addSIDsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid SID payload: " + err.Error()})
		return
	}
	added, err := s.service.AddSIDs(c.Request.Context(), orderID, req.SIDNumbers)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.log.Info("added %d SIDs to shipment %s", added, orderID)
	c.JSON(http.StatusCreated, gin.H{"added": added})
}

// handleDeleteSID removes a single SID row
func (s *Server) handleDeleteSID(c *gin.Context) {
	sidID, ok := s.pathCode(c, "sidID")
	if !ok {
		return
	}
	if err := s.service.DeleteSID(c.Request.Context(), sidID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleGetPrimarySID reads the primary SID off the shipment row
func (s *Server) handleGetPrimarySID(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	sid, err := s.service.GetPrimarySID(c.Request.Context(), orderID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sid_number": sid})
}

// handleSetPrimarySID writes the primary SID; null or blank clears it
func (s *Server) handleSetPrimarySID(c *gin.Context) {
	orderID, ok := s.pathCode(c, "orderID")
	if !ok {
		return
	}
	var req primarySIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid primary SID payload: " + err.Error()})
		return
	}
	if err := s.service.SetPrimarySID(c.Request.Context(), orderID, req.SIDNumber); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
