package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcon/domain/code"
	"pcon/internal/session"
	"pcon/models"
)

type addStopRequest struct {
	StopOrder       int    `json:"stop_order"`
	CodeDestination string `json:"code_destination"`
	ShipVia         string `json:"shipvia"`
}

// pathCode validates a code-typed path parameter, answering 400 on bad format
func (s *Server) pathCode(c *gin.Context, param string) (code.Code, bool) {
	parsed, err := code.Parse(c.Param(param))
	if err != nil {
		s.respondError(c, err)
		return "", false
	}
	return parsed, true
}

// handleAddStop allocates a drop number and adds the stop to the manifest
func (s *Server) handleAddStop(c *gin.Context) {
	var req addStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stop payload: " + err.Error()})
		return
	}
	stop := &models.Stop{
		ManifestNo:      c.Param("manifestNo"),
		StopOrder:       req.StopOrder,
		CodeDestination: req.CodeDestination,
		ShipVia:         req.ShipVia,
	}
	dropNo, err := s.service.AddStop(c.Request.Context(), stop)
	if err != nil {
		s.respondError(c, err)
		return
	}

	s.sessions.Set(s.sessionID(c), session.KeyCurrentStop, dropNo.String())
	s.log.Info("added stop %s to manifest %s", dropNo, stop.ManifestNo)
	c.JSON(http.StatusCreated, stop)
}

// handleListStops returns a manifest's stops in stop order
func (s *Server) handleListStops(c *gin.Context) {
	stops, err := s.service.ListStops(c.Request.Context(), c.Param("manifestNo"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops, "count": len(stops)})
}

// handleDeleteStop cascades the delete through SIDs, OSDs and shipments
func (s *Server) handleDeleteStop(c *gin.Context) {
	dropNo, ok := s.pathCode(c, "dropNo")
	if !ok {
		return
	}
	if err := s.service.DeleteStop(c.Request.Context(), dropNo); err != nil {
		s.respondError(c, err)
		return
	}
	s.log.Info("deleted stop %s", dropNo)
	c.Status(http.StatusNoContent)
}
