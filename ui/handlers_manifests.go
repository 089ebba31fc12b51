package ui

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pcon/internal/session"
	"pcon/models"
)

const dateLayout = "2006-01-02"

type createManifestRequest struct {
	ManifestNo     string `json:"manifest_no" binding:"required"`
	TrailerNumber  string `json:"trailer_number"`
	Seal           string `json:"seal"`
	ShipDate       string `json:"ship_date"`
	OBCarrierCode  string `json:"ob_carrier_code"`
	PARSLoadNumber string `json:"pars_load_number"`
}

func parseDate(c *gin.Context, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be formatted YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// handleCreateManifest creates a manifest and marks it current in the session
func (s *Server) handleCreateManifest(c *gin.Context) {
	var req createManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid manifest payload: " + err.Error()})
		return
	}
	shipDate, ok := parseDate(c, req.ShipDate)
	if !ok {
		return
	}

	m := &models.Manifest{
		ManifestNo:     req.ManifestNo,
		TrailerNumber:  req.TrailerNumber,
		Seal:           req.Seal,
		ShipDate:       shipDate,
		OBCarrierCode:  req.OBCarrierCode,
		PARSLoadNumber: req.PARSLoadNumber,
	}
	if err := s.service.CreateManifest(c.Request.Context(), m); err != nil {
		s.respondError(c, err)
		return
	}

	s.sessions.Set(s.sessionID(c), session.KeyCurrentManifest, m.ManifestNo)
	s.log.Info("created manifest %s", m.ManifestNo)
	c.JSON(http.StatusCreated, m)
}

// handleGetManifest returns one manifest by number
func (s *Server) handleGetManifest(c *gin.Context) {
	m, err := s.service.GetManifest(c.Request.Context(), c.Param("manifestNo"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// handleSearchManifests filters manifests by number, carrier and date range
func (s *Server) handleSearchManifests(c *gin.Context) {
	dateFrom, ok := parseDate(c, c.Query("date_from"))
	if !ok {
		return
	}
	dateTo, ok := parseDate(c, c.Query("date_to"))
	if !ok {
		return
	}
	filter := models.ManifestFilter{
		ManifestNo:  c.Query("manifest_no"),
		CarrierCode: c.Query("carrier_code"),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	}

	manifests, err := s.service.SearchManifests(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"manifests": manifests, "count": len(manifests)})
}

// handleManifestDetail returns the fully loaded manifest tree
func (s *Server) handleManifestDetail(c *gin.Context) {
	detail, err := s.service.Detail(c.Request.Context(), c.Param("manifestNo"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// handleManifestSummary returns the aggregate totals panel
func (s *Server) handleManifestSummary(c *gin.Context) {
	summary, err := s.service.Summary(c.Request.Context(), c.Param("manifestNo"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
