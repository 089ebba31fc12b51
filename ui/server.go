package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcon/adapters/excel"
	"pcon/app"
	"pcon/internal"
	apperrors "pcon/internal/errors"
	"pcon/internal/session"
)

// Server is the JSON API surface of the manifest service
type Server struct {
	router   *gin.Engine
	service  *app.ManifestService
	exporter *excel.ManifestWriter
	sessions *session.Store
	log      *internal.Logger
}

// NewServer creates the API server
func NewServer(service *app.ManifestService, sessions *session.Store, logger *internal.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		router:   gin.New(),
		service:  service,
		exporter: excel.NewManifestWriter(),
		sessions: sessions,
		log:      logger,
	}
	s.router.Use(gin.Recovery(), s.requestID(), s.sessionCookie())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/manifests", s.handleCreateManifest)
	api.GET("/manifests", s.handleSearchManifests)
	api.GET("/manifests/:manifestNo", s.handleGetManifest)
	api.GET("/manifests/:manifestNo/detail", s.handleManifestDetail)
	api.GET("/manifests/:manifestNo/summary", s.handleManifestSummary)
	api.GET("/manifests/:manifestNo/export", s.handleManifestExport)
	api.GET("/manifests/:manifestNo/report", s.handleManifestReport)

	api.POST("/manifests/:manifestNo/stops", s.handleAddStop)
	api.GET("/manifests/:manifestNo/stops", s.handleListStops)
	api.DELETE("/stops/:dropNo", s.handleDeleteStop)

	api.POST("/stops/:dropNo/shipments", s.handleAddShipment)
	api.GET("/stops/:dropNo/shipments", s.handleListShipments)
	api.DELETE("/shipments/:orderID", s.handleDeleteShipment)

	api.GET("/shipments/:orderID/sids", s.handleListSIDs)
	api.POST("/shipments/:orderID/sids", s.handleAddSIDs)
	api.DELETE("/sids/:sidID", s.handleDeleteSID)
	api.GET("/shipments/:orderID/primary-sid", s.handleGetPrimarySID)
	api.PUT("/shipments/:orderID/primary-sid", s.handleSetPrimarySID)

	api.GET("/shipments/:orderID/osd", s.handleListOSDs)
	api.POST("/shipments/:orderID/osd", s.handleAddOSD)
	api.DELETE("/osd/:osdIndex", s.handleDeleteOSD)

	api.GET("/session/state", s.handleGetSessionState)
	api.PUT("/session/state", s.handleSetSessionState)
	api.POST("/session/reset", s.handleResetSession)
}

// Handler exposes the router for serving and for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// respondError maps application error codes onto HTTP statuses
func (s *Server) respondError(c *gin.Context, err error) {
	code := apperrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeValidationError, apperrors.CodeInvalidInput, apperrors.CodeInvalidCodeFormat:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeDuplicate, apperrors.CodeStoreConstraint:
		status = http.StatusConflict
	case apperrors.CodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		s.log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
	} else {
		s.log.Debug("%s %s rejected: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
