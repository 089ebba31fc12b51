package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcon/internal/session"
)

type sessionStateRequest struct {
	Mode            *string `json:"mode"`
	CurrentManifest *string `json:"current_manifest_no"`
	CurrentStop     *string `json:"current_stop_drop_no"`
}

// handleGetSessionState returns the session's working state bag
func (s *Server) handleGetSessionState(c *gin.Context) {
	id := s.sessionID(c)
	state := gin.H{}
	for _, key := range []string{session.KeyMode, session.KeyCurrentManifest, session.KeyCurrentStop} {
		if val, ok := s.sessions.Get(id, key); ok {
			state[key] = val
		}
	}
	c.JSON(http.StatusOK, state)
}

// handleSetSessionState updates the supplied working-state fields. An empty
// string clears the field, matching the legacy toggle behavior.
func (s *Server) handleSetSessionState(c *gin.Context) {
	var req sessionStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session state payload"})
		return
	}
	id := s.sessionID(c)

	if req.Mode != nil {
		if *req.Mode != session.ModeCreate && *req.Mode != session.ModeRetrieve {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown mode " + *req.Mode})
			return
		}
		s.sessions.Set(id, session.KeyMode, *req.Mode)
	}
	setOrDelete := func(key string, val *string) {
		if val == nil {
			return
		}
		if *val == "" {
			s.sessions.Delete(id, key)
		} else {
			s.sessions.Set(id, key, *val)
		}
	}
	setOrDelete(session.KeyCurrentManifest, req.CurrentManifest)
	setOrDelete(session.KeyCurrentStop, req.CurrentStop)

	s.handleGetSessionState(c)
}

// handleResetSession clears the working state back to create mode
// ("save manifest & reset" in the entry screens)
func (s *Server) handleResetSession(c *gin.Context) {
	s.sessions.Reset(s.sessionID(c))
	s.handleGetSessionState(c)
}
