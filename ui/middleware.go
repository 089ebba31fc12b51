package ui

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader  = "X-Request-ID"
	sessionCookieKey = "pcon_session"

	// gin context keys
	ctxRequestID = "request_id"
	ctxSessionID = "session_id"
)

// requestID tags every request with an id for log correlation, honoring a
// caller-supplied X-Request-ID
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// sessionCookie attaches the UI working-state session, opening a fresh one
// when the cookie is missing
func (s *Server) sessionCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookieKey)
		if err != nil || id == "" {
			id = s.sessions.Open()
			c.SetCookie(sessionCookieKey, id, 0, "/", "", false, true)
		}
		c.Set(ctxSessionID, id)
		c.Next()
	}
}

func (s *Server) sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
