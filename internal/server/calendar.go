package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GoogleLogin starts the Google Calendar consent flow for the authenticated
// user. The OAuth state carries the user identity so the callback can finish
// the flow without a session.
func (s *Server) GoogleLogin(c *gin.Context) {
	url, err := s.calendarSvc.AuthURL(c.Request.Context(), currentUserUUID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, url)
}

func (s *Server) GoogleCallback(c *gin.Context) {
	if err := s.calendarSvc.HandleCallback(c.Request.Context(), c.Query("state"), c.Query("code")); err != nil {
		AbortWithError(c, err)
		return
	}

	if s.cfg.FrontendBaseURL != "" {
		c.Redirect(http.StatusFound, s.cfg.FrontendBaseURL)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "calendar connected"})
}

func (s *Server) ListCalendarEvents(c *gin.Context) {
	events, err := s.calendarSvc.Events(c.Request.Context(), currentUserUUID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
