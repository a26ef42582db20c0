package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	rfpdomain "github.com/smallbiznis/procura/internal/rfp/domain"
)

func (s *Server) CreateRFP(c *gin.Context) {
	var req rfpdomain.CreateRFPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := orgScope(c, req.OrganizationUUID)
	created, err := s.rfpSvc.Create(ctx, currentUserUUID(c), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) ListRFPs(c *gin.Context) {
	orgUUID := strings.TrimSpace(c.Query("organization_uuid"))
	if orgUUID == "" {
		AbortWithError(c, rfpdomain.ErrInvalidOrganization)
		return
	}

	rfps, err := s.rfpSvc.List(orgScope(c, orgUUID), currentUserUUID(c), orgUUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, rfps)
}

func (s *Server) GetRFP(c *gin.Context) {
	orgUUID := strings.TrimSpace(c.Query("organization_uuid"))
	if orgUUID == "" {
		AbortWithError(c, rfpdomain.ErrInvalidOrganization)
		return
	}

	found, err := s.rfpSvc.GetByUUID(orgScope(c, orgUUID), currentUserUUID(c), orgUUID, c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, found)
}
