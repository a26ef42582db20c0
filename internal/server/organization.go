package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	organizationdomain "github.com/smallbiznis/procura/internal/organization/domain"
)

type createOrganizationRequest struct {
	Name string `json:"name"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	org, err := s.organizationSvc.Create(c.Request.Context(), currentUserUUID(c), organizationdomain.CreateOrganizationRequest{
		Name: req.Name,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

func (s *Server) ListOrganizations(c *gin.Context) {
	orgs, err := s.organizationSvc.ListByUser(c.Request.Context(), currentUserUUID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, orgs)
}

func (s *Server) GetOrganization(c *gin.Context) {
	org, err := s.organizationSvc.GetByUUID(orgScope(c, c.Param("uuid")), currentUserUUID(c), c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, org)
}

type inviteEntry struct {
	Email string `json:"email"`
}

type inviteRequest struct {
	Invites []inviteEntry `json:"invites"`
}

func (s *Server) InviteToOrganization(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if len(req.Invites) == 0 {
		AbortWithError(c, organizationdomain.ErrInvalidEmail)
		return
	}

	emails := make([]string, 0, len(req.Invites))
	for _, invite := range req.Invites {
		emails = append(emails, invite.Email)
	}

	orgUUID := c.Param("uuid")
	if _, err := s.organizationSvc.Invite(orgScope(c, orgUUID), currentUserUUID(c), orgUUID, organizationdomain.InviteRequest{
		Emails: emails,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) ListInvitations(c *gin.Context) {
	invitations, err := s.organizationSvc.ListInvitations(orgScope(c, c.Param("uuid")), currentUserUUID(c), c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, invitations)
}
