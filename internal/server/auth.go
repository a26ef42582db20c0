package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/procura/internal/auth/domain"
)

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

// newTokenResponse builds the wire shape for an issued token. expires_in is
// the configured lifetime in seconds, the unit OAuth2 clients expect.
func (s *Server) newTokenResponse(accessToken, tokenType string, expiresAt time.Time) tokenResponse {
	return tokenResponse{
		AccessToken: accessToken,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		ExpiresIn:   int64(s.issuer.TTL().Seconds()),
	}
}

type loginResponse struct {
	tokenResponse
	User *authdomain.UserResponse `json:"user"`
}

func (s *Server) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if _, err := s.authsvc.Register(c.Request.Context(), authdomain.RegisterRequest{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	// Log the new user in so registration hands back a usable token.
	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loginResponse{
		tokenResponse: s.newTokenResponse(result.AccessToken, result.TokenType, result.ExpiresAt),
		User:          result.User,
	})
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		tokenResponse: s.newTokenResponse(result.AccessToken, result.TokenType, result.ExpiresAt),
		User:          result.User,
	})
}

// Token implements the OAuth2 password grant shape so CLI and API clients can
// exchange form-encoded credentials for a bearer token.
func (s *Server) Token(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		AbortWithError(c, authdomain.ErrInvalidCredentials)
		return
	}

	result, err := s.authsvc.Login(c.Request.Context(), authdomain.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.newTokenResponse(result.AccessToken, result.TokenType, result.ExpiresAt))
}

func (s *Server) CurrentUser(c *gin.Context) {
	user, err := s.authsvc.GetByUUID(c.Request.Context(), currentUserUUID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.PublicView())
}

// RefreshProfile returns the caller's profile together with a fresh token so
// clients can extend a session that is close to expiry.
func (s *Server) RefreshProfile(c *gin.Context) {
	user, err := s.authsvc.GetByUUID(c.Request.Context(), currentUserUUID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	raw, expiresAt, err := s.issuer.Issue(user.UUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		tokenResponse: s.newTokenResponse(raw, "bearer", expiresAt),
		User:          user.PublicView(),
	})
}

type setActiveTeamRequest struct {
	OrganizationUUID string `json:"organization_uuid"`
}

// SetActiveTeam switches the caller's active organization. Membership is
// checked first so a user cannot activate an organization they never joined.
func (s *Server) SetActiveTeam(c *gin.Context) {
	var req setActiveTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	userUUID := currentUserUUID(c)
	if req.OrganizationUUID != "" {
		ok, err := s.organizationSvc.IsMember(orgScope(c, req.OrganizationUUID), userUUID, req.OrganizationUUID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if !ok {
			AbortWithError(c, ErrForbidden)
			return
		}
	}

	if err := s.authsvc.SetActiveOrganization(c.Request.Context(), userUUID, req.OrganizationUUID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "active organization updated"})
}
