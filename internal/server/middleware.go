package server

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/procura/internal/observability/context"
)

const contextUserUUIDKey = "user_uuid"

// AuthRequired authenticates the request from a bearer token and resolves the
// token subject to a known user before the handler runs.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userUUID, err := s.issuer.Verify(raw)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		user, err := s.authsvc.GetByUUID(c.Request.Context(), userUUID)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Set(contextUserUUIDKey, user.UUID)
		c.Request = c.Request.WithContext(obscontext.WithUserID(c.Request.Context(), user.UUID))
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// currentUserUUID returns the authenticated user set by AuthRequired.
func currentUserUUID(c *gin.Context) string {
	return c.GetString(contextUserUUIDKey)
}

// orgScope tags the request with the organization it operates on, so log
// lines and spans emitted downstream carry the org_id field.
func orgScope(c *gin.Context, orgUUID string) context.Context {
	ctx := obscontext.WithOrgID(c.Request.Context(), orgUUID)
	c.Request = c.Request.WithContext(ctx)
	return ctx
}
