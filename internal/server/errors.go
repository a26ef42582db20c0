package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/procura/internal/auth/domain"
	"github.com/smallbiznis/procura/internal/auth/token"
	calendardomain "github.com/smallbiznis/procura/internal/calendar/domain"
	organizationdomain "github.com/smallbiznis/procura/internal/organization/domain"
	rfpdomain "github.com/smallbiznis/procura/internal/rfp/domain"
	supplierdomain "github.com/smallbiznis/procura/internal/supplier/domain"
	"gorm.io/gorm"
)

// ValidationError describes a single invalid field in a request payload.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates per-field validation failures into one error.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(v))
	for _, item := range v {
		parts = append(parts, item.Field+": "+item.Message)
	}
	return strings.Join(parts, "; ")
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidRequest     = errors.New("invalid request")
	ErrInternal           = errors.New("internal error")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// ErrorHandlingMiddleware converts errors recorded on the gin context into a
// single JSON error body. Handlers report failures with AbortWithError and
// never write error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		if last == nil {
			return
		}

		status, payload := mapError(last.Err)
		c.JSON(status, errorResponse{Error: payload})
	}
}

// AbortWithError records err on the context and stops the handler chain. The
// response body is written later by ErrorHandlingMiddleware.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "request validation failed",
			Errors:  validationErrs,
		}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, token.ErrTokenExpired),
		errors.Is(err, token.ErrTokenMalformed),
		errors.Is(err, token.ErrTokenMissingSubject),
		errors.Is(err, calendardomain.ErrNotConnected),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "authentication required",
		}
	case errors.Is(err, organizationdomain.ErrForbidden),
		errors.Is(err, supplierdomain.ErrForbidden),
		errors.Is(err, rfpdomain.ErrForbidden),
		errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "you do not have access to this resource",
		}
	case errors.Is(err, authdomain.ErrUserExists),
		errors.Is(err, ErrConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isValidationSentinel(err), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "request validation failed",
			Errors: []ValidationError{{
				Field:   validationField(err),
				Message: err.Error(),
			}},
		}
	case errors.Is(err, calendardomain.ErrNotConfigured),
		errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "something went wrong",
		}
	}
}

func isNotFoundError(err error) bool {
	return errors.Is(err, authdomain.ErrUserNotFound) ||
		errors.Is(err, organizationdomain.ErrOrganizationNotFound) ||
		errors.Is(err, supplierdomain.ErrSupplierNotFound) ||
		errors.Is(err, rfpdomain.ErrRFPNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound) ||
		errors.Is(err, ErrNotFound)
}

func isValidationSentinel(err error) bool {
	switch {
	case errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrInvalidPassword),
		errors.Is(err, organizationdomain.ErrInvalidName),
		errors.Is(err, organizationdomain.ErrInvalidEmail),
		errors.Is(err, organizationdomain.ErrInvalidUser),
		errors.Is(err, organizationdomain.ErrInvalidOrganization),
		errors.Is(err, supplierdomain.ErrInvalidName),
		errors.Is(err, supplierdomain.ErrInvalidOrganization),
		errors.Is(err, rfpdomain.ErrInvalidOrganization),
		errors.Is(err, calendardomain.ErrInvalidState),
		errors.Is(err, calendardomain.ErrMissingCode):
		return true
	}
	return false
}

// validationField derives a field name from sentinel errors that follow the
// "invalid_<field>" naming convention.
func validationField(err error) string {
	msg := err.Error()
	if strings.HasPrefix(msg, "invalid_") {
		return strings.TrimPrefix(msg, "invalid_")
	}
	if strings.HasPrefix(msg, "invalid ") {
		return strings.ReplaceAll(strings.TrimPrefix(msg, "invalid "), " ", "_")
	}
	return "request"
}

// classifyErrorForLog maps handler errors to (type, code) labels for request
// logs so operational noise stays distinguishable from real failures.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	if status >= http.StatusInternalServerError {
		return "server_error", payload.Type
	}
	return "client_error", payload.Type
}
