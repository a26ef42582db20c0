// Package domain contains core types for the calendar integration.
package domain

import (
	"context"
	"encoding/json"
	"errors"
)

type Service interface {
	AuthURL(ctx context.Context, userUUID string) (string, error)
	HandleCallback(ctx context.Context, state, code string) error
	Events(ctx context.Context, userUUID string) ([]Event, error)
}

// Event is a calendar entry as returned by the provider. The payload is
// passed through untouched.
type Event = json.RawMessage

var (
	ErrNotConfigured = errors.New("calendar integration not configured")
	ErrInvalidState  = errors.New("invalid oauth state")
	ErrMissingCode   = errors.New("missing authorization code")
	ErrNotConnected  = errors.New("calendar not connected")
)
