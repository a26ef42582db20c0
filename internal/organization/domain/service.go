package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	Create(ctx context.Context, userUUID string, req CreateOrganizationRequest) (*OrganizationResponse, error)
	GetByUUID(ctx context.Context, userUUID, orgUUID string) (*OrganizationResponse, error)
	ListByUser(ctx context.Context, userUUID string) ([]OrganizationResponse, error)
	IsMember(ctx context.Context, userUUID, orgUUID string) (bool, error)
	Invite(ctx context.Context, userUUID, orgUUID string, req InviteRequest) ([]InvitationResponse, error)
	ListInvitations(ctx context.Context, userUUID, orgUUID string) ([]InvitationResponse, error)
}

type CreateOrganizationRequest struct {
	Name string
}

type InviteRequest struct {
	Emails []string
}

type OrganizationResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	OwnerUUID string    `json:"owner_uuid"`
	CreatedAt time.Time `json:"created_at"`
}

type InvitationResponse struct {
	Email            string    `json:"email"`
	OrganizationUUID string    `json:"organization_uuid"`
	Status           string    `json:"status"`
	OwnerUUID        string    `json:"owner_uuid"`
	CreatedAt        time.Time `json:"created_at"`
}

var (
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidUser          = errors.New("invalid_user")
	ErrInvalidEmail         = errors.New("invalid_email")
	ErrInvalidOrganization  = errors.New("invalid_organization")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrForbidden            = errors.New("forbidden")
)
