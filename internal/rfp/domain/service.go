package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
)

type Service interface {
	Create(ctx context.Context, userUUID string, req CreateRFPRequest) (*RFPResponse, error)
	List(ctx context.Context, userUUID, orgUUID string) ([]RFPResponse, error)
	GetByUUID(ctx context.Context, userUUID, orgUUID, rfpUUID string) (*RFPResponse, error)
}

type CreateRFPRequest struct {
	Name             string         `json:"name"`
	OrganizationUUID string         `json:"organization_uuid"`
	Data             datatypes.JSON `json:"data"`
}

type RFPResponse struct {
	UUID             string         `json:"uuid"`
	Name             string         `json:"name"`
	OrganizationUUID string         `json:"organization_uuid"`
	OwnerUUID        string         `json:"owner_uuid"`
	Data             datatypes.JSON `json:"data"`
	CreatedAt        time.Time      `json:"created_at"`
}

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrRFPNotFound         = errors.New("rfp not found")
	ErrForbidden           = errors.New("forbidden")
)
