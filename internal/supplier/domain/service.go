package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
)

type Service interface {
	Create(ctx context.Context, userUUID string, req CreateSupplierRequest) (*SupplierResponse, error)
	List(ctx context.Context, userUUID, orgUUID string) ([]SupplierResponse, error)
	GetByUUID(ctx context.Context, userUUID, orgUUID, supplierUUID string) (*SupplierResponse, error)
}

type CreateSupplierRequest struct {
	Name             string         `json:"name"`
	OrganizationUUID string         `json:"organization_uuid"`
	LogoURL          string         `json:"logo_url"`
	Data             datatypes.JSON `json:"data"`
}

type SupplierResponse struct {
	UUID             string         `json:"uuid"`
	Name             string         `json:"name"`
	OrganizationUUID string         `json:"organization_uuid"`
	OwnerUUID        string         `json:"owner_uuid"`
	LogoURL          string         `json:"logo_url"`
	Data             datatypes.JSON `json:"data"`
	CreatedAt        time.Time      `json:"created_at"`
}

var (
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrForbidden           = errors.New("forbidden")
)
