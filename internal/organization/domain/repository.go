package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrganization(ctx context.Context, org *Organization) error
	AddMember(ctx context.Context, member *OrganizationMember) error
	GetByUUID(ctx context.Context, orgUUID string) (*Organization, error)
	ListByUser(ctx context.Context, userUUID string) ([]Organization, error)
	IsMember(ctx context.Context, userUUID, orgUUID string) (bool, error)
	CreateInvitation(ctx context.Context, invite *Invitation) error
	ListInvitations(ctx context.Context, orgUUID string) ([]Invitation, error)
}
