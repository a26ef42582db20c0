package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/procura/internal/organization/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) CreateOrganization(ctx context.Context, org *domain.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *repository) AddMember(ctx context.Context, member *domain.OrganizationMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *repository) GetByUUID(ctx context.Context, orgUUID string) (*domain.Organization, error) {
	var org domain.Organization
	err := r.db.WithContext(ctx).Where("uuid = ?", orgUUID).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *repository) ListByUser(ctx context.Context, userUUID string) ([]domain.Organization, error) {
	var orgs []domain.Organization
	err := r.db.WithContext(ctx).
		Joins("JOIN organization_users ON organization_users.organization_uuid = organizations.uuid").
		Where("organization_users.user_uuid = ?", userUUID).
		Order("organizations.created_at ASC").
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}

func (r *repository) IsMember(ctx context.Context, userUUID, orgUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.OrganizationMember{}).
		Where("user_uuid = ? AND organization_uuid = ?", userUUID, orgUUID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateInvitation(ctx context.Context, invite *domain.Invitation) error {
	return r.db.WithContext(ctx).Create(invite).Error
}

func (r *repository) ListInvitations(ctx context.Context, orgUUID string) ([]domain.Invitation, error) {
	var invites []domain.Invitation
	err := r.db.WithContext(ctx).
		Where("organization_uuid = ?", orgUUID).
		Order("created_at ASC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}
