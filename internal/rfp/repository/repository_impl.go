package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/procura/internal/rfp/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rfp *domain.RFP) error {
	return r.db.WithContext(ctx).Create(rfp).Error
}

func (r *repository) ListByOrganization(ctx context.Context, orgUUID string) ([]domain.RFP, error) {
	var rfps []domain.RFP
	err := r.db.WithContext(ctx).
		Where("organization_uuid = ?", orgUUID).
		Order("created_at ASC").
		Find(&rfps).Error
	if err != nil {
		return nil, err
	}
	return rfps, nil
}

// GetByUUID scopes the lookup to the organization so an RFP can never
// be read through another tenant.
func (r *repository) GetByUUID(ctx context.Context, orgUUID, rfpUUID string) (*domain.RFP, error) {
	var rfp domain.RFP
	err := r.db.WithContext(ctx).
		Where("organization_uuid = ? AND uuid = ?", orgUUID, rfpUUID).
		First(&rfp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrRFPNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rfp, nil
}
