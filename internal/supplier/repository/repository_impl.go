package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/procura/internal/supplier/domain"
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

func (r *repository) CreateSupplier(ctx context.Context, supplier *domain.Supplier) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

func (r *repository) AddMember(ctx context.Context, member *domain.SupplierMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

// ListVisible returns suppliers in the organization the user collaborates on.
func (r *repository) ListVisible(ctx context.Context, userUUID, orgUUID string) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.db.WithContext(ctx).
		Joins("JOIN supplier_users ON supplier_users.supplier_uuid = suppliers.uuid").
		Where("supplier_users.user_uuid = ? AND suppliers.organization_uuid = ?", userUUID, orgUUID).
		Order("suppliers.created_at ASC").
		Find(&suppliers).Error
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *repository) GetVisibleByUUID(ctx context.Context, userUUID, orgUUID, supplierUUID string) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := r.db.WithContext(ctx).
		Joins("JOIN supplier_users ON supplier_users.supplier_uuid = suppliers.uuid").
		Where("supplier_users.user_uuid = ? AND suppliers.organization_uuid = ? AND suppliers.uuid = ?", userUUID, orgUUID, supplierUUID).
		First(&supplier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}
