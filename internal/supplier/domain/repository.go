package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSupplier(ctx context.Context, supplier *Supplier) error
	AddMember(ctx context.Context, member *SupplierMember) error
	ListVisible(ctx context.Context, userUUID, orgUUID string) ([]Supplier, error)
	GetVisibleByUUID(ctx context.Context, userUUID, orgUUID, supplierUUID string) (*Supplier, error)
}
