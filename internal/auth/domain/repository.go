package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByUUID(ctx context.Context, userUUID string) (*User, error)
	SetActiveOrganization(ctx context.Context, userUUID string, orgUUID *string) error
}
