package domain

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, rfp *RFP) error
	ListByOrganization(ctx context.Context, orgUUID string) ([]RFP, error)
	GetByUUID(ctx context.Context, orgUUID, rfpUUID string) (*RFP, error)
}
