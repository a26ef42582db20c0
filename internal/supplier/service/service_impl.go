package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	orgdomain "github.com/smallbiznis/procura/internal/organization/domain"
	"github.com/smallbiznis/procura/internal/supplier/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	log   *zap.Logger
	db    *gorm.DB
	repo  domain.Repository
	orgs  orgdomain.Service
	genID *snowflake.Node
}

func NewService(log *zap.Logger, db *gorm.DB, repo domain.Repository, orgs orgdomain.Service, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("supplier.service"),
		db:    db,
		repo:  repo,
		orgs:  orgs,
		genID: genID,
	}
}

// Create inserts the supplier and enrolls the creator as its first
// collaborator in a single transaction.
func (s *service) Create(ctx context.Context, userUUID string, req domain.CreateSupplierRequest) (*domain.SupplierResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	orgUUID := strings.TrimSpace(req.OrganizationUUID)
	if orgUUID == "" {
		return nil, domain.ErrInvalidOrganization
	}

	member, err := s.orgs.IsMember(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	supplier := &domain.Supplier{
		ID:               s.genID.Generate(),
		UUID:             uuid.NewString(),
		Name:             name,
		OrganizationUUID: orgUUID,
		OwnerUUID:        userUUID,
		LogoURL:          strings.TrimSpace(req.LogoURL),
		Data:             req.Data,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateSupplier(ctx, supplier); err != nil {
			return err
		}

		collaborator := &domain.SupplierMember{
			ID:           s.genID.Generate(),
			UserUUID:     userUUID,
			SupplierUUID: supplier.UUID,
		}
		return repo.AddMember(ctx, collaborator)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("supplier created",
		zap.String("supplier_uuid", supplier.UUID),
		zap.String("org_uuid", orgUUID),
	)

	return toResponse(supplier), nil
}

func (s *service) List(ctx context.Context, userUUID, orgUUID string) ([]domain.SupplierResponse, error) {
	orgUUID = strings.TrimSpace(orgUUID)
	if orgUUID == "" {
		return nil, domain.ErrInvalidOrganization
	}

	member, err := s.orgs.IsMember(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	suppliers, err := s.repo.ListVisible(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		resp = append(resp, *toResponse(&suppliers[i]))
	}
	return resp, nil
}

func (s *service) GetByUUID(ctx context.Context, userUUID, orgUUID, supplierUUID string) (*domain.SupplierResponse, error) {
	orgUUID = strings.TrimSpace(orgUUID)
	if orgUUID == "" {
		return nil, domain.ErrInvalidOrganization
	}

	member, err := s.orgs.IsMember(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	supplier, err := s.repo.GetVisibleByUUID(ctx, userUUID, orgUUID, strings.TrimSpace(supplierUUID))
	if err != nil {
		return nil, err
	}
	return toResponse(supplier), nil
}

func toResponse(supplier *domain.Supplier) *domain.SupplierResponse {
	return &domain.SupplierResponse{
		UUID:             supplier.UUID,
		Name:             supplier.Name,
		OrganizationUUID: supplier.OrganizationUUID,
		OwnerUUID:        supplier.OwnerUUID,
		LogoURL:          supplier.LogoURL,
		Data:             supplier.Data,
		CreatedAt:        supplier.CreatedAt,
	}
}
