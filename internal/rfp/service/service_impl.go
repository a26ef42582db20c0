package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	orgdomain "github.com/smallbiznis/procura/internal/organization/domain"
	"github.com/smallbiznis/procura/internal/rfp/domain"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	orgs  orgdomain.Service
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, orgs orgdomain.Service, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("rfp.service"),
		repo:  repo,
		orgs:  orgs,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, userUUID string, req domain.CreateRFPRequest) (*domain.RFPResponse, error) {
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

	rfp := &domain.RFP{
		ID:               s.genID.Generate(),
		UUID:             uuid.NewString(),
		Name:             strings.TrimSpace(req.Name),
		OrganizationUUID: orgUUID,
		OwnerUUID:        userUUID,
		Data:             req.Data,
	}
	if err := s.repo.Create(ctx, rfp); err != nil {
		return nil, err
	}

	s.log.Info("rfp created",
		zap.String("rfp_uuid", rfp.UUID),
		zap.String("org_uuid", orgUUID),
	)

	return toResponse(rfp), nil
}

func (s *service) List(ctx context.Context, userUUID, orgUUID string) ([]domain.RFPResponse, error) {
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

	rfps, err := s.repo.ListByOrganization(ctx, orgUUID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.RFPResponse, 0, len(rfps))
	for i := range rfps {
		resp = append(resp, *toResponse(&rfps[i]))
	}
	return resp, nil
}

func (s *service) GetByUUID(ctx context.Context, userUUID, orgUUID, rfpUUID string) (*domain.RFPResponse, error) {
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

	rfp, err := s.repo.GetByUUID(ctx, orgUUID, strings.TrimSpace(rfpUUID))
	if err != nil {
		return nil, err
	}
	return toResponse(rfp), nil
}

func toResponse(rfp *domain.RFP) *domain.RFPResponse {
	return &domain.RFPResponse{
		UUID:             rfp.UUID,
		Name:             rfp.Name,
		OrganizationUUID: rfp.OrganizationUUID,
		OwnerUUID:        rfp.OwnerUUID,
		Data:             rfp.Data,
		CreatedAt:        rfp.CreatedAt,
	}
}
