package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/procura/internal/organization/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	log   *zap.Logger
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, db *gorm.DB, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("organization.service"),
		db:    db,
		repo:  repo,
		genID: genID,
	}
}

// Create inserts the organization and enrolls the creator as its first
// member in a single transaction.
func (s *service) Create(ctx context.Context, userUUID string, req domain.CreateOrganizationRequest) (*domain.OrganizationResponse, error) {
	if strings.TrimSpace(userUUID) == "" {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	org := &domain.Organization{
		ID:        s.genID.Generate(),
		UUID:      uuid.NewString(),
		Name:      name,
		OwnerUUID: userUUID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateOrganization(ctx, org); err != nil {
			return err
		}

		member := &domain.OrganizationMember{
			ID:               s.genID.Generate(),
			UserUUID:         userUUID,
			OrganizationUUID: org.UUID,
		}
		return repo.AddMember(ctx, member)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("organization created",
		zap.String("org_uuid", org.UUID),
		zap.String("owner_uuid", userUUID),
	)

	return toResponse(org), nil
}

func (s *service) GetByUUID(ctx context.Context, userUUID, orgUUID string) (*domain.OrganizationResponse, error) {
	orgUUID = strings.TrimSpace(orgUUID)
	if orgUUID == "" {
		return nil, domain.ErrInvalidOrganization
	}

	member, err := s.repo.IsMember(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	org, err := s.repo.GetByUUID(ctx, orgUUID)
	if err != nil {
		return nil, err
	}
	return toResponse(org), nil
}

func (s *service) ListByUser(ctx context.Context, userUUID string) ([]domain.OrganizationResponse, error) {
	if strings.TrimSpace(userUUID) == "" {
		return nil, domain.ErrInvalidUser
	}

	orgs, err := s.repo.ListByUser(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.OrganizationResponse, 0, len(orgs))
	for i := range orgs {
		resp = append(resp, *toResponse(&orgs[i]))
	}
	return resp, nil
}

func (s *service) IsMember(ctx context.Context, userUUID, orgUUID string) (bool, error) {
	if strings.TrimSpace(userUUID) == "" || strings.TrimSpace(orgUUID) == "" {
		return false, nil
	}
	return s.repo.IsMember(ctx, userUUID, orgUUID)
}

// Invite records pending invitations for every address in the batch. All
// emails are validated before anything is written, and the inserts share one
// transaction, so a rejected batch leaves no invitations behind.
func (s *service) Invite(ctx context.Context, userUUID, orgUUID string, req domain.InviteRequest) ([]domain.InvitationResponse, error) {
	if len(req.Emails) == 0 {
		return nil, domain.ErrInvalidEmail
	}

	emails := make([]string, 0, len(req.Emails))
	for _, raw := range req.Emails {
		email := strings.ToLower(strings.TrimSpace(raw))
		if email == "" {
			return nil, domain.ErrInvalidEmail
		}
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, domain.ErrInvalidEmail
		}
		emails = append(emails, email)
	}

	member, err := s.repo.IsMember(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	invites := make([]*domain.Invitation, 0, len(emails))
	for _, email := range emails {
		invites = append(invites, &domain.Invitation{
			ID:               s.genID.Generate(),
			Email:            email,
			OrganizationUUID: orgUUID,
			Status:           domain.InviteStatusPending,
			OwnerUUID:        userUUID,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, invite := range invites {
			if err := repo.CreateInvitation(ctx, invite); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := make([]domain.InvitationResponse, 0, len(invites))
	for _, invite := range invites {
		resp = append(resp, *toInviteResponse(invite))
	}
	return resp, nil
}

func (s *service) ListInvitations(ctx context.Context, userUUID, orgUUID string) ([]domain.InvitationResponse, error) {
	member, err := s.repo.IsMember(ctx, userUUID, orgUUID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	invites, err := s.repo.ListInvitations(ctx, orgUUID)
	if err != nil {
		return nil, err
	}

	resp := make([]domain.InvitationResponse, 0, len(invites))
	for i := range invites {
		resp = append(resp, *toInviteResponse(&invites[i]))
	}
	return resp, nil
}

func toResponse(org *domain.Organization) *domain.OrganizationResponse {
	return &domain.OrganizationResponse{
		UUID:      org.UUID,
		Name:      org.Name,
		OwnerUUID: org.OwnerUUID,
		CreatedAt: org.CreatedAt,
	}
}

func toInviteResponse(invite *domain.Invitation) *domain.InvitationResponse {
	return &domain.InvitationResponse{
		Email:            invite.Email,
		OrganizationUUID: invite.OrganizationUUID,
		Status:           invite.Status,
		OwnerUUID:        invite.OwnerUUID,
		CreatedAt:        invite.CreatedAt,
	}
}
