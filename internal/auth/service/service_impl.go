package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/procura/internal/auth/domain"
	"github.com/smallbiznis/procura/internal/auth/password"
	"github.com/smallbiznis/procura/internal/auth/token"
	"github.com/smallbiznis/procura/pkg/db"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type Service struct {
	log    *zap.Logger
	repo   domain.Repository
	issuer *token.Issuer
	genID  *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, issuer *token.Issuer, genID *snowflake.Node) domain.Service {
	return &Service{
		log:    log.Named("auth.service"),
		repo:   repo,
		issuer: issuer,
		genID:  genID,
	}
}

func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidEmail
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return nil, domain.ErrInvalidPassword
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             s.genID.Generate(),
		UUID:           uuid.NewString(),
		Email:          email,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		HashedPassword: hashed,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_uuid", user.UUID))
	return user.PublicView(), nil
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !password.Verify(req.Password, user.HashedPassword) {
		return nil, domain.ErrInvalidCredentials
	}

	raw, expiresAt, err := s.issuer.Issue(user.UUID)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		AccessToken: raw,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user.PublicView(),
	}, nil
}

func (s *Service) GetByUUID(ctx context.Context, userUUID string) (*domain.User, error) {
	raw := strings.TrimSpace(userUUID)
	if raw == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.repo.FindByUUID(ctx, raw)
}

func (s *Service) SetActiveOrganization(ctx context.Context, userUUID, orgUUID string) error {
	trimmed := strings.TrimSpace(orgUUID)
	if trimmed == "" {
		return s.repo.SetActiveOrganization(ctx, userUUID, nil)
	}
	return s.repo.SetActiveOrganization(ctx, userUUID, &trimmed)
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", domain.ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", domain.ErrInvalidEmail
	}
	return email, nil
}
