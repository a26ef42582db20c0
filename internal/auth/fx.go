package auth

import (
	"github.com/smallbiznis/procura/internal/auth/repository"
	"github.com/smallbiznis/procura/internal/auth/service"
	"github.com/smallbiznis/procura/internal/auth/token"
	"github.com/smallbiznis/procura/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(provideIssuer),
	fx.Provide(repository.New),
	fx.Provide(service.New),
)

func provideIssuer(cfg config.Config) *token.Issuer {
	return token.NewIssuer(cfg.AuthJWTSecret, cfg.AccessTokenTTL)
}
