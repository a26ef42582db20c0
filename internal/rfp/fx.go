package rfp

import (
	"github.com/smallbiznis/procura/internal/rfp/repository"
	"github.com/smallbiznis/procura/internal/rfp/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rfp.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
