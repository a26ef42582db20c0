package calendar

import (
	"github.com/smallbiznis/procura/internal/calendar/service"
	"github.com/smallbiznis/procura/internal/calendar/store"
	"go.uber.org/fx"
)

var Module = fx.Module("calendar.service",
	fx.Provide(store.NewMemoryStore),
	fx.Provide(service.NewService),
)
