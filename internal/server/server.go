package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/procura/internal/auth"
	authdomain "github.com/smallbiznis/procura/internal/auth/domain"
	"github.com/smallbiznis/procura/internal/auth/token"
	"github.com/smallbiznis/procura/internal/calendar"
	calendardomain "github.com/smallbiznis/procura/internal/calendar/domain"
	"github.com/smallbiznis/procura/internal/config"
	"github.com/smallbiznis/procura/internal/observability"
	obslogger "github.com/smallbiznis/procura/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/procura/internal/observability/metrics"
	obstracing "github.com/smallbiznis/procura/internal/observability/tracing"
	"github.com/smallbiznis/procura/internal/organization"
	organizationdomain "github.com/smallbiznis/procura/internal/organization/domain"
	"github.com/smallbiznis/procura/internal/rfp"
	rfpdomain "github.com/smallbiznis/procura/internal/rfp/domain"
	"github.com/smallbiznis/procura/internal/supplier"
	supplierdomain "github.com/smallbiznis/procura/internal/supplier/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	organization.Module,
	supplier.Module,
	rfp.Module,
	calendar.Module,
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", httpMetrics.Handler())

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, srv *Server) {
	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	issuer          *token.Issuer
	authsvc         authdomain.Service
	organizationSvc organizationdomain.Service
	supplierSvc     supplierdomain.Service
	rfpSvc          rfpdomain.Service
	calendarSvc     calendardomain.Service
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	Issuer          *token.Issuer
	Authsvc         authdomain.Service
	OrganizationSvc organizationdomain.Service
	SupplierSvc     supplierdomain.Service
	RFPSvc          rfpdomain.Service
	CalendarSvc     calendardomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("server"),
		issuer:          p.Issuer,
		authsvc:         p.Authsvc,
		organizationSvc: p.OrganizationSvc,
		supplierSvc:     p.SupplierSvc,
		rfpSvc:          p.RFPSvc,
		calendarSvc:     p.CalendarSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Auth --------
	api.POST("/register", s.Register)
	api.POST("/login", s.Login)
	api.POST("/token", s.Token)
	api.GET("/user", s.AuthRequired(), s.CurrentUser)
	api.POST("/user", s.AuthRequired(), s.RefreshProfile)
	api.POST("/activeTeam", s.AuthRequired(), s.SetActiveTeam)

	// -------- Organizations --------
	api.POST("/organization", s.AuthRequired(), s.CreateOrganization)
	api.GET("/organization", s.AuthRequired(), s.ListOrganizations)
	api.GET("/organization/:uuid", s.AuthRequired(), s.GetOrganization)
	api.POST("/organization/:uuid/invitations", s.AuthRequired(), s.InviteToOrganization)
	api.GET("/organization/:uuid/invitations", s.AuthRequired(), s.ListInvitations)

	// -------- Suppliers --------
	api.POST("/supplier", s.AuthRequired(), s.CreateSupplier)
	api.GET("/suppliers", s.AuthRequired(), s.ListSuppliers)
	api.GET("/suppliers/:uuid", s.AuthRequired(), s.GetSupplier)

	// -------- RFPs --------
	api.POST("/rfp", s.AuthRequired(), s.CreateRFP)
	api.GET("/rfp", s.AuthRequired(), s.ListRFPs)
	api.GET("/rfp/:uuid", s.AuthRequired(), s.GetRFP)

	// -------- Google Calendar --------
	api.GET("/loginGoogle", s.AuthRequired(), s.GoogleLogin)
	api.GET("/auth/google/callback", s.GoogleCallback)
	api.GET("/events", s.AuthRequired(), s.ListCalendarEvents)
}
