package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/infernalwolves/clan-dashboard/docs"
	"github.com/infernalwolves/clan-dashboard/internal/api/handler"
	"github.com/infernalwolves/clan-dashboard/internal/api/middleware"
	"github.com/infernalwolves/clan-dashboard/internal/core/domain"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
)

// Deps are the services and settings the router wires into handlers.
type Deps struct {
	Rosters   ports.RosterService
	Exporter  ports.TeamExporter
	Clan      ports.ClanService
	Auth      ports.AuthService
	JWTSecret string
	Pingers   map[string]handler.Pinger
	Log       zerolog.Logger

	// Registerer and Gatherer enable HTTP metrics and GET /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	if d.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "clan_dashboard",
			Registerer: d.Registerer,
		}))
	}

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	teamHandler := handler.NewTeamHandler(d.Rosters, d.Exporter, d.Log)
	clanHandler := handler.NewClanHandler(d.Clan)
	healthHandler := handler.NewHealthHandler(d.Pingers)

	authMW := middleware.Auth(d.JWTSecret)
	canWriteTeam := []echo.MiddlewareFunc{
		authMW,
		middleware.RBAC(domain.RoleOfficer, domain.RoleAdmin),
		middleware.OwnerOrAdmin("owner"),
	}

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Auth ---
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me, authMW)

	// --- Teams ---
	api.GET("/teams", teamHandler.List)
	api.GET("/teams/:owner", teamHandler.Get)
	api.GET("/teams/:owner/export", teamHandler.Export)
	api.POST("/teams/:owner", teamHandler.Save, canWriteTeam...)
	api.DELETE("/teams/:owner", teamHandler.Delete, canWriteTeam...)

	// --- Clan (read-only) ---
	api.GET("/clan", clanHandler.Overview)
	api.GET("/clan/members", clanHandler.Members)
	api.GET("/clan/members/:account_id", clanHandler.Player)
	api.GET("/clan/tier10", clanHandler.Tier10)

	// --- Ops ---
	if d.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
