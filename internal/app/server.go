package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/infernalwolves/clan-dashboard/internal/api"
	"github.com/infernalwolves/clan-dashboard/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// RunServer starts the HTTP server with the fx lifecycle.
func RunServer(lc fx.Lifecycle, e *echo.Echo, cfg *config.Config, log zerolog.Logger) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           api.WithCORS(e, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Str("store", cfg.Store.Backend).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			log.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
