// Package app wires the roster store and clan API server with fx.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/infernalwolves/clan-dashboard/internal/api"
	"github.com/infernalwolves/clan-dashboard/internal/api/handler"
	"github.com/infernalwolves/clan-dashboard/internal/core/ports"
	"github.com/infernalwolves/clan-dashboard/internal/core/service"
	mongodb "github.com/infernalwolves/clan-dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/infernalwolves/clan-dashboard/internal/infrastructure/db/redis"
	"github.com/infernalwolves/clan-dashboard/internal/infrastructure/db/sqlite"
	"github.com/infernalwolves/clan-dashboard/internal/infrastructure/directory"
	"github.com/infernalwolves/clan-dashboard/internal/infrastructure/store"
	"github.com/infernalwolves/clan-dashboard/internal/infrastructure/wargaming"
	"github.com/infernalwolves/clan-dashboard/internal/pkg/config"
	"github.com/infernalwolves/clan-dashboard/pkg/logger"
)

// namedPinger is one entry of the readiness probe.
type namedPinger struct {
	name string
	ping handler.Pinger
}

var Module = fx.Options(
	fx.Provide(loadConfig),
	fx.Provide(newLogger),
	// storage
	fx.Provide(provideRosterRepository),
	// stats provider
	fx.Provide(provideStatsProvider),
	// auth
	fx.Provide(providePrincipalDirectory),
	// svc
	fx.Provide(
		fx.Annotate(newRosterService, fx.As(new(ports.RosterService))),
		fx.Annotate(newClanService, fx.As(new(ports.ClanService))),
		fx.Annotate(service.NewExportService, fx.As(new(ports.TeamExporter))),
		fx.Annotate(newAuthService, fx.As(new(ports.AuthService))),
	),
	// http
	fx.Provide(newRouter),
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(context.Background())
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateServer(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "clan-dashboard",
	})
}

func providePrincipalDirectory(cfg *config.Config, log zerolog.Logger) (ports.PrincipalDirectory, error) {
	dir, err := directory.Load(cfg.PrincipalsFile)
	if err != nil {
		return nil, err
	}
	log.Info().Str("file", cfg.PrincipalsFile).Int("principals", dir.Len()).Msg("principal directory loaded")
	return dir, nil
}

type repositoryOut struct {
	fx.Out
	Repo   ports.RosterRepository
	Pinger namedPinger `group:"readiness"`
}

func provideRosterRepository(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (repositoryOut, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		store, err := mongodb.Connect(context.Background(), mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}, log)
		if err != nil {
			return repositoryOut{}, err
		}
		repo := mongodb.NewRosterRepository(store.Database())
		lc.Append(fx.StopHook(store.Close))
		return repositoryOut{
			Repo:   repo,
			Pinger: namedPinger{"mongodb", handler.PingFunc(store.Ping)},
		}, nil

	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
			return repositoryOut{}, fmt.Errorf("create sqlite dir: %w", err)
		}
		db, err := sqlite.Open(cfg.Store.SQLitePath, log)
		if err != nil {
			return repositoryOut{}, err
		}
		lc.Append(fx.StopHook(db.Close))
		return repositoryOut{
			Repo:   sqlite.NewRosterRepository(db),
			Pinger: namedPinger{"sqlite", handler.PingFunc(db.PingContext)},
		}, nil

	default:
		repo, err := store.NewFileRepository(cfg.Store.DataDir, log)
		if err != nil {
			return repositoryOut{}, err
		}
		dir := cfg.Store.DataDir
		log.Info().Str("dir", dir).Msg("roster store backed by files")
		return repositoryOut{
			Repo: repo,
			Pinger: namedPinger{"files", handler.PingFunc(func(context.Context) error {
				_, err := os.Stat(dir)
				return err
			})},
		}, nil
	}
}

type statsOut struct {
	fx.Out
	Stats   ports.StatsProvider
	Pingers []namedPinger `group:"readiness,flatten"`
}

// provideStatsProvider wraps the stats client in the Redis cache when
// REDIS_ADDR is set. An unreachable Redis at startup disables the cache.
func provideStatsProvider(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) statsOut {
	client := wargaming.NewClient(wargaming.Config{
		ApplicationID: cfg.Stats.ApplicationID,
		BaseURL:       wargaming.BaseURL(cfg.Stats.Region),
		Timeout:       cfg.Stats.Timeout,
	}, log)

	if cfg.Redis.Addr == "" {
		return statsOut{Stats: client}
	}
	rdb, err := redisdb.Connect(context.Background(), redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}, log)
	if err != nil {
		log.Warn().Err(err).Msg("stats cache disabled")
		return statsOut{Stats: client}
	}
	lc.Append(fx.StopHook(rdb.Close))

	return statsOut{
		Stats:   redisdb.NewStatsCache(client, rdb, cfg.Redis.CacheTTL, log),
		Pingers: []namedPinger{{"redis", handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })}},
	}
}

func newRosterService(repo ports.RosterRepository, cfg *config.Config, log zerolog.Logger) *service.RosterService {
	return service.NewRosterService(repo, cfg.Store.Backend, log)
}

func newClanService(stats ports.StatsProvider, cfg *config.Config, log zerolog.Logger) *service.ClanService {
	return service.NewClanService(stats, cfg.Stats.ClanID, log)
}

func newAuthService(dir ports.PrincipalDirectory, cfg *config.Config) *service.AuthService {
	return service.NewAuthService(dir, cfg.JWTSecret, cfg.TokenTTL)
}

type routerIn struct {
	fx.In
	Config   *config.Config
	Log      zerolog.Logger
	Rosters  ports.RosterService
	Exporter ports.TeamExporter
	Clan     ports.ClanService
	Auth     ports.AuthService
	Pingers  []namedPinger `group:"readiness"`
}

func newRouter(in routerIn) *echo.Echo {
	pingers := make(map[string]handler.Pinger, len(in.Pingers))
	for _, p := range in.Pingers {
		pingers[p.name] = p.ping
	}
	return api.NewRouter(api.Deps{
		Rosters:    in.Rosters,
		Exporter:   in.Exporter,
		Clan:       in.Clan,
		Auth:       in.Auth,
		JWTSecret:  in.Config.JWTSecret,
		Pingers:    pingers,
		Log:        in.Log,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})
}
