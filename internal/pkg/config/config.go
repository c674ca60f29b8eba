package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=24h"`
	PrincipalsFile string        `env:"PRINCIPALS_FILE, default=principals.json"`
	CORSOrigins    []string      `env:"CORS_ORIGINS"`

	Store  StoreConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Stats  StatsConfig
	Client ClientConfig
}

// StoreConfig selects where the roster store keeps teams.
type StoreConfig struct {
	Backend    string `env:"STORE_BACKEND, default=file"`
	DataDir    string `env:"DATA_DIR,      default=data"`
	SQLitePath string `env:"SQLITE_PATH,   default=data/teams.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clan_dashboard"`
}

// RedisConfig enables the stats cache when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,        default=0"`
	CacheTTL time.Duration `env:"STATS_CACHE_TTL, default=5m"`
}

type StatsConfig struct {
	ApplicationID string        `env:"WG_APPLICATION_ID"`
	Region        string        `env:"WG_REGION,     default=na"`
	ClanID        int64         `env:"CLAN_ID,       default=1000023780"`
	Timeout       time.Duration `env:"STATS_TIMEOUT, default=30s"`
}

// ClientConfig drives the officer command line client.
type ClientConfig struct {
	ServerURL    string        `env:"TEAMS_URL,     default=http://localhost:8080"`
	StateDir     string        `env:"CLIENT_DIR,    default=.clan-dashboard"`
	Timeout      time.Duration `env:"TEAMS_TIMEOUT, default=10s"`
	PollInterval time.Duration `env:"POLL_INTERVAL, default=10s"`
	SettleDelay  time.Duration `env:"SETTLE_DELAY,  default=1500ms"`
}

const (
	BackendFile   = "file"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Load reads a .env file when present, then the environment.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	switch cfg.Store.Backend {
	case BackendFile, BackendMongo, BackendSQLite:
	default:
		return nil, fmt.Errorf("config: STORE_BACKEND must be file, mongo or sqlite, got %q", cfg.Store.Backend)
	}
	if cfg.Client.PollInterval <= 0 {
		return nil, errors.New("config: POLL_INTERVAL must be positive")
	}
	return &cfg, nil
}

// ValidateServer checks the settings only the server needs.
func (c *Config) ValidateServer() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.Stats.ApplicationID == "" {
		return errors.New("config: WG_APPLICATION_ID is required")
	}
	return nil
}

// IsDevelopment reports whether ENV is development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
