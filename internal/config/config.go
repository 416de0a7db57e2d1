package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config is the complete host-process configuration, loaded from an optional
// TOML file with environment overrides on top.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Redis     RedisConfig     `toml:"redis"`
	Documents DocumentsConfig `toml:"documents"`
	Sweep     SweepConfig     `toml:"sweep"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig contains the localhost listener and token settings.
type ServerConfig struct {
	Addr          string `toml:"addr"`
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
	TokenFile     string `toml:"token_file"`
	UndoDepth     int    `toml:"undo_depth"`
}

// DatabaseConfig selects the persistence gateway. Driver is "sqlite"
// (default, embedded) or "postgres".
type DatabaseConfig struct {
	Driver      string `toml:"driver"`
	SQLitePath  string `toml:"sqlite_path"`
	PostgresDSN string `toml:"postgres_dsn"`
}

// RedisConfig is optional; empty Addr selects the in-process cache.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// DocumentsConfig selects the blob store. Empty MinioEndpoint keeps blobs in
// Dir on the local filesystem.
type DocumentsConfig struct {
	Dir           string `toml:"dir"`
	MinioEndpoint string `toml:"minio_endpoint"`
	MinioAccess   string `toml:"minio_access_key"`
	MinioSecret   string `toml:"minio_secret_key"`
	MinioBucket   string `toml:"minio_bucket"`
	MinioUseSSL   bool   `toml:"minio_use_ssl"`
}

// SweepConfig controls the background recurrence sweep.
type SweepConfig struct {
	IntervalMinutes int  `toml:"interval_minutes"`
	RunOnStartup    bool `toml:"run_on_startup"`
}

// LoggingConfig sets the zerolog level ("debug", "info", "warn", "error").
type LoggingConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Load reads the TOML file at path (skipped when path is empty or missing),
// applies RENTLEDGER_* environment overrides, and fills defaults. A .env file
// in the working directory is loaded first, best-effort.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	switch cfg.Database.Driver {
	case "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.Driver == "postgres" && cfg.Database.PostgresDSN == "" {
		return nil, fmt.Errorf("postgres driver selected but postgres_dsn is empty")
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setStr(&cfg.Server.Addr, "RENTLEDGER_ADDR")
	setStr(&cfg.Server.JWTSecret, "RENTLEDGER_JWT_SECRET")
	setStr(&cfg.Server.TokenFile, "RENTLEDGER_TOKEN_FILE")
	setInt(&cfg.Server.UndoDepth, "RENTLEDGER_UNDO_DEPTH")
	setStr(&cfg.Database.Driver, "RENTLEDGER_DB_DRIVER")
	setStr(&cfg.Database.SQLitePath, "RENTLEDGER_SQLITE_PATH")
	setStr(&cfg.Database.PostgresDSN, "RENTLEDGER_POSTGRES_DSN")
	setStr(&cfg.Redis.Addr, "RENTLEDGER_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "RENTLEDGER_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "RENTLEDGER_REDIS_DB")
	setStr(&cfg.Documents.Dir, "RENTLEDGER_DOCUMENTS_DIR")
	setStr(&cfg.Documents.MinioEndpoint, "RENTLEDGER_MINIO_ENDPOINT")
	setStr(&cfg.Documents.MinioAccess, "RENTLEDGER_MINIO_ACCESS_KEY")
	setStr(&cfg.Documents.MinioSecret, "RENTLEDGER_MINIO_SECRET_KEY")
	setStr(&cfg.Documents.MinioBucket, "RENTLEDGER_MINIO_BUCKET")
	setBool(&cfg.Documents.MinioUseSSL, "RENTLEDGER_MINIO_USE_SSL")
	setInt(&cfg.Sweep.IntervalMinutes, "RENTLEDGER_SWEEP_INTERVAL_MINUTES")
	setStr(&cfg.Logging.Level, "RENTLEDGER_LOG_LEVEL")
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:7733"
	}
	if cfg.Server.TokenTTLHours <= 0 {
		cfg.Server.TokenTTLHours = 24
	}
	if cfg.Server.UndoDepth <= 0 {
		cfg.Server.UndoDepth = 20
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "rentledger.db"
	}
	if cfg.Documents.Dir == "" {
		cfg.Documents.Dir = "documents"
	}
	if cfg.Documents.MinioBucket == "" {
		cfg.Documents.MinioBucket = "rentledger-documents"
	}
	if cfg.Sweep.IntervalMinutes <= 0 {
		cfg.Sweep.IntervalMinutes = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
