package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/competence-backend/internal/data/db"
	httpx "github.com/yungbote/competence-backend/internal/http"
	"github.com/yungbote/competence-backend/internal/observability"
	"github.com/yungbote/competence-backend/internal/platform/envutil"
	"github.com/yungbote/competence-backend/internal/realtime/bus"
)

const configPathEnv = "COMPETENCE_CONFIG"

type Config struct {
	Env     string `yaml:"env"`
	AppName string `yaml:"app_name"`

	HTTP        httpx.ServerConfig `yaml:"http"`
	CORSOrigins []string           `yaml:"cors_origins"`

	DB      db.Config                   `yaml:"db"`
	Redis   bus.RedisConfig             `yaml:"redis"`
	Tracing observability.TracingConfig `yaml:"tracing"`
	Metrics observability.MetricsConfig `yaml:"metrics"`
}

func defaultConfig() Config {
	return Config{
		Env:     "development",
		AppName: "competenceApp",
		HTTP: httpx.ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     2 * time.Minute,
			ShutdownTimeout: 10 * time.Second,
		},
		DB: db.Config{
			Driver:        db.DriverSQLite,
			SQLitePath:    "competence.db",
			PostgresHost:  "localhost",
			PostgresPort:  "5432",
			PostgresUser:  "competence",
			PostgresName:  "competence",
			MaxOpenConns:  10,
			SlowThreshold: time.Second,
		},
		Redis: bus.RedisConfig{Channel: "entity-events"},
		Tracing: observability.TracingConfig{
			ServiceName: "competence",
			SampleRatio: 0.1,
		},
		Metrics: observability.MetricsConfig{ScrapeInterval: 10 * time.Second},
	}
}

// LoadConfig layers defaults, the optional YAML file, then environment
// variables.
func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	path := strings.TrimSpace(os.Getenv(configPathEnv))
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.AppName = envutil.String("APP_NAME", cfg.AppName)

	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ShutdownTimeout = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout)
	cfg.CORSOrigins = envutil.List("CORS_ALLOWED_ORIGINS", cfg.CORSOrigins)

	cfg.DB.Driver = envutil.String("DB_DRIVER", cfg.DB.Driver)
	cfg.DB.DSN = envutil.String("DB_DSN", cfg.DB.DSN)
	cfg.DB.PostgresHost = envutil.String("POSTGRES_HOST", cfg.DB.PostgresHost)
	cfg.DB.PostgresPort = envutil.String("POSTGRES_PORT", cfg.DB.PostgresPort)
	cfg.DB.PostgresUser = envutil.String("POSTGRES_USER", cfg.DB.PostgresUser)
	cfg.DB.PostgresPassword = envutil.String("POSTGRES_PASSWORD", cfg.DB.PostgresPassword)
	cfg.DB.PostgresName = envutil.String("POSTGRES_NAME", cfg.DB.PostgresName)
	cfg.DB.SQLitePath = envutil.String("SQLITE_PATH", cfg.DB.SQLitePath)
	cfg.DB.MaxOpenConns = envutil.Int("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.Tracing.Enabled = envutil.Bool("OTEL_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Tracing.ServiceName)
	cfg.Tracing.SampleRatio = envutil.Float("OTEL_SAMPLER_RATIO", cfg.Tracing.SampleRatio)
	cfg.Tracing.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	cfg.Tracing.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", cfg.Tracing.Insecure)
	if h := observability.ParseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")); h != nil {
		cfg.Tracing.Headers = h
	}
	if cfg.Tracing.Environment == "" {
		cfg.Tracing.Environment = cfg.Env
	}

	cfg.Metrics.Enabled = envutil.Bool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.ScrapeInterval = envutil.Duration("METRICS_SCRAPE_INTERVAL", cfg.Metrics.ScrapeInterval)
}

func (c Config) validate() error {
	switch db.NormalizeDriver(c.DB.Driver) {
	case db.DriverPostgres, db.DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http addr is required")
	}
	if strings.TrimSpace(c.AppName) == "" {
		return fmt.Errorf("app name is required")
	}
	return nil
}
