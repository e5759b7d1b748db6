package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"transport-planner-service/internal/domain"
	"transport-planner-service/internal/services"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables with this prefix override file values:
// TP_PLANNER__TRUCK_CAPACITY=20 sets planner.truck_capacity.
const EnvPrefix = "TP_"

type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Planner  PlannerConfig  `json:"planner"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
}

type ServerConfig struct {
	Port                     string `json:"port"`
	ReadHeaderTimeoutSeconds int    `json:"read_header_timeout_seconds"`
	ReadTimeoutSeconds       int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds      int    `json:"write_timeout_seconds"`
	IdleTimeoutSeconds       int    `json:"idle_timeout_seconds"`
}

func (s ServerConfig) ReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutSeconds) * time.Second
}

func (s ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(s.ReadTimeoutSeconds) * time.Second
}

func (s ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(s.WriteTimeoutSeconds) * time.Second
}

func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	// sqlite or postgres
	Driver   string `json:"driver"`
	Path     string `json:"path"`
	URL      string `json:"url"`
	SeedPath string `json:"seed_path"`
}

// DSN returns the file path for sqlite and the connection URL otherwise.
func (d DatabaseConfig) DSN() string {
	if strings.EqualFold(d.Driver, "sqlite") {
		return d.Path
	}
	return d.URL
}

// PlannerConfig holds the system-wide planning parameters.
type PlannerConfig struct {
	TruckCapacity int                `json:"truck_capacity"`
	Layout        string             `json:"layout"`
	HeaderRow     int                `json:"header_row"`
	OriginMode    string             `json:"origin_mode"`
	Origin        string             `json:"origin"`
	OriginColumn  int                `json:"origin_column"`
	KnownStations []string           `json:"known_stations"`
	Itemized      services.ColumnMap `json:"itemized"`
	Simple        services.ColumnMap `json:"simple"`
}

// NormalizeOptions builds normalizer options for the configured layout.
func (p PlannerConfig) NormalizeOptions() services.NormalizeOptions {
	layout := services.Layout(p.Layout)
	cols := p.Simple
	if layout == services.LayoutItemized {
		cols = p.Itemized
	}

	return services.NormalizeOptions{
		Layout:  layout,
		Columns: &cols,
		Origin: services.OriginOptions{
			Mode:          services.OriginMode(p.OriginMode),
			Fixed:         p.Origin,
			Column:        p.OriginColumn,
			KnownStations: p.KnownStations,
		},
	}
}

type LoggingConfig struct {
	Level string `json:"level"`
}

type MetricsConfig struct {
	Enabled bool `json:"enabled"`
}

// Default returns the configuration used for keys absent from file and env.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:                     "8080",
			ReadHeaderTimeoutSeconds: 5,
			ReadTimeoutSeconds:       10,
			WriteTimeoutSeconds:      30,
			IdleTimeoutSeconds:       60,
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Path:     "data/app.db",
			SeedPath: "data/seeds/seed.json",
		},
		Planner: PlannerConfig{
			TruckCapacity: services.DefaultTruckCapacity,
			Layout:        string(services.LayoutSimple),
			OriginMode:    string(services.OriginFixed),
			Origin:        "ANY",
			OriginColumn:  services.NoColumn,
			KnownStations: append([]string(nil), services.DefaultKnownStations...),
			Itemized:      services.DefaultColumns(services.LayoutItemized),
			Simple:        services.DefaultColumns(services.LayoutSimple),
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads the optional config file at path (yaml or json) and applies
// TP_ environment overrides on top of Default.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("load config: unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load config: env: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings that would fail every planning request.
func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "postgres", "pgx", "postgresql":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}

	if c.Planner.TruckCapacity <= 0 {
		return fmt.Errorf("planner.truck_capacity must be positive, got %d", c.Planner.TruckCapacity)
	}

	// An empty table still runs the layout, origin and column checks.
	if err := c.Planner.NormalizeOptions().Validate(domain.Table{}); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	return nil
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
