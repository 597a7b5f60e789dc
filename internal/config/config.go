package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
)

// Config del servicio. Se arma con defaults, luego el YAML (si existe),
// luego variables de entorno.
type Config struct {
	App      string         `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Storage  StorageConfig  `yaml:"storage"`
	Progress ProgressConfig `yaml:"progress"`
	Auth     AuthConfig     `yaml:"auth"`
	Schedule ScheduleConfig `yaml:"schedule"`
}

type ServerConfig struct {
	Port         int    `yaml:"port"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"` // 0 = sin límite (SSE)
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // json | console
}

type StorageConfig struct {
	Driver     string `yaml:"driver"` // memory | postgres | sqlite
	DSN        string `yaml:"dsn"`
	SQLitePath string `yaml:"sqlite_path"`
}

// ProgressConfig: dónde vive el progreso de dosis. Vacío = mismo driver que Storage.
type ProgressConfig struct {
	Driver string   `yaml:"driver"` // "" | memory | postgres | sqlite | s3
	S3     S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
	Prefix    string `yaml:"prefix"`

	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

type AuthConfig struct {
	BaseURL string `yaml:"base_url"` // vacío = modo dev (X-Debug-User-ID)
	Timeout string `yaml:"timeout"`
}

type ScheduleConfig struct {
	Timezone      string `yaml:"timezone"`
	CountdownTick string `yaml:"countdown_tick"`
}

func DefaultConfig() *Config {
	return &Config{
		App: "livestock-health",
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  "5s",
			WriteTimeout: "0s",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			SQLitePath: "data/livestock-health.db",
		},
		Progress: ProgressConfig{
			S3: S3Config{Region: "us-east-1", Prefix: "progress/"},
		},
		Auth: AuthConfig{
			Timeout: "5s",
		},
		Schedule: ScheduleConfig{
			Timezone:      "Local",
			CountdownTick: "1s",
		},
	}
}

// Load lee el YAML en path (opcional: path vacío o inexistente => defaults)
// y aplica overrides de entorno.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("APP_NAME"); v != "" {
		c.App = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}

	// DB_DSN solo => postgres, igual que antes de existir STORAGE_DRIVER.
	if v := os.Getenv("DB_DSN"); v != "" {
		c.Storage.DSN = v
		if os.Getenv("STORAGE_DRIVER") == "" {
			c.Storage.Driver = DriverPostgres
		}
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Storage.SQLitePath = v
	}

	if v := os.Getenv("PROGRESS_DRIVER"); v != "" {
		c.Progress.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("PROGRESS_S3_BUCKET"); v != "" {
		c.Progress.S3.Bucket = v
	}
	if v := os.Getenv("PROGRESS_S3_REGION"); v != "" {
		c.Progress.S3.Region = v
	}
	if v := os.Getenv("PROGRESS_S3_ENDPOINT"); v != "" {
		c.Progress.S3.Endpoint = v
	}
	if v := os.Getenv("PROGRESS_S3_PATH_STYLE"); v != "" {
		c.Progress.S3.PathStyle = strings.EqualFold(v, "true")
	}

	if v := os.Getenv("PROGRESS_S3_ACCESS_KEY_ID"); v != "" {
		c.Progress.S3.AccessKeyID = v
	}
	if v := os.Getenv("PROGRESS_S3_SECRET_ACCESS_KEY"); v != "" {
		c.Progress.S3.SecretAccessKey = v
	}

	if v := os.Getenv("AUTH_BASE_URL"); v != "" {
		c.Auth.BaseURL = v
	}
	if v := os.Getenv("AUTH_TIMEOUT"); v != "" {
		c.Auth.Timeout = v
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		c.Schedule.Timezone = v
	}
	if v := os.Getenv("COUNTDOWN_TICK"); v != "" {
		c.Schedule.CountdownTick = v
	}
	return nil
}

// ProgressDriver resuelve el driver efectivo del progreso.
func (c *Config) ProgressDriver() string {
	if c.Progress.Driver == "" {
		return c.Storage.Driver
	}
	return c.Progress.Driver
}

func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Server.Port) }

func (c *Config) GetReadTimeout() time.Duration {
	return durationOr(c.Server.ReadTimeout, 5*time.Second)
}

func (c *Config) GetWriteTimeout() time.Duration {
	return durationOr(c.Server.WriteTimeout, 0)
}

func (c *Config) GetAuthTimeout() time.Duration {
	return durationOr(c.Auth.Timeout, 5*time.Second)
}

func (c *Config) GetCountdownTick() time.Duration {
	return durationOr(c.Schedule.CountdownTick, time.Second)
}

// Location carga la zona horaria para decidir "hoy".
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Schedule.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(tz)
}

// Validate rechaza drivers desconocidos y combinaciones incompletas.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.Storage.DSN) == "" {
			return fmt.Errorf("storage driver postgres requires DB_DSN")
		}
	default:
		return fmt.Errorf("invalid storage driver: %q (valid: memory, postgres, sqlite)", c.Storage.Driver)
	}

	switch c.ProgressDriver() {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.ProgressDriver() != c.Storage.Driver {
			return fmt.Errorf("progress driver %s requires storage driver %s", c.ProgressDriver(), c.ProgressDriver())
		}
	case DriverS3:
		if strings.TrimSpace(c.Progress.S3.Bucket) == "" {
			return fmt.Errorf("progress driver s3 requires PROGRESS_S3_BUCKET")
		}
	default:
		return fmt.Errorf("invalid progress driver: %q (valid: memory, postgres, sqlite, s3)", c.Progress.Driver)
	}

	for name, v := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"auth.timeout":            c.Auth.Timeout,
		"schedule.countdown_tick": c.Schedule.CountdownTick,
	} {
		if v == "" {
			continue
		}
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if c.GetCountdownTick() <= 0 {
		return fmt.Errorf("schedule.countdown_tick must be > 0")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Schedule.Timezone, err)
	}
	return nil
}

func durationOr(s string, def time.Duration) time.Duration {
	if strings.TrimSpace(s) == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
