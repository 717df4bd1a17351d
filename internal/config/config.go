package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
)

type Config struct {
	ServerPort string `toml:"server_port"`
	AppEnv     string `toml:"app_env"`
	LogLevel   string `toml:"log_level"`
	// PublicURL is the externally visible origin; todo links are PublicURL + "/todos/{id}".
	PublicURL string        `toml:"public_url"`
	Storage   StorageConfig `toml:"storage"`
	DB        DBConfig      `toml:"db"`
	SQLite    SQLiteConfig  `toml:"sqlite"`
	Redis     RedisConfig   `toml:"redis"`
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

func (c Config) ParseLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResourceRoot is the base every todo URL is built from.
func (c Config) ResourceRoot(path string) string {
	return strings.TrimRight(c.PublicURL, "/") + path
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	u, err := url.Parse(c.PublicURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid PUBLIC_URL %q: must be an absolute URL", c.PublicURL)
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME are required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis driver")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: must be one of postgres, sqlite, redis", c.Storage.Driver)
	}
	return nil
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Name     string `toml:"name"`
	SSLMode  string `toml:"sslmode"`
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

// DSN enables foreign keys and a busy timeout so concurrent writers wait instead of failing.
func (s SQLiteConfig) DSN() string {
	return "file:" + s.Path + "?_busy_timeout=5000&_foreign_keys=on"
}

type RedisConfig struct {
	URL string `toml:"url"`
}

func defaults() Config {
	return Config{
		ServerPort: "8080",
		AppEnv:     "local",
		LogLevel:   "info",
		Storage:    StorageConfig{Driver: DriverPostgres},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "todo",
			Password: "todo",
			Name:     "todo",
			SSLMode:  "disable",
		},
		SQLite: SQLiteConfig{Path: "todo.db"},
		Redis:  RedisConfig{URL: "redis://localhost:6379/0"},
	}
}

// Load builds the configuration from defaults, then the TOML file named by
// CONFIG_FILE (if set), then environment variables. Later sources win.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + cfg.ServerPort
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.ServerPort, "SERVER_PORT")
	setFromEnv(&cfg.AppEnv, "APP_ENV")
	setFromEnv(&cfg.LogLevel, "LOG_LEVEL")
	setFromEnv(&cfg.PublicURL, "PUBLIC_URL")
	setFromEnv(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setFromEnv(&cfg.DB.Host, "DB_HOST")
	setFromEnv(&cfg.DB.Port, "DB_PORT")
	setFromEnv(&cfg.DB.User, "DB_USER")
	setFromEnv(&cfg.DB.Password, "DB_PASSWORD")
	setFromEnv(&cfg.DB.Name, "DB_NAME")
	setFromEnv(&cfg.DB.SSLMode, "DB_SSLMODE")
	setFromEnv(&cfg.SQLite.Path, "SQLITE_PATH")
	setFromEnv(&cfg.Redis.URL, "REDIS_URL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
