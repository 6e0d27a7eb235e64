package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/labstack/gommon/random"
)

// PathEnv names the optional TOML config file.
const PathEnv = "VELODRIVE_CONFIG"

// Config represents the complete configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Auth     AuthConfig     `toml:"auth"`
	Jobs     JobsConfig     `toml:"jobs"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

// DatabaseConfig contains PostgreSQL connection and pool settings. URL wins
// over the discrete fields when set.
type DatabaseConfig struct {
	URL              string `toml:"url"`
	Host             string `toml:"host"`
	Port             int    `toml:"port"`
	Name             string `toml:"name"`
	User             string `toml:"user"`
	Password         string `toml:"password"`
	MaxConns         int    `toml:"max_conns"`
	IdleTimeoutMs    int    `toml:"idle_timeout_ms"`
	ConnectTimeoutMs int    `toml:"connect_timeout_ms"`
}

// RedisConfig contains the lookup cache settings
type RedisConfig struct {
	Addr             string `toml:"addr"`
	Password         string `toml:"password"`
	DB               int    `toml:"db"`
	LookupTTLSeconds int    `toml:"lookup_ttl_seconds"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	TokenTTLSeconds int    `toml:"token_ttl_seconds"`
}

// JobsConfig contains background job intervals. Zero disables a job.
type JobsConfig struct {
	LookupRefreshSeconds int `toml:"lookup_refresh_seconds"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:             "127.0.0.1",
			Port:             5432,
			Name:             "postgres",
			User:             "postgres",
			MaxConns:         10,
			IdleTimeoutMs:    10000,
			ConnectTimeoutMs: 5000,
		},
		Redis: RedisConfig{
			Addr:             "localhost:6379",
			LookupTTLSeconds: 300,
		},
		Auth: AuthConfig{
			TokenTTLSeconds: 43200,
		},
		Jobs: JobsConfig{
			LookupRefreshSeconds: 240,
		},
	}
}

// Load reads the defaults, the optional TOML file named by VELODRIVE_CONFIG
// and then the environment overrides.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(PathEnv))
}

// LoadFile is Load with an explicit file path. An empty path skips the file.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	cfg.applyEnv()

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive a restart")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = envInt("PORT", c.Server.Port)

	c.Database.URL = envString("DATABASE_URL", c.Database.URL)
	c.Database.Host = envString("PGHOST", c.Database.Host)
	c.Database.Port = envInt("PGPORT", c.Database.Port)
	c.Database.Name = envString("PGDATABASE", c.Database.Name)
	c.Database.User = envString("PGUSER", c.Database.User)
	c.Database.Password = envString("PGPASSWORD", c.Database.Password)
	c.Database.MaxConns = envInt("PGPOOL_MAX", c.Database.MaxConns)
	c.Database.IdleTimeoutMs = envInt("PG_IDLE_TIMEOUT_MS", c.Database.IdleTimeoutMs)
	c.Database.ConnectTimeoutMs = envInt("PG_CONNECT_TIMEOUT_MS", c.Database.ConnectTimeoutMs)

	c.Redis.Addr = envString("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = envString("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = envInt("REDIS_DB", c.Redis.DB)

	c.Auth.JWTSecret = envString("JWT_SECRET", c.Auth.JWTSecret)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, fmt.Errorf("database.max_conns must be positive"))
	}
	if c.Auth.TokenTTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl_seconds must be positive"))
	}
	if c.Jobs.LookupRefreshSeconds < 0 {
		errs = append(errs, fmt.Errorf("jobs.lookup_refresh_seconds cannot be negative"))
	}
	return errors.Join(errs...)
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s",
		d.Host, d.Port, quoteDSN(d.Name), quoteDSN(d.User), quoteDSN(d.Password))
}

func (d DatabaseConfig) IdleTimeout() time.Duration {
	return time.Duration(d.IdleTimeoutMs) * time.Millisecond
}

func (d DatabaseConfig) ConnectTimeout() time.Duration {
	return time.Duration(d.ConnectTimeoutMs) * time.Millisecond
}

func (r RedisConfig) LookupTTL() time.Duration {
	return time.Duration(r.LookupTTLSeconds) * time.Second
}

func (j JobsConfig) LookupRefreshInterval() time.Duration {
	return time.Duration(j.LookupRefreshSeconds) * time.Second
}

func quoteDSN(v string) string {
	if v == "" {
		return "''"
	}
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

// envInt keeps the fallback when the variable is unset or not an integer.
func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		log.Printf("WARNING: ignoring %s=%q: not an integer", key, v)
		return fallback
	}
	return n
}
