package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gesture_presentation_backend/pkg/runtimeenv"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Security  SecurityConfig  `mapstructure:"security"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`

	// Computed at startup, not read from the config file.
	BaseDir    string `mapstructure:"-"`
	Serverless bool   `mapstructure:"-"`

	// Runtime flags set from the command line.
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
	SetupDemo    bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port         string   `mapstructure:"port"`
	Debug        bool     `mapstructure:"debug"`
	AllowedHosts []string `mapstructure:"allowed_hosts"`
}

type DatabaseConfig struct {
	// URL selects the backend: a mysql:// DSN, or a SQLite file path
	// (optionally sqlite://-prefixed). Empty picks a local file whose
	// location depends on the serverless heuristic.
	URL string `mapstructure:"url"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	TrustedOrigins []string `mapstructure:"trusted_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type SecurityConfig struct {
	HSTSSeconds           int  `mapstructure:"hsts_seconds"`
	HSTSIncludeSubdomains bool `mapstructure:"hsts_include_subdomains"`
	HSTSPreload           bool `mapstructure:"hsts_preload"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("GESTURES")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.debug", "DEBUG")
	viper.BindEnv("server.allowed_hosts", "ALLOWED_HOSTS")

	// Database
	viper.BindEnv("database.url", "DATABASE_URL")

	// JWT
	viper.BindEnv("jwt.secret", "SECRET_KEY")

	// CORS / CSRF
	viper.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("cors.trusted_origins", "CSRF_TRUSTED_ORIGINS")

	// Logging
	viper.BindEnv("log.level", "LOG_LEVEL")

	// Security (only applied when debug is off)
	viper.BindEnv("security.hsts_seconds", "SECURE_HSTS_SECONDS")
	viper.BindEnv("security.hsts_include_subdomains", "SECURE_HSTS_INCLUDE_SUBDOMAINS")
	viper.BindEnv("security.hsts_preload", "SECURE_HSTS_PRELOAD")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.Server.AllowedHosts = splitEnvList(cfg.Server.AllowedHosts)
	cfg.CORS.AllowedOrigins = splitEnvList(cfg.CORS.AllowedOrigins)
	cfg.CORS.TrustedOrigins = splitEnvList(cfg.CORS.TrustedOrigins)

	if !cfg.Server.Debug && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("secret key is too short (%d chars), must be at least 32 characters with debug off", len(cfg.JWT.Secret))
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = baseDir
	cfg.Serverless = runtimeenv.IsServerless(baseDir)

	if cfg.Database.URL == "" {
		if cfg.Serverless {
			// /tmp is the one writable place; data is ephemeral there.
			cfg.Database.URL = "/tmp/gestures.db"
		} else {
			cfg.Database.URL = filepath.Join(baseDir, "gestures.db")
		}
	}

	return &cfg, nil
}

// splitEnvList flattens comma-separated entries, so both YAML lists and
// ALLOWED_HOSTS=a,b style env values work.
func splitEnvList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
