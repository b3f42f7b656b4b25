// Package config loads the HCL configuration file. The loaded Config is
// constructed once at startup and injected into every component that needs
// it; there is no package-level config state.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	s3storage "github.com/Udyana30/rsup-ppk-sub000/pkg/storage/s3"
)

// Config is the top-level configuration.
type Config struct {
	// BaseURL is the public base URL of the portal.
	BaseURL string `hcl:"base_url,optional"`

	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `hcl:"listen_addr,optional"`

	// LogLevel sets the hclog level ("trace".."error").
	LogLevel string `hcl:"log_level,optional"`

	Auth     *Auth     `hcl:"auth,block"`
	Database *Database `hcl:"database,block"`
	Storage  *Storage  `hcl:"storage,block"`
}

// Auth configures the identity collaborator.
type Auth struct {
	// JWTSecret signs and verifies session tokens.
	JWTSecret string `hcl:"jwt_secret"`
}

// Database configures the relational store.
type Database struct {
	// Driver is "postgres" or "sqlite".
	Driver string `hcl:"driver"`

	// PostgreSQL settings.
	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	User     string `hcl:"user,optional"`
	Password string `hcl:"password,optional"`
	DBName   string `hcl:"dbname,optional"`
	SSLMode  string `hcl:"sslmode,optional"`

	// SQLite settings.
	Path string `hcl:"path,optional"`
}

// Storage configures the file hosting collaborator.
type Storage struct {
	// Provider is "local" or "s3".
	Provider string `hcl:"provider"`

	// LocalPath is the storage directory for the local provider.
	LocalPath string `hcl:"local_path,optional"`

	S3 *s3storage.Config `hcl:"s3,block"`
}

// NewConfig parses the config file at the given path.
func NewConfig(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding configuration file: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8000"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://%s", cfg.ListenAddr)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if cfg.Auth == nil || cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth block with jwt_secret is required")
	}
	if cfg.Database == nil {
		return nil, fmt.Errorf("database block is required")
	}
	if cfg.Storage == nil {
		return nil, fmt.Errorf("storage block is required")
	}
	switch cfg.Storage.Provider {
	case "local":
		if cfg.Storage.LocalPath == "" {
			return nil, fmt.Errorf("storage local_path is required for the local provider")
		}
	case "s3":
		if cfg.Storage.S3 == nil {
			return nil, fmt.Errorf("storage s3 block is required for the s3 provider")
		}
	default:
		return nil, fmt.Errorf("unsupported storage provider: %q", cfg.Storage.Provider)
	}

	return &cfg, nil
}
