package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("parses a full config", func(t *testing.T) {
		path := writeConfig(t, `
listen_addr = "127.0.0.1:9000"
log_level   = "debug"

auth {
  jwt_secret = "super-secret"
}

database {
  driver = "sqlite"
  path   = "portal.db"
}

storage {
  provider   = "local"
  local_path = "./files"
}
`)
		cfg, err := NewConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
		assert.Equal(t, "http://127.0.0.1:9000", cfg.BaseURL)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "super-secret", cfg.Auth.JWTSecret)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "local", cfg.Storage.Provider)
	})

	t.Run("defaults listen address and log level", func(t *testing.T) {
		path := writeConfig(t, `
auth {
  jwt_secret = "s"
}
database {
  driver = "sqlite"
  path   = "portal.db"
}
storage {
  provider   = "local"
  local_path = "./files"
}
`)
		cfg, err := NewConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:8000", cfg.ListenAddr)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("rejects a missing auth block", func(t *testing.T) {
		path := writeConfig(t, `
database {
  driver = "sqlite"
  path   = "portal.db"
}
storage {
  provider   = "local"
  local_path = "./files"
}
`)
		_, err := NewConfig(path)
		require.Error(t, err)
	})

	t.Run("rejects an s3 provider without an s3 block", func(t *testing.T) {
		path := writeConfig(t, `
auth {
  jwt_secret = "s"
}
database {
  driver = "sqlite"
  path   = "portal.db"
}
storage {
  provider = "s3"
}
`)
		_, err := NewConfig(path)
		require.Error(t, err)
	})
}
