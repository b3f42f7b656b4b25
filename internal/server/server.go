package server

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/internal/config"
	"github.com/Udyana30/rsup-ppk-sub000/internal/versioning"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/storage"
)

// Server contains the server configuration and shared dependencies. It is
// built once at startup and passed into every handler.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// DB is the database for the server.
	DB *gorm.DB

	// Storage is the file hosting backend.
	Storage storage.Provider

	// Versioning executes document state transitions.
	Versioning *versioning.Engine

	// Logger is the logger for the server.
	Logger hclog.Logger
}
