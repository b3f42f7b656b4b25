package db

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/Udyana30/rsup-ppk-sub000/internal/config"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/database"
	"github.com/Udyana30/rsup-ppk-sub000/pkg/models"
)

// NewDB returns a new migrated database connection.
func NewDB(cfg config.Database, log hclog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:   cfg.Driver,
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		DBName:   cfg.DBName,
		SSLMode:  cfg.SSLMode,
		Path:     cfg.Path,
	}, log)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.ModelsToAutoMigrate()...); err != nil {
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return db, nil
}
