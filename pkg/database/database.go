package database

import (
	"strings"

	"gesture_presentation_backend/internal/config"
	"gesture_presentation_backend/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InitDB opens the store selected by the database URL and migrates the
// schema. The default is a local SQLite file (relocated to /tmp in
// serverless environments by config); a mysql:// DSN switches drivers.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if cfg.Server.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(openDialector(cfg.Database.URL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func openDialector(url string) gorm.Dialector {
	switch {
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(strings.TrimPrefix(url, "mysql://"))
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	default:
		return sqlite.Open(url)
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.PresentationSession{},
		&model.GestureLog{},
		&model.SystemPerformance{},
	)
}
