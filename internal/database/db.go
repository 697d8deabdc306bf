package database

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"compliance-hub/internal/config"
	"compliance-hub/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectRetryDelay = 2 * time.Second

// Open connects, migrates and seeds the catalog and default admin.
func Open(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= cfg.DBConnectAttempts; i++ {
		log.Info("connecting to database", "driver", cfg.DBDriver, "attempt", i, "max_attempts", cfg.DBConnectAttempts)

		db, err = gorm.Open(dialector(cfg), &gorm.Config{
			Logger: gormLogger(log),
		})
		if err == nil {
			break
		}

		log.Warn("database connection failed", "err", err)
		if i < cfg.DBConnectAttempts {
			time.Sleep(connectRetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", cfg.DBConnectAttempts, err)
	}

	if cfg.DBDriver == "sqlite" {
		// one writer; also keeps :memory: databases on a single connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := SeedCatalog(db, log); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	if err := EnsureDefaultAdmin(db, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return db, nil
}

// gormLogger sends gorm's slow-query and error lines through slog. Lookups that
// find nothing are expected (failed logins, 404s) and are not logged.
func gormLogger(log *slog.Logger) logger.Interface {
	return logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

func dialector(cfg *config.Config) gorm.Dialector {
	if cfg.DBDriver == "sqlite" {
		return sqlite.Open(cfg.DBDSN)
	}
	return postgres.Open(cfg.DBDSN)
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Framework{},
		&models.Control{},
		&models.ControlMapping{},
		&models.Assessment{},
		&models.AssessmentResult{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
