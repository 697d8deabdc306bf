package handlers

import (
	"log/slog"

	"compliance-hub/internal/compliance"
	"compliance-hub/internal/metrics"
	"compliance-hub/internal/rbac"

	"gorm.io/gorm"
)

// App carries the dependencies every handler needs.
type App struct {
	DB         *gorm.DB
	Compliance *compliance.Service
	Enforcer   *rbac.Enforcer
	Metrics    *metrics.Metrics
	Log        *slog.Logger
}

func NewApp(db *gorm.DB, enf *rbac.Enforcer, m *metrics.Metrics, log *slog.Logger) *App {
	return &App{
		DB:         db,
		Compliance: compliance.NewService(db, log),
		Enforcer:   enf,
		Metrics:    m,
		Log:        log,
	}
}
