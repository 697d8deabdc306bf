// Package testutil opens seeded in-memory databases for tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"compliance-hub/internal/config"
	"compliance-hub/internal/database"
	"compliance-hub/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	AdminUsername = "admin@test.local"
	AdminPassword = "Admin123!"
)

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Config is a valid sqlite configuration.
func Config() *config.Config {
	return &config.Config{
		DBDriver:           "sqlite",
		DBDSN:              ":memory:",
		DBConnectAttempts:  1,
		ServerPort:         "8080",
		SessionSecret:      "test-session-secret-0123456789",
		AdminUsername:      AdminUsername,
		AdminPassword:      AdminPassword,
		LogLevel:           "info",
		MetricsEnabled:     true,
		LoginRatePerMinute: 1000,
		LoginBurst:         1000,
	}
}

// NewDB returns a migrated database seeded with the catalog and the admin user.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(Config(), Logger())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, username, password string, role models.UserRole) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := models.User{Username: username, PasswordHash: string(hash), Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func CreateOrganization(t testing.TB, db *gorm.DB, ownerID uint, name string) models.Organization {
	t.Helper()

	org := models.Organization{Name: name, OwnerID: ownerID}
	require.NoError(t, db.Create(&org).Error)
	return org
}

// Control looks up a seeded control by framework name and code.
func Control(t testing.TB, db *gorm.DB, framework, code string) models.Control {
	t.Helper()

	var fw models.Framework
	require.NoError(t, db.Where("name = ?", framework).First(&fw).Error, "framework %s", framework)

	var c models.Control
	err := db.Preload("Framework").
		Where("framework_id = ? AND code = ?", fw.ID, code).
		First(&c).Error
	require.NoError(t, err, "control %s %s", framework, code)
	return c
}
