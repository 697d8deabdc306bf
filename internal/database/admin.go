package database

import (
	"log/slog"

	"compliance-hub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureDefaultAdmin creates the configured admin unless an admin already exists.
func EnsureDefaultAdmin(db *gorm.DB, username, password string, log *slog.Logger) error {
	if username == "" || password == "" {
		log.Warn("default admin credentials are empty, skipping admin seed")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Info("created default admin user", "username", username)
	return nil
}
