package database

import (
	"compliance-hub/internal/models"

	"gorm.io/gorm"
)

// CreateAuditLog appends an audit entry. Failures are ignored: auditing never blocks the action.
func CreateAuditLog(db *gorm.DB, userID uint, entity string, entityID uint, action, details string) {
	if db == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	_ = db.Create(&record).Error
}
