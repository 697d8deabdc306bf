package models

import "gorm.io/gorm"

// Organization is owned by one user; the store does not enforce one per user,
// the organization handler does.
type Organization struct {
	gorm.Model
	Name    string `gorm:"size:255;not null"`
	OwnerID uint   `gorm:"index;not null"`
	Owner   User

	Assessments []Assessment
}
