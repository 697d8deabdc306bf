package models

import "gorm.io/gorm"

type ComplianceStatus string
type RiskLevel string

const (
	StatusCompliant          ComplianceStatus = "compliant"
	StatusPartiallyCompliant ComplianceStatus = "partially_compliant"
	StatusNonCompliant       ComplianceStatus = "non_compliant"

	RiskHigh   RiskLevel = "high"
	RiskMedium RiskLevel = "medium"
	RiskLow    RiskLevel = "low"
)

var (
	ComplianceStatuses = []ComplianceStatus{StatusCompliant, StatusPartiallyCompliant, StatusNonCompliant}
	RiskLevels         = []RiskLevel{RiskHigh, RiskMedium, RiskLow}
)

func (s ComplianceStatus) Valid() bool {
	for _, known := range ComplianceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (r RiskLevel) Valid() bool {
	for _, known := range RiskLevels {
		if r == known {
			return true
		}
	}
	return false
}

// Assessment is immutable once submitted; re-assessing creates a new one.
type Assessment struct {
	gorm.Model
	OrganizationID uint `gorm:"index;not null"`
	Organization   Organization

	Title string `gorm:"size:255;not null"`

	Results []AssessmentResult
}

type AssessmentResult struct {
	ID uint `gorm:"primaryKey"`

	AssessmentID uint `gorm:"uniqueIndex:idx_result_assessment_control;not null"`
	ControlID    uint `gorm:"uniqueIndex:idx_result_assessment_control;not null"`
	Control      Control

	Status         ComplianceStatus `gorm:"type:varchar(32);not null"`
	RiskLevel      RiskLevel        `gorm:"type:varchar(16);not null"`
	Evidence       string           `gorm:"type:text"`
	ActionRequired string           `gorm:"type:text"`
}
