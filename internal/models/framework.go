package models

// Well-known framework names. Aggregation matches on these exactly.
const (
	FrameworkISO27001 = "ISO 27001"
	FrameworkPCIDSS   = "PCI DSS"
)

// Framework and Control are reference data: seeded once, never edited.
type Framework struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Version     string `gorm:"size:32"`
	Description string `gorm:"type:text"`

	Controls []Control
}

type Control struct {
	ID          uint `gorm:"primaryKey"`
	FrameworkID uint `gorm:"index;not null"`
	Framework   Framework

	Code        string `gorm:"size:32;not null"` // A.5.15, 8.3.1 ...
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
}

type MappingRelationship string

const (
	RelationshipEquivalent MappingRelationship = "equivalent"
	RelationshipRelated    MappingRelationship = "related"
	RelationshipPartial    MappingRelationship = "partial"
)

// ControlMapping links a primary control to a secondary control, usually across frameworks.
type ControlMapping struct {
	ID uint `gorm:"primaryKey"`

	PrimaryControlID   uint `gorm:"uniqueIndex:idx_mapping_pair;not null"`
	SecondaryControlID uint `gorm:"uniqueIndex:idx_mapping_pair;not null"`

	PrimaryControl   Control `gorm:"foreignKey:PrimaryControlID"`
	SecondaryControl Control `gorm:"foreignKey:SecondaryControlID"`

	Relationship MappingRelationship `gorm:"type:varchar(32);not null"`
}
