package database

import (
	_ "embed"
	"fmt"
	"log/slog"

	"compliance-hub/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	Frameworks []CatalogFramework `yaml:"frameworks"`
	Mappings   []CatalogMapping   `yaml:"mappings"`
}

type CatalogFramework struct {
	Name        string           `yaml:"name"`
	Version     string           `yaml:"version"`
	Description string           `yaml:"description"`
	Controls    []CatalogControl `yaml:"controls"`
}

type CatalogControl struct {
	Code        string `yaml:"code"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type CatalogRef struct {
	Framework string `yaml:"framework"`
	Code      string `yaml:"code"`
}

type CatalogMapping struct {
	Primary      CatalogRef `yaml:"primary"`
	Secondary    CatalogRef `yaml:"secondary"`
	Relationship string     `yaml:"relationship"`
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}

// SeedCatalog loads the embedded framework catalog once. An existing catalog is left untouched.
func SeedCatalog(db *gorm.DB, log *slog.Logger) error {
	var count int64
	if err := db.Model(&models.Framework{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalog, err := ParseCatalog(catalogYAML)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return seedCatalog(tx, catalog, log)
	})
}

func seedCatalog(tx *gorm.DB, catalog *Catalog, log *slog.Logger) error {
	controlIDs := make(map[CatalogRef]uint)

	for _, cf := range catalog.Frameworks {
		fw := models.Framework{
			Name:        cf.Name,
			Version:     cf.Version,
			Description: cf.Description,
		}
		if err := tx.Create(&fw).Error; err != nil {
			return fmt.Errorf("framework %s: %w", cf.Name, err)
		}
		for _, cc := range cf.Controls {
			ctrl := models.Control{
				FrameworkID: fw.ID,
				Code:        cc.Code,
				Title:       cc.Title,
				Description: cc.Description,
			}
			if err := tx.Create(&ctrl).Error; err != nil {
				return fmt.Errorf("control %s %s: %w", cf.Name, cc.Code, err)
			}
			controlIDs[CatalogRef{Framework: cf.Name, Code: cc.Code}] = ctrl.ID
		}
	}

	created := 0
	for _, cm := range catalog.Mappings {
		primaryID, ok1 := controlIDs[cm.Primary]
		secondaryID, ok2 := controlIDs[cm.Secondary]
		if !ok1 || !ok2 {
			log.Warn("catalog mapping references unknown control, skipping",
				"primary", cm.Primary.Framework+" "+cm.Primary.Code,
				"secondary", cm.Secondary.Framework+" "+cm.Secondary.Code)
			continue
		}
		m := models.ControlMapping{
			PrimaryControlID:   primaryID,
			SecondaryControlID: secondaryID,
			Relationship:       models.MappingRelationship(cm.Relationship),
		}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("mapping %s -> %s: %w", cm.Primary.Code, cm.Secondary.Code, err)
		}
		created++
	}

	log.Info("seeded framework catalog", "frameworks", len(catalog.Frameworks), "controls", len(controlIDs), "mappings", created)
	return nil
}
