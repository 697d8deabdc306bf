package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"compliance-hub/internal/models"

	"gorm.io/gorm"
)

// Service reads and writes compliance data through gorm. The read side is
// recomputed from stored rows on every call.
type Service struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewService(db *gorm.DB, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{db: db, log: log}
}

// Results returns an assessment's results in store order with control and framework loaded.
func (s *Service) Results(ctx context.Context, assessmentID uint) ([]models.AssessmentResult, error) {
	var results []models.AssessmentResult
	err := s.db.WithContext(ctx).
		Preload("Control.Framework").
		Where("assessment_id = ?", assessmentID).
		Order("id asc").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("load results for assessment %d: %w", assessmentID, err)
	}
	return results, nil
}

// Aggregate builds the report for an assessment. An unknown id yields the zero report;
// callers that must tell the two apart use Assessment first.
func (s *Service) Aggregate(ctx context.Context, assessmentID uint) (Report, error) {
	results, err := s.Results(ctx, assessmentID)
	if err != nil {
		return Report{}, err
	}
	return Aggregate(results), nil
}

// ResolveMappings resolves every stored mapping.
func (s *Service) ResolveMappings(ctx context.Context) (map[uint][]RelatedControl, error) {
	var mappings []models.ControlMapping
	err := s.db.WithContext(ctx).
		Preload("PrimaryControl").
		Preload("SecondaryControl").
		Order("id asc").
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("load control mappings: %w", err)
	}
	return ResolveMappings(mappings, s.log), nil
}

// Frameworks returns every framework with its controls in catalog order.
func (s *Service) Frameworks(ctx context.Context) ([]models.Framework, error) {
	var frameworks []models.Framework
	err := s.db.WithContext(ctx).
		Preload("Controls", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Order("id asc").
		Find(&frameworks).Error
	if err != nil {
		return nil, fmt.Errorf("load frameworks: %w", err)
	}
	return frameworks, nil
}

// OrganizationFor returns the organization owned by userID or ErrNoOrganization.
func (s *Service) OrganizationFor(ctx context.Context, userID uint) (*models.Organization, error) {
	var org models.Organization
	err := s.db.WithContext(ctx).Where("owner_id = ?", userID).Order("id asc").First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoOrganization
	}
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Assessment loads one assessment with its organization, or ErrAssessmentNotFound.
func (s *Service) Assessment(ctx context.Context, id uint) (*models.Assessment, error) {
	var a models.Assessment
	err := s.db.WithContext(ctx).Preload("Organization").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssessmentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

type AssessmentSummary struct {
	Assessment models.Assessment
	Report     Report
}

// ListAssessments returns an organization's assessments newest first, each with its report.
func (s *Service) ListAssessments(ctx context.Context, orgID uint) ([]AssessmentSummary, error) {
	var assessments []models.Assessment
	err := s.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("created_at desc, id desc").
		Find(&assessments).Error
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}

	out := make([]AssessmentSummary, 0, len(assessments))
	for _, a := range assessments {
		rep, err := s.Aggregate(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, AssessmentSummary{Assessment: a, Report: rep})
	}
	return out, nil
}

// Submit validates a submission and persists the assessment with all its results
// in one transaction.
func (s *Service) Submit(ctx context.Context, ownerID uint, sub Submission) (*models.Assessment, error) {
	if err := sub.Normalize(); err != nil {
		return nil, err
	}

	org, err := s.OrganizationFor(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	ids := sub.ControlIDs()
	var known int64
	if err := s.db.WithContext(ctx).
		Model(&models.Control{}).
		Where("id IN ?", ids).
		Count(&known).Error; err != nil {
		return nil, err
	}
	if int(known) != len(ids) {
		return nil, ErrUnknownControl
	}

	title := sub.Title
	if title == "" {
		title = "Assessment " + time.Now().UTC().Format("2006-01-02 15:04")
	}

	assessment := models.Assessment{
		OrganizationID: org.ID,
		Title:          title,
	}
	var results []models.AssessmentResult

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&assessment).Error; err != nil {
			return err
		}
		results = make([]models.AssessmentResult, 0, len(sub.Entries))
		for _, e := range sub.Entries {
			results = append(results, models.AssessmentResult{
				AssessmentID:   assessment.ID,
				ControlID:      e.ControlID,
				Status:         models.ComplianceStatus(e.Status),
				RiskLevel:      models.RiskLevel(e.RiskLevel),
				Evidence:       e.Evidence,
				ActionRequired: e.ActionRequired,
			})
		}
		return tx.Create(&results).Error
	})
	if err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	assessment.Results = results
	s.log.Info("assessment submitted",
		"assessment_id", assessment.ID,
		"organization_id", org.ID,
		"results", len(results))
	return &assessment, nil
}

// CreateMapping stores a new mapping between two existing controls.
func (s *Service) CreateMapping(ctx context.Context, primaryID, secondaryID uint, rel models.MappingRelationship) (*models.ControlMapping, error) {
	switch rel {
	case models.RelationshipEquivalent, models.RelationshipRelated, models.RelationshipPartial:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRelationship, rel)
	}
	if primaryID == secondaryID {
		return nil, ErrSelfMapping
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Control{}).
		Where("id IN ?", []uint{primaryID, secondaryID}).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count != 2 {
		return nil, ErrUnknownControl
	}

	if err := db.Model(&models.ControlMapping{}).
		Where("primary_control_id = ? AND secondary_control_id = ?", primaryID, secondaryID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMappingExists
	}

	m := models.ControlMapping{
		PrimaryControlID:   primaryID,
		SecondaryControlID: secondaryID,
		Relationship:       rel,
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("save mapping: %w", err)
	}
	return &m, nil
}
