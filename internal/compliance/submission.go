package compliance

import (
	"fmt"
	"strings"

	"compliance-hub/internal/models"
)

// Entry is the answer for one control.
type Entry struct {
	ControlID      uint   `json:"control_id"`
	Status         string `json:"status"`
	RiskLevel      string `json:"risk_level"`
	Evidence       string `json:"evidence"`
	ActionRequired string `json:"action_required"`
}

// Submission is a validated-at-the-boundary assessment payload.
type Submission struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Normalize trims fields, applies defaults and checks statuses, risk levels and duplicates.
// Control existence is checked by the Service against the store.
func (s *Submission) Normalize() error {
	s.Title = strings.TrimSpace(s.Title)
	if len(s.Entries) == 0 {
		return ErrNoEntries
	}

	seen := make(map[uint]struct{}, len(s.Entries))
	for i := range s.Entries {
		e := &s.Entries[i]
		e.Status = strings.TrimSpace(e.Status)
		e.RiskLevel = strings.TrimSpace(e.RiskLevel)
		e.Evidence = strings.TrimSpace(e.Evidence)
		e.ActionRequired = strings.TrimSpace(e.ActionRequired)

		if e.ControlID == 0 {
			return fmt.Errorf("%w: id 0", ErrUnknownControl)
		}
		if _, dup := seen[e.ControlID]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateControl, e.ControlID)
		}
		seen[e.ControlID] = struct{}{}

		if !models.ComplianceStatus(e.Status).Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
		}
		if e.RiskLevel == "" {
			e.RiskLevel = string(models.RiskMedium)
		}
		if !models.RiskLevel(e.RiskLevel).Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidRiskLevel, e.RiskLevel)
		}
	}
	return nil
}

// ControlIDs returns the submitted control ids in entry order.
func (s *Submission) ControlIDs() []uint {
	ids := make([]uint, 0, len(s.Entries))
	for _, e := range s.Entries {
		ids = append(ids, e.ControlID)
	}
	return ids
}
