package compliance

import (
	"log/slog"

	"compliance-hub/internal/models"
)

// RelatedControl is one secondary control shown next to a primary control.
type RelatedControl struct {
	ID           uint   `json:"id"`
	ControlID    string `json:"control_id"`
	Title        string `json:"title"`
	Relationship string `json:"relationship_type"`
}

// ResolveMappings groups mappings by primary control id, keeping input order inside each group.
// Mappings whose primary or secondary control was not loaded are skipped with a warning.
func ResolveMappings(mappings []models.ControlMapping, log *slog.Logger) map[uint][]RelatedControl {
	out := make(map[uint][]RelatedControl)
	for _, m := range mappings {
		if m.PrimaryControl.ID == 0 || m.SecondaryControl.ID == 0 {
			if log != nil {
				log.Warn("control mapping references a missing control, skipping",
					"mapping_id", m.ID,
					"primary_control_id", m.PrimaryControlID,
					"secondary_control_id", m.SecondaryControlID)
			}
			continue
		}
		out[m.PrimaryControl.ID] = append(out[m.PrimaryControl.ID], RelatedControl{
			ID:           m.SecondaryControl.ID,
			ControlID:    m.SecondaryControl.Code,
			Title:        m.SecondaryControl.Title,
			Relationship: string(m.Relationship),
		})
	}
	return out
}
