// Package compliance turns stored assessment results into framework-level
// compliance metrics and resolves cross-framework control mappings.
package compliance

import "compliance-hub/internal/models"

// FrameworkCompliance holds per-framework percentages for the two scored frameworks.
type FrameworkCompliance struct {
	ISO27001 float64 `json:"iso27001"`
	PCIDSS   float64 `json:"pcidss"`
}

// FrameworkScore is the raw tally behind a FrameworkCompliance percentage.
type FrameworkScore struct {
	Name       string  `json:"name"`
	Total      int     `json:"total"`
	Compliant  int     `json:"compliant"`
	Percentage float64 `json:"percentage"`
}

type DetailedResult struct {
	ID             uint   `json:"id"`
	ControlID      string `json:"control_id"`
	Title          string `json:"title"`
	Framework      string `json:"framework"`
	Status         string `json:"status"`
	RiskLevel      string `json:"risk_level"`
	ActionRequired string `json:"action_required"`
}

// Report is the aggregated view of one assessment. Percentages are in [0, 100] and not rounded.
type Report struct {
	StatusCounts        map[string]int      `json:"status_counts"`
	RiskCounts          map[string]int      `json:"risk_counts"`
	FrameworkCompliance FrameworkCompliance `json:"framework_compliance"`
	OverallCompliance   float64             `json:"overall_compliance"`
	DetailedResults     []DetailedResult    `json:"detailed_results"`
	Frameworks          []FrameworkScore    `json:"frameworks"`
}

// TotalResults is the number of results behind the report.
func (r Report) TotalResults() int {
	return len(r.DetailedResults)
}

// Aggregate computes a Report from results whose Control and Control.Framework are loaded.
// Results are reported in the order given. Unknown statuses and risk levels are counted
// under their own key. Only ISO 27001 and PCI DSS results feed the percentages.
func Aggregate(results []models.AssessmentResult) Report {
	statusCounts := make(map[string]int, len(models.ComplianceStatuses))
	for _, s := range models.ComplianceStatuses {
		statusCounts[string(s)] = 0
	}
	riskCounts := make(map[string]int, len(models.RiskLevels))
	for _, r := range models.RiskLevels {
		riskCounts[string(r)] = 0
	}

	iso := FrameworkScore{Name: models.FrameworkISO27001}
	pci := FrameworkScore{Name: models.FrameworkPCIDSS}

	detailed := make([]DetailedResult, 0, len(results))
	for _, res := range results {
		statusCounts[string(res.Status)]++
		riskCounts[string(res.RiskLevel)]++

		var bucket *FrameworkScore
		switch res.Control.Framework.Name {
		case models.FrameworkISO27001:
			bucket = &iso
		case models.FrameworkPCIDSS:
			bucket = &pci
		}
		if bucket != nil {
			bucket.Total++
			if res.Status == models.StatusCompliant {
				bucket.Compliant++
			}
		}

		detailed = append(detailed, DetailedResult{
			ID:             res.Control.ID,
			ControlID:      res.Control.Code,
			Title:          res.Control.Title,
			Framework:      res.Control.Framework.Name,
			Status:         string(res.Status),
			RiskLevel:      string(res.RiskLevel),
			ActionRequired: res.ActionRequired,
		})
	}

	iso.Percentage = percentage(iso.Compliant, iso.Total)
	pci.Percentage = percentage(pci.Compliant, pci.Total)

	return Report{
		StatusCounts: statusCounts,
		RiskCounts:   riskCounts,
		FrameworkCompliance: FrameworkCompliance{
			ISO27001: iso.Percentage,
			PCIDSS:   pci.Percentage,
		},
		// scoped to the two scored frameworks, not to every result
		OverallCompliance: percentage(iso.Compliant+pci.Compliant, iso.Total+pci.Total),
		DetailedResults:   detailed,
		Frameworks:        []FrameworkScore{iso, pci},
	}
}

func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
