package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"compliance-hub/internal/compliance"
)

const controlFieldPrefix = "control_"

// parseSubmissionForm turns control_<id>, risk_<id>, evidence_<id> and action_<id>
// fields into a Submission ordered by control id. Controls left without a status
// were not assessed and are skipped.
func parseSubmissionForm(form url.Values) (compliance.Submission, error) {
	sub := compliance.Submission{Title: form.Get("title")}

	for key := range form {
		if !strings.HasPrefix(key, controlFieldPrefix) {
			continue
		}
		suffix := strings.TrimPrefix(key, controlFieldPrefix)
		id, err := strconv.ParseUint(suffix, 10, 64)
		if err != nil || id == 0 {
			return compliance.Submission{}, fmt.Errorf("%w: field %q", compliance.ErrUnknownControl, key)
		}

		status := strings.TrimSpace(form.Get(key))
		if status == "" {
			continue
		}
		sub.Entries = append(sub.Entries, compliance.Entry{
			ControlID:      uint(id),
			Status:         status,
			RiskLevel:      form.Get("risk_" + suffix),
			Evidence:       form.Get("evidence_" + suffix),
			ActionRequired: form.Get("action_" + suffix),
		})
	}

	sort.Slice(sub.Entries, func(i, j int) bool {
		return sub.Entries[i].ControlID < sub.Entries[j].ControlID
	})
	return sub, nil
}

// validationMessage is the text shown to the submitter for a validation error.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, compliance.ErrNoOrganization):
		return "Create your organization before submitting an assessment"
	case errors.Is(err, compliance.ErrNoEntries):
		return "Assess at least one control"
	case errors.Is(err, compliance.ErrDuplicateControl):
		return "A control was answered more than once"
	case errors.Is(err, compliance.ErrInvalidStatus):
		return "Unknown compliance status"
	case errors.Is(err, compliance.ErrInvalidRiskLevel):
		return "Unknown risk level"
	case errors.Is(err, compliance.ErrUnknownControl):
		return "Unknown control"
	case errors.Is(err, compliance.ErrSelfMapping):
		return "A control cannot be mapped to itself"
	case errors.Is(err, compliance.ErrMappingExists):
		return "This mapping already exists"
	case errors.Is(err, compliance.ErrInvalidRelationship):
		return "Unknown relationship type"
	}
	return "Invalid data"
}
