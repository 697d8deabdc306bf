package compliance

import "errors"

// Validation failures. Handlers report these to the submitter; nothing is persisted.
var (
	ErrNoOrganization   = errors.New("no organization for user")
	ErrNoEntries        = errors.New("submission has no control entries")
	ErrDuplicateControl = errors.New("control submitted more than once")
	ErrInvalidStatus    = errors.New("invalid compliance status")
	ErrInvalidRiskLevel = errors.New("invalid risk level")
	ErrUnknownControl   = errors.New("unknown control")

	ErrSelfMapping         = errors.New("control cannot be mapped to itself")
	ErrMappingExists       = errors.New("mapping already exists")
	ErrInvalidRelationship = errors.New("invalid relationship type")
	ErrAssessmentNotFound  = errors.New("assessment not found")
)

// IsValidation reports whether err is a submitter-correctable failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrNoOrganization, ErrNoEntries, ErrDuplicateControl, ErrInvalidStatus,
		ErrInvalidRiskLevel, ErrUnknownControl, ErrSelfMapping, ErrMappingExists,
		ErrInvalidRelationship,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
