// Package rbac decides which roles may perform which actions.
package rbac

import (
	"fmt"

	"compliance-hub/internal/models"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Resources and actions checked by the router.
const (
	ResourceControls     = "controls"
	ResourceReports      = "reports"
	ResourceAssessments  = "assessments"
	ResourceOrganization = "organization"
	ResourceMappings     = "mappings"
	ResourceAudit        = "audit"

	ActionRead    = "read"
	ActionReadAny = "read_any"
	ActionWrite   = "write"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

var policies = [][]string{
	{string(models.RoleViewer), ResourceControls, ActionRead},
	{string(models.RoleViewer), ResourceReports, ActionRead},

	{string(models.RoleAssessor), ResourceAssessments, ActionWrite},
	{string(models.RoleAssessor), ResourceOrganization, ActionWrite},

	{string(models.RoleAdmin), ResourceMappings, ActionWrite},
	{string(models.RoleAdmin), ResourceAudit, ActionRead},
	{string(models.RoleAdmin), ResourceReports, ActionReadAny},
}

// role inherits everything granted to the second role
var inheritance = [][]string{
	{string(models.RoleAssessor), string(models.RoleViewer)},
	{string(models.RoleAdmin), string(models.RoleAssessor)},
}

type Enforcer struct {
	e *casbin.Enforcer
}

func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("rbac model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("rbac enforcer: %w", err)
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("rbac policies: %w", err)
	}
	if _, err := e.AddGroupingPolicies(inheritance); err != nil {
		return nil, fmt.Errorf("rbac roles: %w", err)
	}
	return &Enforcer{e: e}, nil
}

// Allowed reports whether role may perform act on obj. Errors deny.
func (en *Enforcer) Allowed(role models.UserRole, obj, act string) bool {
	if en == nil || en.e == nil || role == "" {
		return false
	}
	ok, err := en.e.Enforce(string(role), obj, act)
	return err == nil && ok
}
