// Package policy centralizes role-based authorization decisions. Endpoints
// declare the action they perform; the middleware asks Authorize instead of
// comparing role strings ad hoc.
package policy

import "github.com/SkyVence/project-avims-sub001/internal/model"

// Action names a capability a request needs.
type Action string

const (
	ReadInventory  Action = "inventory:read"
	WriteInventory Action = "inventory:write"
	ViewReports    Action = "reports:view"
	ManageTaxonomy Action = "taxonomy:manage"
	ManageUsers    Action = "users:manage"
	ViewAuditLog   Action = "audit:view"
)

var grants = map[string]map[Action]bool{
	model.RoleUser: {
		ReadInventory:  true,
		WriteInventory: true,
		ViewReports:    true,
	},
	model.RoleAdmin: {
		ReadInventory:  true,
		WriteInventory: true,
		ViewReports:    true,
		ManageTaxonomy: true,
		ManageUsers:    true,
		ViewAuditLog:   true,
	},
}

// Authorize reports whether the given role may perform the action.
// Unknown roles are denied everything.
func Authorize(role string, action Action) bool {
	return grants[role][action]
}
