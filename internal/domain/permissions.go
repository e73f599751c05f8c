package domain

import "errors"

// ErrUnknownRole is returned whenever a role falls outside the three known
// values. Unknown roles fail loudly rather than falling back to the
// end-user view.
var ErrUnknownRole = errors.New("unknown role")

// Capability names a single permitted action.
type Capability string

const (
	CapView          Capability = "view"
	CapCreate        Capability = "create"
	CapEdit          Capability = "edit"
	CapDelete        Capability = "delete"
	CapManageUsers   Capability = "manage_users"
	CapManageContent Capability = "manage_content"
	CapAccessReports Capability = "access_reports"
	CapAccessAI      Capability = "access_ai"
)

// Permission is the static capability record for one role.
type Permission struct {
	CanView          bool
	CanCreate        bool
	CanEdit          bool
	CanDelete        bool
	CanManageUsers   bool
	CanManageContent bool
	CanAccessReports bool
	CanAccessAI      bool
}

// Allows reports whether the capability is granted.
func (p Permission) Allows(cap Capability) bool {
	switch cap {
	case CapView:
		return p.CanView
	case CapCreate:
		return p.CanCreate
	case CapEdit:
		return p.CanEdit
	case CapDelete:
		return p.CanDelete
	case CapManageUsers:
		return p.CanManageUsers
	case CapManageContent:
		return p.CanManageContent
	case CapAccessReports:
		return p.CanAccessReports
	case CapAccessAI:
		return p.CanAccessAI
	default:
		return false
	}
}

// RolePermissions looks up the immutable capability record for a role.
// The mapping is defined at process start and never instantiated per-user.
func RolePermissions(role Role) (Permission, error) {
	switch role {
	case RoleUser:
		return Permission{
			CanView:     true,
			CanCreate:   true,
			CanEdit:     true,
			CanAccessAI: true,
		}, nil
	case RoleStaff:
		return Permission{
			CanView:          true,
			CanCreate:        true,
			CanEdit:          true,
			CanManageContent: true,
			CanAccessReports: true,
			CanAccessAI:      true,
		}, nil
	case RoleAdmin:
		return Permission{
			CanView:          true,
			CanCreate:        true,
			CanEdit:          true,
			CanDelete:        true,
			CanManageUsers:   true,
			CanManageContent: true,
			CanAccessReports: true,
			CanAccessAI:      true,
		}, nil
	default:
		return Permission{}, ErrUnknownRole
	}
}
