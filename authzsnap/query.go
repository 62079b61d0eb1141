package authzsnap

import (
	"strings"

	"github.com/cccteam/ccc/accesstypes"
)

// RouteDescriptor declares the authorization constraints for a route or
// UI element. The zero value means no constraints (access granted).
//
// Evaluation order: a non-empty Permissions list wins outright, then the
// single Permission shorthand, then Roles. RequireAll selects the
// quantifier for whichever list is evaluated; the default is "any". An
// empty list is no constraint at that level, regardless of RequireAll.
type RouteDescriptor struct {
	Permission  accesstypes.Permission
	Permissions []accesstypes.Permission
	Roles       []string
	RequireAll  bool
}

// HasPermission reports whether the named permission (synthetics
// included) is present. Comparison is case-insensitive. A nil snapshot
// or empty name is always false.
func (s *Snapshot) HasPermission(name accesstypes.Permission) bool {
	if s == nil || name == "" {
		return false
	}
	_, ok := s.permissionSet[foldPermission(name)]

	return ok
}

// HasAnyPermission reports whether at least one of the named permissions
// is present. An empty list is false: no name was satisfied.
func (s *Snapshot) HasAnyPermission(names ...accesstypes.Permission) bool {
	for _, name := range names {
		if s.HasPermission(name) {
			return true
		}
	}

	return false
}

// HasAllPermissions reports whether every named permission is present.
// An empty list is vacuously true.
func (s *Snapshot) HasAllPermissions(names ...accesstypes.Permission) bool {
	if s == nil {
		return false
	}
	for _, name := range names {
		if !s.HasPermission(name) {
			return false
		}
	}

	return true
}

// HasRole reports whether the named role is present, case-insensitively.
func (s *Snapshot) HasRole(name string) bool {
	if s == nil || name == "" {
		return false
	}
	_, ok := s.roleSet[strings.ToLower(name)]

	return ok
}

// HasAnyRole reports whether at least one of the named roles is present.
func (s *Snapshot) HasAnyRole(names ...string) bool {
	for _, name := range names {
		if s.HasRole(name) {
			return true
		}
	}

	return false
}

// HasAllRoles reports whether every named role is present. An empty list
// is vacuously true.
func (s *Snapshot) HasAllRoles(names ...string) bool {
	if s == nil {
		return false
	}
	for _, name := range names {
		if !s.HasRole(name) {
			return false
		}
	}

	return true
}

// CanAccessRoute evaluates a RouteDescriptor against the snapshot.
// Permission constraints take precedence over role constraints; a
// descriptor with no constraints grants access. A nil snapshot denies
// any descriptor that carries a constraint.
func (s *Snapshot) CanAccessRoute(d RouteDescriptor) bool {
	switch {
	case len(d.Permissions) > 0:
		if d.RequireAll {
			return s.HasAllPermissions(d.Permissions...)
		}

		return s.HasAnyPermission(d.Permissions...)
	case d.Permission != "":
		return s.HasPermission(d.Permission)
	case len(d.Roles) > 0:
		if d.RequireAll {
			return s.HasAllRoles(d.Roles...)
		}

		return s.HasAnyRole(d.Roles...)
	}

	return true
}

// IsProductOwner reports whether the subject holds tenant-level powers.
// Heuristic for navigation and display; the backend remains
// authoritative for mutation.
func (s *Snapshot) IsProductOwner() bool {
	if s.HasAnyPermission("CreateTenants", "UpdateTenants", "DeleteTenants", "ManageTenants") {
		return true
	}

	return s.HasRole("Product Owner")
}

// IsTenantAdmin reports whether the subject holds project-level powers
// without tenant-level powers. Heuristic, as IsProductOwner.
func (s *Snapshot) IsTenantAdmin() bool {
	if s.HasAnyPermission("CreateProjects", "UpdateProjects", "DeleteProjects") &&
		!s.HasAnyPermission("CreateTenants", "UpdateTenants", "DeleteTenants") {
		return true
	}

	return s.HasRole("Tenant Admin")
}

// DisplayName returns the subject's display name, or "" for a nil
// snapshot.
func (s *Snapshot) DisplayName() string {
	if s == nil {
		return ""
	}

	return s.Subject.DisplayName
}

// Email returns the subject's email, or "" for a nil snapshot.
func (s *Snapshot) Email() string {
	if s == nil {
		return ""
	}

	return s.Subject.Email
}

// RoleNames returns the role names in their original casing, or nil
// when the snapshot is nil or holds no roles.
func (s *Snapshot) RoleNames() []string {
	if s == nil || len(s.Roles) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Roles))
	for _, r := range s.Roles {
		names = append(names, r.Name)
	}

	return names
}

// PermissionNames returns the permission names, synthetics included, in
// their original casing, or nil when the snapshot is nil or holds none.
func (s *Snapshot) PermissionNames() []accesstypes.Permission {
	if s == nil || len(s.Permissions) == 0 {
		return nil
	}
	names := make([]accesstypes.Permission, 0, len(s.Permissions))
	for _, p := range s.Permissions {
		names = append(names, p.Name)
	}

	return names
}
