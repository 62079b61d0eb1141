// Package authzsnap contains the normalized authorization state for a user
// within a tenant/project context. It is pure and free of transport concerns.
package authzsnap

import (
	"fmt"
	"strings"
	"time"

	"github.com/cccteam/ccc/accesstypes"
)

// Role is an application role as issued by the backend. Name retains the
// original casing for display; lookups are case-insensitive.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []Permission
}

// Permission is a named grant, optionally described. Uniqueness is by name
// within a snapshot.
type Permission struct {
	Name        accesstypes.Permission
	Description string
}

// Subject identifies the authenticated user a snapshot belongs to.
type Subject struct {
	ID          string
	Email       string
	DisplayName string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Context echoes the tenant/project selection the backend resolved the
// snapshot against. Empty IDs mean no selection (global scope).
type Context struct {
	TenantID    string
	TenantName  string
	ProjectID   string
	ProjectName string
}

// Snapshot is the canonical authorization state for one (user, tenant,
// project) triple. It is built in full by payload.Normalize and never
// mutated afterward, so readers may hold it across a context switch and
// observe a consistent view.
type Snapshot struct {
	Subject     Subject
	Roles       []Role
	Permissions []Permission
	Context     Context

	// InferredRole is set when the role list was synthesized from
	// permission names rather than issued by the backend. Display
	// heuristic only; predicates never grant on it alone.
	InferredRole bool

	permissionSet map[accesstypes.Permission]struct{}
	roleSet       map[string]struct{}
}

// New builds a Snapshot with its lookup sets populated. Roles' embedded
// permissions are merged into the permission set but not into the
// Permissions display slice.
func New(subject Subject, roles []Role, permissions []Permission, context Context) *Snapshot {
	s := &Snapshot{
		Subject:       subject,
		Roles:         roles,
		Permissions:   permissions,
		Context:       context,
		permissionSet: make(map[accesstypes.Permission]struct{}, len(permissions)),
		roleSet:       make(map[string]struct{}, len(roles)),
	}

	for _, p := range permissions {
		s.permissionSet[foldPermission(p.Name)] = struct{}{}
	}
	for _, r := range roles {
		s.roleSet[strings.ToLower(r.Name)] = struct{}{}
		for _, p := range r.Permissions {
			s.permissionSet[foldPermission(p.Name)] = struct{}{}
		}
	}

	return s
}

// Empty returns a snapshot with no subject, roles, or permissions. All
// predicates deny against it.
func Empty() *Snapshot {
	return New(Subject{}, nil, nil, Context{})
}

func foldPermission(p accesstypes.Permission) accesstypes.Permission {
	return accesstypes.Permission(strings.ToLower(string(p)))
}

// ContextKey identifies which snapshot applies. The zero value is the
// "no context selected" sentinel used for global scope. Structural
// equality makes it usable as a map key directly.
type ContextKey struct {
	TenantID  string
	ProjectID string
}

// None returns the sentinel key for global (no selection) scope.
func None() ContextKey {
	return ContextKey{}
}

// IsGlobal reports whether no tenant is selected.
func (k ContextKey) IsGlobal() bool {
	return k.TenantID == ""
}

// HasProject reports whether a project is selected.
func (k ContextKey) HasProject() bool {
	return k.ProjectID != ""
}

// String is for log display only; never use it as a cache key.
func (k ContextKey) String() string {
	if k.IsGlobal() {
		return "(global)"
	}
	if !k.HasProject() {
		return fmt.Sprintf("tenant=%s", k.TenantID)
	}

	return fmt.Sprintf("tenant=%s project=%s", k.TenantID, k.ProjectID)
}
