package payload

import (
	"strings"

	"github.com/cccteam/authstate/authzsnap"
	"github.com/cccteam/ccc/accesstypes"
)

const managePrefix = "Manage"

// expandableResources is the closed set of resources whose legacy
// Manage<Resource> permission expands into fine-grained equivalents.
// A Manage* name outside this set passes through unexpanded.
var expandableResources = []string{
	"Projects",
	"Schemas",
	"GlobalSchemas",
	"OrderFlow",
	"Batches",
	"Users",
	"Roles",
	"Tenants",
}

var expansionVerbs = []string{"Create", "View", "Update", "Delete"}

// Normalize converts a decoded payload into a canonical Snapshot. It
// never fails: a nil payload yields the empty snapshot, and malformed
// entries are carried as-is or dropped when nameless.
//
// Normalization expands each legacy Manage<Resource> permission into
// Create/View/Update/Delete synthetics (skipping names already present)
// and, when the backend issued no roles at all, synthesizes a single
// display role from the permission names. The inferred role is a display
// heuristic only and is marked as such on the snapshot; callers must not
// treat it as a security decision point.
func Normalize(u *CurrentUser) *authzsnap.Snapshot {
	if u == nil {
		return authzsnap.Empty()
	}

	subject := authzsnap.Subject{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}

	context := authzsnap.Context{
		TenantID:    u.TenantID,
		TenantName:  u.TenantName,
		ProjectID:   u.ProjectID,
		ProjectName: u.ProjectName,
	}

	roles := normalizeRoles(u.Roles)
	permissions := expandPermissions(mergePermissions(u.Permissions, u.Roles))

	inferred := false
	if len(roles) == 0 {
		if name := inferRoleName(permissions); name != "" {
			roles = []authzsnap.Role{{Name: name}}
			inferred = true
		}
	}

	s := authzsnap.New(subject, roles, permissions, context)
	s.InferredRole = inferred

	return s
}

// normalizeRoles applies the RoleName alias shim and drops entries with
// no name under either field. The shim is idempotent: a role that
// already carries the canonical name is untouched.
func normalizeRoles(raw []RawRole) []authzsnap.Role {
	var roles []authzsnap.Role
	for _, r := range raw {
		name := r.Name
		if name == "" {
			name = r.RoleName
		}
		if name == "" {
			continue
		}

		role := authzsnap.Role{
			ID:          r.ID,
			Name:        name,
			Description: r.Description,
		}
		for _, p := range r.Permissions {
			if p.Name == "" {
				continue
			}
			role.Permissions = append(role.Permissions, authzsnap.Permission{
				Name:        accesstypes.Permission(p.Name),
				Description: p.Description,
			})
		}
		roles = append(roles, role)
	}

	return roles
}

// mergePermissions folds role-embedded permissions into the session
// permission list, dropping nameless entries and case-insensitive
// duplicates. First occurrence wins, preserving its casing.
func mergePermissions(direct []RawPermission, roles []RawRole) []authzsnap.Permission {
	seen := make(map[string]struct{})
	var permissions []authzsnap.Permission

	add := func(p RawPermission) {
		if p.Name == "" {
			return
		}
		key := strings.ToLower(p.Name)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		permissions = append(permissions, authzsnap.Permission{
			Name:        accesstypes.Permission(p.Name),
			Description: p.Description,
		})
	}

	for _, p := range direct {
		add(p)
	}
	for _, r := range roles {
		for _, p := range r.Permissions {
			add(p)
		}
	}

	return permissions
}

// expandPermissions appends the fine-grained synthetics for each legacy
// Manage<Resource> permission. Expansion only adds entries: the legacy
// permission itself is retained, and a synthetic is skipped when its
// name already exists (case-insensitively) in the set.
func expandPermissions(permissions []authzsnap.Permission) []authzsnap.Permission {
	present := make(map[string]struct{}, len(permissions))
	for _, p := range permissions {
		present[strings.ToLower(string(p.Name))] = struct{}{}
	}

	out := permissions
	for _, p := range permissions {
		resource, ok := manageResource(string(p.Name))
		if !ok {
			continue
		}
		for _, verb := range expansionVerbs {
			synthetic := verb + resource
			key := strings.ToLower(synthetic)
			if _, exists := present[key]; exists {
				continue
			}
			present[key] = struct{}{}
			out = append(out, authzsnap.Permission{Name: accesstypes.Permission(synthetic)})
		}
	}

	return out
}

// manageResource returns the resource a Manage* permission targets, and
// whether it is in the expandable set.
func manageResource(name string) (string, bool) {
	if !strings.HasPrefix(name, managePrefix) {
		return "", false
	}
	resource := name[len(managePrefix):]
	for _, r := range expandableResources {
		if resource == r {
			return r, true
		}
	}

	return "", false
}

// inferRoleName derives a display role from permission names when the
// backend issued none. Names ending in "Tenants" indicate product-owner
// scope; otherwise names ending in "Projects" indicate tenant-admin
// scope.
func inferRoleName(permissions []authzsnap.Permission) string {
	hasSuffix := func(suffix string) bool {
		for _, p := range permissions {
			if strings.HasSuffix(string(p.Name), suffix) {
				return true
			}
		}

		return false
	}

	switch {
	case hasSuffix("Tenants"):
		return "Product Owner"
	case hasSuffix("Projects"):
		return "Tenant Admin"
	}

	return ""
}
