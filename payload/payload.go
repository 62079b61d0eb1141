// Package payload decodes the raw "current user" document returned by the
// authorization endpoint and normalizes it into an authzsnap.Snapshot.
//
// The backend emits field names in camelCase or PascalCase depending on
// which service produced the document. All casing tolerance lives in this
// package: the extraction stage tries camelCase first, PascalCase second,
// and degrades to a typed zero value when both are absent, so everything
// downstream works with one strongly-typed shape.
package payload

import (
	"encoding/json"
	"time"

	"github.com/go-playground/errors/v5"
)

// CurrentUser is the decoded raw payload, prior to normalization.
type CurrentUser struct {
	ID          string
	Email       string
	DisplayName string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Roles       []RawRole
	Permissions []RawPermission

	TenantID    string
	TenantName  string
	ProjectID   string
	ProjectName string
}

// RawRole is a role entry as it appears on the wire. Name may arrive
// under the legacy RoleName alias.
type RawRole struct {
	ID          string
	Name        string
	RoleName    string
	Description string
	Permissions []RawPermission
}

// RawPermission is a permission entry as it appears on the wire.
type RawPermission struct {
	Name        string
	Description string
}

// fields is one level of the raw document, keyed without interpretation.
type fields map[string]json.RawMessage

// lookup tries the camelCase key first, then the PascalCase key.
func (f fields) lookup(camel, pascal string) (json.RawMessage, bool) {
	if raw, ok := f[camel]; ok && !isNull(raw) {
		return raw, true
	}
	if raw, ok := f[pascal]; ok && !isNull(raw) {
		return raw, true
	}

	return nil, false
}

func (f fields) str(camel, pascal string) string {
	raw, ok := f.lookup(camel, pascal)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}

	return s
}

func (f fields) boolean(camel, pascal string) bool {
	raw, ok := f.lookup(camel, pascal)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}

	return b
}

func (f fields) timestamp(camel, pascal string) time.Time {
	raw, ok := f.lookup(camel, pascal)
	if !ok {
		return time.Time{}
	}
	var t time.Time
	if err := json.Unmarshal(raw, &t); err != nil {
		return time.Time{}
	}

	return t
}

func (f fields) array(camel, pascal string) []fields {
	raw, ok := f.lookup(camel, pascal)
	if !ok {
		return nil
	}
	var items []fields
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	return items
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// Decode parses the raw authorization document. Only a document that is
// not valid JSON at the top level is an error; individual missing or
// malformed fields degrade to zero values so authorization fails closed
// instead of crashing.
func Decode(data []byte) (*CurrentUser, error) {
	var doc fields
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal()")
	}
	if doc == nil {
		return nil, nil
	}

	u := &CurrentUser{
		ID:          doc.str("id", "Id"),
		Email:       doc.str("email", "Email"),
		DisplayName: doc.str("displayName", "DisplayName"),
		Active:      doc.boolean("isActive", "IsActive"),
		CreatedAt:   doc.timestamp("createdAt", "CreatedAt"),
		UpdatedAt:   doc.timestamp("updatedAt", "UpdatedAt"),
		TenantID:    doc.str("currentTenantId", "CurrentTenantId"),
		TenantName:  doc.str("currentTenantName", "CurrentTenantName"),
		ProjectID:   doc.str("currentProjectId", "CurrentProjectId"),
		ProjectName: doc.str("currentProjectName", "CurrentProjectName"),
	}

	for _, rf := range doc.array("roles", "Roles") {
		role := RawRole{
			ID:          rf.str("id", "Id"),
			Name:        rf.str("name", "Name"),
			RoleName:    rf.str("roleName", "RoleName"),
			Description: rf.str("description", "Description"),
		}
		for _, pf := range rf.array("permissions", "Permissions") {
			role.Permissions = append(role.Permissions, decodePermission(pf))
		}
		u.Roles = append(u.Roles, role)
	}

	for _, pf := range doc.array("permissions", "Permissions") {
		u.Permissions = append(u.Permissions, decodePermission(pf))
	}

	return u, nil
}

func decodePermission(pf fields) RawPermission {
	return RawPermission{
		Name:        pf.str("name", "Name"),
		Description: pf.str("description", "Description"),
	}
}
