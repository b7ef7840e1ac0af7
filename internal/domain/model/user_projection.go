//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"fmt"
	"strings"
)

// UserField names a selectable column of the users table.
// password_hash is deliberately absent; credentials are only reachable through Credential.
type UserField string

const (
	UserFieldID        UserField = "id"
	UserFieldUsername  UserField = "username"
	UserFieldCreatedAt UserField = "created_at"
	UserFieldUpdatedAt UserField = "updated_at"
)

var allUserFields = []UserField{UserFieldID, UserFieldUsername, UserFieldCreatedAt, UserFieldUpdatedAt}

// Valid reports whether f is a known selectable field.
func (f UserField) Valid() bool {
	switch f {
	case UserFieldID, UserFieldUsername, UserFieldCreatedAt, UserFieldUpdatedAt:
		return true
	default:
		return false
	}
}

// UserProjection is a closed set of user fields to load. The zero value selects every field.
type UserProjection struct {
	fields []UserField
}

// AllUserFields selects every public user field.
func AllUserFields() UserProjection { return UserProjection{} }

// NewUserProjection builds a projection, rejecting unknown fields.
// The id column is always included.
func NewUserProjection(fields ...UserField) (UserProjection, error) {
	seen := map[UserField]bool{UserFieldID: true}
	out := []UserField{UserFieldID}
	for _, f := range fields {
		if !f.Valid() {
			return UserProjection{}, fmt.Errorf("unknown user field %q", f)
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return UserProjection{fields: out}, nil
}

// ParseUserProjection parses a comma-separated field list such as "id,username".
// An empty string selects every field.
func ParseUserProjection(raw string) (UserProjection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AllUserFields(), nil
	}
	parts := strings.Split(raw, ",")
	fields := make([]UserField, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		fields = append(fields, UserField(p))
	}
	return NewUserProjection(fields...)
}

// Fields returns the selected fields in a stable order, id first.
func (p UserProjection) Fields() []UserField {
	if len(p.fields) == 0 {
		out := make([]UserField, len(allUserFields))
		copy(out, allUserFields)
		return out
	}
	out := make([]UserField, len(p.fields))
	copy(out, p.fields)
	return out
}

// Includes reports whether f is selected.
func (p UserProjection) Includes(f UserField) bool {
	for _, sel := range p.Fields() {
		if sel == f {
			return true
		}
	}
	return false
}

// Columns returns the SQL column names for the projection.
func (p UserProjection) Columns() []string {
	fields := p.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f)
	}
	return cols
}

// Apply zeroes the fields of u that the projection does not select.
func (p UserProjection) Apply(u User) User {
	out := User{ID: u.ID}
	if p.Includes(UserFieldUsername) {
		out.Username = u.Username
	}
	if p.Includes(UserFieldCreatedAt) {
		out.CreatedAt = u.CreatedAt
	}
	if p.Includes(UserFieldUpdatedAt) {
		out.UpdatedAt = u.UpdatedAt
	}
	return out
}
