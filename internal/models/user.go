package models

import "strings"

// Role is a role tag carried by a user.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// RoleAssignment grants a role, optionally scoped to an object such as a
// franchise. The scope is informational only.
type RoleAssignment struct {
	Role     Role `json:"role"`
	ObjectID ID   `json:"objectId,omitempty"`
}

// User is the authenticated principal as returned by the service.
type User struct {
	ID       ID               `json:"id,omitempty"`
	Name     string           `json:"name,omitempty"`
	Email    string           `json:"email,omitempty"`
	Password string           `json:"password,omitempty"`
	Roles    []RoleAssignment `json:"roles,omitempty"`
}

// Initials returns the header badge text, e.g. "JD" for "John Doe".
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Fields(u.Name) {
		for _, r := range part {
			b.WriteString(strings.ToUpper(string(r)))
			break
		}
	}
	return b.String()
}
