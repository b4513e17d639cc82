package shared

import (
	"slices"

	"github.com/google/uuid"
)

// Actor identifies who performs an operation and the roles they hold
type Actor struct {
	UserID   *uuid.UUID
	Username string
	Roles    []string
}

// HasRole reports whether the actor holds the given role.
// An empty role name never matches.
func (a Actor) HasRole(role string) bool {
	if role == "" {
		return false
	}
	return slices.Contains(a.Roles, role)
}

// Display returns a label for audit trails
func (a Actor) Display() string {
	if a.Username != "" {
		return a.Username
	}
	if a.UserID != nil {
		return a.UserID.String()
	}
	return "Administrator"
}
