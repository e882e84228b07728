package domain

import (
	"fmt"
	"strings"
)

// Role is the single role a user holds. The set of roles is closed.
type Role string

const (
	RoleAttendee  Role = "ATTENDEE"
	RoleOrganizer Role = "ORGANIZER"
)

// AllRoles lists every role the system knows about
var AllRoles = []Role{RoleAttendee, RoleOrganizer}

// ParseRole converts a case-insensitive name into a Role
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAttendee, RoleOrganizer:
		return true
	}
	return false
}

// Authority is the policy-matching name carried in tokens, e.g. ROLE_ORGANIZER
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

func (r Role) String() string {
	return string(r)
}
