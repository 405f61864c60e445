package enums

import "fmt"

// Role represents a marketplace actor role stored on the user record.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
	RoleUnset  Role = "unset"
)

var validRoles = []Role{
	RoleBuyer,
	RoleSeller,
	RoleAdmin,
	RoleUnset,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAssigned reports whether the role grants any privilege at all.
func (r Role) IsAssigned() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts raw input into a Role. Empty input maps to RoleUnset so
// documents written before role assignment stay readable.
func ParseRole(value string) (Role, error) {
	if value == "" {
		return RoleUnset, nil
	}
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
