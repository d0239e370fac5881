package model

// Roles.
const (
	RoleAdmin     = "admin"
	RoleLogistics = "logistics"
	RoleCadet     = "cadet"
)

// RolePermissions is the capability set granted to a role.
type RolePermissions struct {
	Name           string `json:"name"`
	CanEdit        bool   `json:"canEdit"`
	CanDelete      bool   `json:"canDelete"`
	CanCheckout    bool   `json:"canCheckout"`
	CanManageUsers bool   `json:"canManageUsers"`
}

// Capability names a single permission.
type Capability int

// Capabilities.
const (
	CapEdit Capability = iota + 1
	CapDelete
	CapCheckout
	CapManageUsers
)

func (c Capability) String() string {
	switch c {
	case CapEdit:
		return "edit"
	case CapDelete:
		return "delete"
	case CapCheckout:
		return "checkout"
	case CapManageUsers:
		return "manage-users"
	default:
		return "unknown"
	}
}

var rolePermissions = map[string]RolePermissions{
	RoleAdmin: {
		Name:           "Admin (Instructor)",
		CanEdit:        true,
		CanDelete:      true,
		CanCheckout:    true,
		CanManageUsers: true,
	},
	RoleLogistics: {
		Name:        "Logistics Officer",
		CanEdit:     true,
		CanCheckout: true,
	},
	RoleCadet: {
		Name:        "Cadet User",
		CanCheckout: true,
	},
}

// PermissionsFor returns the capability set for role. Unknown roles get no
// capabilities (fail-closed).
func PermissionsFor(role string) RolePermissions {
	return rolePermissions[role]
}

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// RoleLabel returns the display name of role, or role itself when unknown.
func RoleLabel(role string) string {
	if p, ok := rolePermissions[role]; ok {
		return p.Name
	}
	return role
}

// Allows reports whether the permission set grants c.
func (p RolePermissions) Allows(c Capability) bool {
	switch c {
	case CapEdit:
		return p.CanEdit
	case CapDelete:
		return p.CanDelete
	case CapCheckout:
		return p.CanCheckout
	case CapManageUsers:
		return p.CanManageUsers
	}
	return false
}
