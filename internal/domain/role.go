package domain

// Role is the account role stored locally and mirrored into the identity
// provider as a custom claim.
type Role string

const (
	RoleOwner    Role = "OWNER"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ParseUserRole returns the role if it is one of the two user roles.
// RoleOwner is reserved for owner accounts and never valid here.
func ParseUserRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager:
		return RoleManager, true
	case RoleEmployee:
		return RoleEmployee, true
	default:
		return "", false
	}
}

// String returns the wire form.
func (r Role) String() string { return string(r) }
