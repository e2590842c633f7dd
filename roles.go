package parks

// UserRole is the user's role
type UserRole = string

const (
	// RoleGuest can only browse public listings
	RoleGuest UserRole = "Guest"
	// RoleMember can browse protected records
	RoleMember UserRole = "Member"
	// RoleAdmin can create, edit, and delete records
	RoleAdmin UserRole = "Admin"
)

// DefaultRegistrationRole is assigned to every self-registered account
const DefaultRegistrationRole = RoleAdmin

// IsValidRole checks if the role is one of the predefined roles
func IsValidRole(r UserRole) bool {
	switch r {
	case RoleGuest, RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

// RoleIsAtLeast checks if a role meets the minimum required level
func RoleIsAtLeast(r, minRole UserRole) bool {
	roleHierarchy := map[UserRole]int{
		RoleGuest:  0,
		RoleMember: 1,
		RoleAdmin:  2,
	}

	currentLevel, exists := roleHierarchy[r]
	if !exists {
		return false
	}

	minLevel, exists := roleHierarchy[minRole]
	if !exists {
		return false
	}

	return currentLevel >= minLevel
}
