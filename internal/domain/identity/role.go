package identity

// Role represents a profile's access level
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// CanVerifyPayments reports whether the role may verify or reject payments
func (r Role) CanVerifyPayments() bool {
	return r == RoleAdmin
}

// CanManageUsers reports whether the role may create users or change roles
func (r Role) CanManageUsers() bool {
	return r == RoleAdmin
}

// CanViewTeam reports whether the role can see data owned by subordinates
func (r Role) CanViewTeam() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanPostCompanyStrategy reports whether the role may post company-wide strategies
func (r Role) CanPostCompanyStrategy() bool {
	return r == RoleAdmin
}

// CanPostTeamStrategy reports whether the role may post strategies to its own team
func (r Role) CanPostTeamStrategy() bool {
	return r == RoleAdmin || r == RoleManager
}

// RequiresManager reports whether profiles with this role must have a manager assigned.
// Admins never carry a manager reference.
func (r Role) RequiresManager() bool {
	return r == RoleUser
}
