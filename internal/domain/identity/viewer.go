package identity

import "github.com/google/uuid"

// Viewer is the authenticated identity a request acts as, resolved from
// token claims. Services authorize against it; they never authenticate.
type Viewer struct {
	ID        uuid.UUID
	Role      Role
	ManagerID *uuid.UUID
}

// IsAdmin reports whether the viewer holds the admin role
func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// IsManager reports whether the viewer holds the manager role
func (v Viewer) IsManager() bool {
	return v.Role == RoleManager
}
