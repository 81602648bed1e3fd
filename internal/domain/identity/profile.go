package identity

import (
	"strings"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/shared"
)

// Profile is the identity aggregate root. It carries both the login
// credential (username + password hash) and the org placement (role,
// manager) used for report scoping.
type Profile struct {
	shared.BaseEntity
	Username     string
	DisplayName  string
	PasswordHash string
	Role         Role
	ManagerID    *uuid.UUID
	Active       bool
}

// NewProfile creates a profile with a pre-hashed password.
// Hashing lives in the infrastructure layer; the domain only stores the hash.
func NewProfile(username, displayName, passwordHash string, role Role, managerID *uuid.UUID) (*Profile, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "username is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "password hash is required")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown role: "+string(role))
	}
	if displayName == "" {
		displayName = username
	}
	p := &Profile{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         role,
		Active:       true,
	}
	if err := p.assignManager(role, managerID); err != nil {
		return nil, err
	}
	return p, nil
}

// ChangeRole moves the profile to a new role. Promoting to admin clears
// the manager reference; demoting to user without a manager is allowed,
// the profile then lands in the unassigned reporting bucket.
func (p *Profile) ChangeRole(role Role, managerID *uuid.UUID) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "unknown role: "+string(role))
	}
	if err := p.assignManager(role, managerID); err != nil {
		return err
	}
	p.Role = role
	p.Touch()
	return nil
}

// Reassign moves the profile under a different manager without a role change
func (p *Profile) Reassign(managerID *uuid.UUID) error {
	if err := p.assignManager(p.Role, managerID); err != nil {
		return err
	}
	p.Touch()
	return nil
}

func (p *Profile) assignManager(role Role, managerID *uuid.UUID) error {
	if role == RoleAdmin && managerID != nil {
		return shared.NewDomainError("INVALID_INPUT", "admin profiles cannot have a manager")
	}
	if managerID != nil && *managerID == p.ID {
		return shared.NewDomainError("INVALID_INPUT", "a profile cannot manage itself")
	}
	p.ManagerID = managerID
	return nil
}

// Deactivate disables login without deleting the row. Historic payments
// and splits keep referencing the profile.
func (p *Profile) Deactivate() {
	p.Active = false
	p.Touch()
}
