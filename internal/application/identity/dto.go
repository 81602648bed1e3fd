package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/identity"
)

// LoginInput contains login credentials
type LoginInput struct {
	Username string
	Password string
}

// LoginResult contains the token pair and the logged-in profile
type LoginResult struct {
	AccessToken           string      `json:"access_token"`
	RefreshToken          string      `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
	TokenType             string      `json:"token_type"`
	User                  ProfileInfo `json:"user"`
}

// RefreshResult contains a refreshed token pair
type RefreshResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ProfileInfo is the profile shape returned to the presentation layer
type ProfileInfo struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	ManagerID   *uuid.UUID `json:"manager_id,omitempty"`
	ManagerName string     `json:"manager_name,omitempty"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateUserInput contains fields for creating a profile
type CreateUserInput struct {
	Username    string
	DisplayName string
	Password    string
	Role        string
	ManagerID   *uuid.UUID
}

// ChangeRoleInput moves a profile to a new role and manager
type ChangeRoleInput struct {
	UserID    uuid.UUID
	Role      string
	ManagerID *uuid.UUID
}

// ToProfileInfo maps a domain profile to its response shape
func ToProfileInfo(p *identity.Profile) ProfileInfo {
	return ProfileInfo{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		ManagerID:   p.ManagerID,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
