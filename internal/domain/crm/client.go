package crm

import (
	"strings"

	"github.com/investkaro/backend/internal/domain/shared"
)

// Client is a row in the master lead pool. Mobile is the natural key;
// imports and manual entry both dedupe on it.
type Client struct {
	shared.BaseEntity
	Name       string
	Mobile     string
	Email      string
	City       string
	IsAssigned bool
}

// NewClient creates an unassigned client in the master pool
func NewClient(name, mobile, email, city string) (*Client, error) {
	name = strings.TrimSpace(name)
	mobile = normalizeMobile(mobile)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client name is required")
	}
	if mobile == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "client mobile is required")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Mobile:     mobile,
		Email:      strings.TrimSpace(email),
		City:       strings.TrimSpace(city),
		IsAssigned: false,
	}, nil
}

// MarkAssigned flags the client as handed to an agent. Idempotent.
func (c *Client) MarkAssigned() {
	if !c.IsAssigned {
		c.IsAssigned = true
		c.Touch()
	}
}

// MarkUnassigned returns the client to the pool
func (c *Client) MarkUnassigned() {
	if c.IsAssigned {
		c.IsAssigned = false
		c.Touch()
	}
}

func normalizeMobile(mobile string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(mobile) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	// Strip a leading country code for 10-digit Indian numbers
	if len(s) == 12 && strings.HasPrefix(s, "91") {
		s = s[2:]
	}
	return s
}
