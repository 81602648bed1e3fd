package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/crm"
)

// ClientModel is the persistence model for the master lead pool.
type ClientModel struct {
	BaseModel
	Name       string `gorm:"type:varchar(200);not null"`
	Mobile     string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Email      string `gorm:"type:varchar(200)"`
	City       string `gorm:"type:varchar(100)"`
	IsAssigned bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity
func (m *ClientModel) ToDomain() *crm.Client {
	return &crm.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Mobile:     m.Mobile,
		Email:      m.Email,
		City:       m.City,
		IsAssigned: m.IsAssigned,
	}
}

// ClientModelFromDomain builds the persistence model from a domain Client
func ClientModelFromDomain(c *crm.Client) *ClientModel {
	m := &ClientModel{
		Name:       c.Name,
		Mobile:     c.Mobile,
		Email:      c.Email,
		City:       c.City,
		IsAssigned: c.IsAssigned,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// EngagementModel is the persistence model for client engagements.
type EngagementModel struct {
	BaseModel
	ClientID   uuid.UUID            `gorm:"type:uuid;not null;index"`
	AgentID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	Status     crm.EngagementStatus `gorm:"type:varchar(30);not null;default:'waiting'"`
	Note       string               `gorm:"type:text"`
	Segment    crm.Segment          `gorm:"type:varchar(20)"`
	State      string               `gorm:"type:varchar(100)"`
	FundAmount decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	AssignedAt time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (EngagementModel) TableName() string {
	return "engagements"
}

// ToDomain converts the persistence model to a domain Engagement entity
func (m *EngagementModel) ToDomain() *crm.Engagement {
	return &crm.Engagement{
		BaseEntity: m.BaseModel.ToDomain(),
		ClientID:   m.ClientID,
		AgentID:    m.AgentID,
		Status:     m.Status,
		Note:       m.Note,
		Segment:    m.Segment,
		State:      m.State,
		FundAmount: m.FundAmount,
		AssignedAt: m.AssignedAt,
	}
}

// EngagementModelFromDomain builds the persistence model from a domain Engagement
func EngagementModelFromDomain(e *crm.Engagement) *EngagementModel {
	m := &EngagementModel{
		ClientID:   e.ClientID,
		AgentID:    e.AgentID,
		Status:     e.Status,
		Note:       e.Note,
		Segment:    e.Segment,
		State:      e.State,
		FundAmount: e.FundAmount,
		AssignedAt: e.AssignedAt,
	}
	m.FromDomainBaseEntity(e.BaseEntity)
	return m
}
