package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/investkaro/backend/internal/domain/collection"
)

// PaymentModel is the persistence model for payments.
type PaymentModel struct {
	BaseModel
	ClientID    uuid.UUID                `gorm:"type:uuid;not null;index"`
	OwnerUserID uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount      decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Date        time.Time                `gorm:"not null;index"`
	AccountRef  string                   `gorm:"type:varchar(100)"`
	Status      collection.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	VerifiedBy  *uuid.UUID               `gorm:"type:uuid"`
	VerifiedAt  *time.Time
	RejectNote  string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity
func (m *PaymentModel) ToDomain() *collection.Payment {
	return &collection.Payment{
		BaseEntity:  m.BaseModel.ToDomain(),
		ClientID:    m.ClientID,
		OwnerUserID: m.OwnerUserID,
		Amount:      m.Amount,
		Date:        m.Date,
		AccountRef:  m.AccountRef,
		Status:      m.Status,
		VerifiedBy:  m.VerifiedBy,
		VerifiedAt:  m.VerifiedAt,
		RejectNote:  m.RejectNote,
	}
}

// PaymentModelFromDomain builds the persistence model from a domain Payment
func PaymentModelFromDomain(p *collection.Payment) *PaymentModel {
	m := &PaymentModel{
		ClientID:    p.ClientID,
		OwnerUserID: p.OwnerUserID,
		Amount:      p.Amount,
		Date:        p.Date,
		AccountRef:  p.AccountRef,
		Status:      p.Status,
		VerifiedBy:  p.VerifiedBy,
		VerifiedAt:  p.VerifiedAt,
		RejectNote:  p.RejectNote,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// SplitModel is the persistence model for payment splits. Rows are
// immutable and only ever written alongside their payment.
type SplitModel struct {
	BaseModel
	PaymentID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_split_payment_recipient,priority:1"`
	RecipientUserID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_split_payment_recipient,priority:2;index"`
	Percentage      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SplitModel) TableName() string {
	return "payment_splits"
}

// ToDomain converts the persistence model to a domain Split entity
func (m *SplitModel) ToDomain() *collection.Split {
	return &collection.Split{
		BaseEntity:      m.BaseModel.ToDomain(),
		PaymentID:       m.PaymentID,
		RecipientUserID: m.RecipientUserID,
		Percentage:      m.Percentage,
		Amount:          m.Amount,
	}
}

// SplitModelFromDomain builds the persistence model from a domain Split
func SplitModelFromDomain(s *collection.Split) *SplitModel {
	m := &SplitModel{
		PaymentID:       s.PaymentID,
		RecipientUserID: s.RecipientUserID,
		Percentage:      s.Percentage,
		Amount:          s.Amount,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
