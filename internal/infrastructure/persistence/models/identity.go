package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/identity"
)

// ProfileModel is the persistence model for the Profile domain entity.
type ProfileModel struct {
	BaseModel
	Username     string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName  string        `gorm:"type:varchar(200);not null"`
	PasswordHash string        `gorm:"type:varchar(200);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;default:'user';index"`
	ManagerID    *uuid.UUID    `gorm:"type:uuid;index"`
	Active       bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile entity
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		BaseEntity:   m.BaseModel.ToDomain(),
		Username:     m.Username,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		ManagerID:    m.ManagerID,
		Active:       m.Active,
	}
}

// ProfileModelFromDomain builds the persistence model from a domain Profile
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	m := &ProfileModel{
		Username:     p.Username,
		DisplayName:  p.DisplayName,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		ManagerID:    p.ManagerID,
		Active:       p.Active,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// AttendanceModel is the persistence model for attendance marks.
// (user_id, day) is unique; a row means present.
type AttendanceModel struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_day,priority:1"`
	Day    time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_day,priority:2"`
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendance"
}

// ToDomain converts the persistence model to a domain Attendance entity
func (m *AttendanceModel) ToDomain() *identity.Attendance {
	return &identity.Attendance{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Day:        m.Day,
	}
}

// AttendanceModelFromDomain builds the persistence model from a domain Attendance
func AttendanceModelFromDomain(a *identity.Attendance) *AttendanceModel {
	m := &AttendanceModel{
		UserID: a.UserID,
		Day:    a.Day,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// StrategyModel is the persistence model for dashboard strategy entries.
type StrategyModel struct {
	BaseModel
	AuthorID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Message      string                 `gorm:"type:text;not null"`
	Scope        identity.StrategyScope `gorm:"type:varchar(20);not null;index"`
	TargetTeamID *uuid.UUID             `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (StrategyModel) TableName() string {
	return "strategies"
}

// ToDomain converts the persistence model to a domain Strategy entity
func (m *StrategyModel) ToDomain() *identity.Strategy {
	return &identity.Strategy{
		BaseEntity:   m.BaseModel.ToDomain(),
		AuthorID:     m.AuthorID,
		Message:      m.Message,
		Scope:        m.Scope,
		TargetTeamID: m.TargetTeamID,
	}
}

// StrategyModelFromDomain builds the persistence model from a domain Strategy
func StrategyModelFromDomain(s *identity.Strategy) *StrategyModel {
	m := &StrategyModel{
		AuthorID:     s.AuthorID,
		Message:      s.Message,
		Scope:        s.Scope,
		TargetTeamID: s.TargetTeamID,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}
