package identity

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/investkaro/backend/internal/domain/shared"
)

// Attendance marks one profile present on one calendar day.
// (user, day) is unique; absence is the lack of a row.
type Attendance struct {
	shared.BaseEntity
	UserID uuid.UUID
	Day    time.Time
}

// NewAttendance marks the user present on the given day.
// The day is truncated to midnight so the uniqueness key ignores time of day.
func NewAttendance(userID uuid.UUID, day time.Time) (*Attendance, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "user is required")
	}
	if day.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "day is required")
	}
	return &Attendance{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Day:        DayOf(day),
	}, nil
}

// DayOf truncates an instant to its calendar day
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AttendanceRepository defines the persistence interface for attendance marks
type AttendanceRepository interface {
	FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*Attendance, error)
	FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]Attendance, error)
	FindByUsersInRange(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]Attendance, error)
	Save(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id uuid.UUID) error
}
