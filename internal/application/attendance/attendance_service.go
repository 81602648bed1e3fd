package attendance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appidentity "github.com/investkaro/backend/internal/application/identity"
	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
)

// DayRecord marks one user's presence on one day
type DayRecord struct {
	UserID  uuid.UUID `json:"user_id"`
	Day     time.Time `json:"day"`
	Present bool      `json:"present"`
}

// MonthStats summarizes a user's attendance for the current month
type MonthStats struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	Present     int       `json:"present"`
	DaysElapsed int       `json:"days_elapsed"`
	Rate        float64   `json:"rate"`
}

// Service toggles attendance marks and computes month-to-date stats
type Service struct {
	attendance identity.AttendanceRepository
	directory  *appidentity.TeamDirectory
	logger     *zap.Logger
}

// NewService creates a new attendance Service
func NewService(
	attendance identity.AttendanceRepository,
	directory *appidentity.TeamDirectory,
	logger *zap.Logger,
) *Service {
	return &Service{
		attendance: attendance,
		directory:  directory,
		logger:     logger,
	}
}

// Toggle flips the viewer's presence mark for the given day and returns
// the new state. Marking is idempotent per (user, day).
func (s *Service) Toggle(ctx context.Context, viewer identity.Viewer, day time.Time) (*DayRecord, error) {
	day = identity.DayOf(day)

	existing, err := s.attendance.FindByUserAndDay(ctx, viewer.ID, day)
	if err == nil && existing != nil {
		if err := s.attendance.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &DayRecord{UserID: viewer.ID, Day: day, Present: false}, nil
	}

	mark, err := identity.NewAttendance(viewer.ID, day)
	if err != nil {
		return nil, err
	}
	if err := s.attendance.Save(ctx, mark); err != nil {
		return nil, err
	}
	return &DayRecord{UserID: viewer.ID, Day: day, Present: true}, nil
}

// Month returns the viewer's marks for the month containing ref
func (s *Service) Month(ctx context.Context, viewer identity.Viewer, userID uuid.UUID, ref time.Time) ([]DayRecord, error) {
	if userID != viewer.ID {
		if err := s.authorizeTeamView(ctx, viewer, userID); err != nil {
			return nil, err
		}
	}

	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0)

	marks, err := s.attendance.FindByUserInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	records := make([]DayRecord, 0, len(marks))
	for _, m := range marks {
		records = append(records, DayRecord{UserID: m.UserID, Day: m.Day, Present: true})
	}
	return records, nil
}

// TeamStats returns month-to-date attendance for every user the viewer
// may see. Days elapsed counts calendar days from the 1st through today.
func (s *Service) TeamStats(ctx context.Context, viewer identity.Viewer, now time.Time) ([]MonthStats, error) {
	visible, all, err := s.directory.VisibleUserIDs(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if all {
		visible, err = s.directory.AllUserIDs(ctx)
		if err != nil {
			return nil, err
		}
	}

	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := identity.DayOf(now).AddDate(0, 0, 1)
	daysElapsed := now.Day()

	marks, err := s.attendance.FindByUsersInRange(ctx, visible, from, to)
	if err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int)
	for _, m := range marks {
		counts[m.UserID]++
	}

	profiles, err := s.directory.ProfileNames(ctx, visible)
	if err != nil {
		return nil, err
	}

	stats := make([]MonthStats, 0, len(visible))
	for _, id := range visible {
		st := MonthStats{UserID: id, Present: counts[id], DaysElapsed: daysElapsed, UserName: "Unknown"}
		if p, ok := profiles[id]; ok {
			st.UserName = p.DisplayName
		}
		if daysElapsed > 0 {
			st.Rate = float64(st.Present) / float64(daysElapsed)
		}
		stats = append(stats, st)
	}
	return stats, nil
}

func (s *Service) authorizeTeamView(ctx context.Context, viewer identity.Viewer, userID uuid.UUID) error {
	if viewer.IsAdmin() {
		return nil
	}
	if viewer.IsManager() {
		members, err := s.directory.TeamMemberIDs(ctx, viewer.ID)
		if err != nil {
			return err
		}
		for _, id := range members {
			if id == userID {
				return nil
			}
		}
	}
	return shared.ErrForbidden
}
