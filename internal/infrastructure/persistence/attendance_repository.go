package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

// GormAttendanceRepository implements AttendanceRepository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByUserAndDay finds one user's mark for one calendar day
func (r *GormAttendanceRepository) FindByUserAndDay(ctx context.Context, userID uuid.UUID, day time.Time) (*identity.Attendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, identity.DayOf(day)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserInRange finds one user's marks inside [from, to)
func (r *GormAttendanceRepository) FindByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]identity.Attendance, error) {
	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND day >= ? AND day < ?", userID, from, to).
		Order("day ASC").
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}
	return attendanceToDomain(attendanceModels), nil
}

// FindByUsersInRange finds many users' marks inside [from, to)
func (r *GormAttendanceRepository) FindByUsersInRange(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]identity.Attendance, error) {
	if len(userIDs) == 0 {
		return []identity.Attendance{}, nil
	}
	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("user_id IN ? AND day >= ? AND day < ?", userIDs, from, to).
		Order("day ASC").
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}
	return attendanceToDomain(attendanceModels), nil
}

// Save creates or updates an attendance mark
func (r *GormAttendanceRepository) Save(ctx context.Context, attendance *identity.Attendance) error {
	model := models.AttendanceModelFromDomain(attendance)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes an attendance mark
func (r *GormAttendanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AttendanceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func attendanceToDomain(attendanceModels []models.AttendanceModel) []identity.Attendance {
	marks := make([]identity.Attendance, len(attendanceModels))
	for i, model := range attendanceModels {
		marks[i] = *model.ToDomain()
	}
	return marks
}

var _ identity.AttendanceRepository = (*GormAttendanceRepository)(nil)
