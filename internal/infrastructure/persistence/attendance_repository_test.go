package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/investkaro/backend/internal/domain/identity"
	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

// newSQLiteDB opens an in-memory database with the schema applied, for
// repository tests that exercise real SQL instead of expectations.
func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache database keeps the schema visible across pooled
	// connections while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.AttendanceModel{},
		&models.StrategyModel{},
	))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})
	return db
}

func mustMark(t *testing.T, userID uuid.UUID, day time.Time) *identity.Attendance {
	t.Helper()
	mark, err := identity.NewAttendance(userID, day)
	require.NoError(t, err)
	return mark
}

func TestGormAttendanceRepository_SaveAndFind(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAttendanceRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	day := time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, mustMark(t, userID, day)))

	t.Run("lookup ignores time of day", func(t *testing.T) {
		evening := time.Date(2026, time.March, 9, 22, 5, 0, 0, time.UTC)
		found, err := repo.FindByUserAndDay(ctx, userID, evening)
		require.NoError(t, err)
		assert.Equal(t, userID, found.UserID)
		assert.Equal(t, "2026-03-09", found.Day.Format("2006-01-02"))
	})

	t.Run("unmarked day maps to NOT_FOUND", func(t *testing.T) {
		_, err := repo.FindByUserAndDay(ctx, userID, day.AddDate(0, 0, 1))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormAttendanceRepository_FindByUserInRange(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAttendanceRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	for _, offset := range []int{0, 1, 4} {
		require.NoError(t, repo.Save(ctx, mustMark(t, userID, monday.AddDate(0, 0, offset))))
	}
	// another user's marks must not leak into the result
	require.NoError(t, repo.Save(ctx, mustMark(t, uuid.New(), monday)))

	marks, err := repo.FindByUserInRange(ctx, userID, monday, monday.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, marks, 3)
	assert.True(t, marks[0].Day.Before(marks[1].Day))

	t.Run("range end is exclusive", func(t *testing.T) {
		marks, err := repo.FindByUserInRange(ctx, userID, monday, monday.AddDate(0, 0, 4))
		require.NoError(t, err)
		assert.Len(t, marks, 2)
	})
}

func TestGormAttendanceRepository_FindByUsersInRange(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAttendanceRepository(db)
	ctx := context.Background()

	lead := uuid.New()
	member := uuid.New()
	outsider := uuid.New()
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	for _, id := range []uuid.UUID{lead, member, outsider} {
		require.NoError(t, repo.Save(ctx, mustMark(t, id, day)))
	}

	marks, err := repo.FindByUsersInRange(ctx, []uuid.UUID{lead, member}, day, day.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, marks, 2)

	t.Run("empty id set short-circuits", func(t *testing.T) {
		marks, err := repo.FindByUsersInRange(ctx, nil, day, day.AddDate(0, 1, 0))
		require.NoError(t, err)
		assert.Empty(t, marks)
	})
}

func TestGormAttendanceRepository_Delete(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormAttendanceRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	mark := mustMark(t, userID, time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, mark))

	require.NoError(t, repo.Delete(ctx, mark.ID))
	_, err := repo.FindByUserAndDay(ctx, userID, mark.Day)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	t.Run("deleting twice maps to NOT_FOUND", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, mark.ID), shared.ErrNotFound)
	})
}
