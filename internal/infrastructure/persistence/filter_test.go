package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/shared"
	"github.com/investkaro/backend/internal/infrastructure/persistence/models"
)

func orderedSQL(db *gorm.DB, filter shared.Filter, orderable ...string) string {
	var out []models.StrategyModel
	stmt := applyFilter(
		db.Session(&gorm.Session{DryRun: true}).Model(&models.StrategyModel{}),
		filter, "", 0, orderable...,
	).Find(&out).Statement
	return stmt.SQL.String()
}

func TestApplyFilterOrdering(t *testing.T) {
	db := newSQLiteDB(t)

	t.Run("allow-listed column is honoured", func(t *testing.T) {
		sql := orderedSQL(db, shared.Filter{OrderBy: "scope", OrderDir: "desc"}, "scope", "created_at")
		assert.Contains(t, sql, "ORDER BY scope DESC")
	})

	t.Run("unknown direction normalizes to ascending", func(t *testing.T) {
		sql := orderedSQL(db, shared.Filter{OrderBy: "scope", OrderDir: "sideways"}, "scope", "created_at")
		assert.Contains(t, sql, "ORDER BY scope ASC")
	})

	t.Run("column outside the allow-list falls back to created_at", func(t *testing.T) {
		sql := orderedSQL(db, shared.Filter{OrderBy: "message"}, "scope", "created_at")
		assert.Contains(t, sql, "ORDER BY created_at DESC")
		assert.NotContains(t, sql, "message")
	})

	t.Run("sql in order_by never reaches the query", func(t *testing.T) {
		sql := orderedSQL(db, shared.Filter{
			Page:     1,
			PageSize: 10,
			OrderBy:  "(SELECT password_hash FROM profiles LIMIT 1)",
		}, "scope", "created_at")
		assert.Contains(t, sql, "ORDER BY created_at DESC")
		assert.NotContains(t, sql, "password_hash")
	})

	t.Run("empty order_by keeps the newest-first default", func(t *testing.T) {
		sql := orderedSQL(db, shared.Filter{}, "scope", "created_at")
		assert.Contains(t, sql, "ORDER BY created_at DESC")
	})
}
