package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/investkaro/backend/internal/domain/shared"
)

// applyFilter applies search, ordering and pagination to a query.
// searchClause is a WHERE fragment with searchArgs placeholders, all of
// which receive the same ILIKE pattern. Ordering accepts only columns
// named in orderable; anything else falls back to created_at, so
// caller-supplied order_by values never reach the SQL text.
func applyFilter(query *gorm.DB, filter shared.Filter, searchClause string, searchArgs int, orderable ...string) *gorm.DB {
	if filter.Search != "" && searchClause != "" {
		pattern := "%" + filter.Search + "%"
		args := make([]interface{}, searchArgs)
		for i := range args {
			args[i] = pattern
		}
		query = query.Where(searchClause, args...)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	column := ""
	for _, c := range orderable {
		if filter.OrderBy == c {
			column = c
			break
		}
	}
	if column == "" {
		return query.Order("created_at DESC")
	}

	orderDir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		orderDir = "DESC"
	}
	return query.Order(column + " " + orderDir)
}
