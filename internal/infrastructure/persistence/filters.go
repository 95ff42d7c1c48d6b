package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/studioerp/backend/internal/domain/shared"
)

// applySearch adds a case-insensitive LIKE across the given columns
func applySearch(query *gorm.DB, search string, columns ...string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + strings.ToLower(search) + "%"
	clause := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clause[i] = "lower(" + col + ") LIKE ?"
		args[i] = pattern
	}
	return query.Where(strings.Join(clause, " OR "), args...)
}

// applyEquals adds exact-match conditions for whitelisted filter keys. The
// allowed map translates an external filter key to its column name; anything
// not in the map is ignored.
func applyEquals(query *gorm.DB, filters map[string]interface{}, allowed map[string]string) *gorm.DB {
	for key, column := range allowed {
		if value, ok := filters[key]; ok && value != nil && value != "" {
			query = query.Where(column+" = ?", value)
		}
	}
	return query
}

// findPage counts and fetches one page of rows into a Paginated result
func findPage[T any](query *gorm.DB, filter shared.Filter, order string) (*shared.Paginated[T], error) {
	filter.Normalize()

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []T
	if err := query.Order(order).Offset(filter.Offset()).Limit(filter.Limit).Find(&items).Error; err != nil {
		return nil, err
	}

	return &shared.Paginated[T]{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}
