// Package services implements the entity services: validation, persistence
// and envelope construction for every storefront entity.
package services

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/tranduykhanh2004/storely/internal/models"
)

// isDuplicate reports a MySQL unique-constraint violation (error 1062).
func isDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// isNotFound reports a missing-record persistence error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// contains builds a LIKE pattern for case-insensitive substring search.
func contains(keyword string) string {
	return "%" + strings.TrimSpace(keyword) + "%"
}

// applySort orders the query by the caller-supplied sort field when it is
// allowed for the entity, otherwise by the entity default. The allow-list
// maps the request field to the column expression so entities whose list
// query joins a second table can qualify the column.
func applySort(q *gorm.DB, opts models.ListOptions, defaultOrder string, allowed map[string]string) *gorm.DB {
	if col, ok := allowed[opts.SortField]; ok && opts.SortField != "" {
		dir := "desc"
		if strings.EqualFold(opts.SortOrder, "asc") {
			dir = "asc"
		}
		return q.Order(col + " " + dir)
	}
	return q.Order(defaultOrder)
}

// applyPage applies the page window. PageSize 0 means no pagination.
func applyPage(q *gorm.DB, opts models.ListOptions) *gorm.DB {
	if opts.PageSize <= 0 {
		return q
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	return q.Offset((page - 1) * opts.PageSize).Limit(opts.PageSize)
}
