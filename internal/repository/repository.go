package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ListParams describes one page of a searchable listing.
type ListParams struct {
	Limit  int
	Offset int
	Search string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchScope filters column by a case-insensitive substring match. An empty
// term leaves the query untouched.
func searchScope(column, term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		return db.Where("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
	}
}

func pageScope(p ListParams) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Limit(p.Limit)
		if p.Offset > 0 {
			db = db.Offset(p.Offset)
		}
		return db
	}
}
