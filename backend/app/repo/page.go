package repo

import (
	"strings"

	"gorm.io/gorm"
)

// Page is a 1-based page number plus a page size.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) Scope(db *gorm.DB) *gorm.DB {
	p = NewPage(p.Number, p.Size)
	return db.Offset(p.Offset()).Limit(p.Size)
}

// matchAny filters rows whose columns contain term, ignoring case.
// An empty term matches everything.
func matchAny(term string, columns ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, c := range columns {
			clauses = append(clauses, "LOWER("+c+") LIKE ? ESCAPE '!'")
			args = append(args, pattern)
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
