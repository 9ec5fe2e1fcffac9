package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
)

var (
	// ErrNotFound is returned by Get* lookups when no row matches.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrInvalidSort is returned when a listing is asked to order by a
	// column that is not allowed for that table.
	ErrInvalidSort = errors.New("invalid sort field")
)

// IsForeignKeyViolation reports whether err was caused by a foreign key
// constraint, either a missing referenced row on insert/update or a RESTRICT
// rejection on delete.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	// The pure-Go SQLite translator does not map every extended code.
	// Postgres reports "violates foreign key constraint", SQLite
	// "FOREIGN KEY constraint failed".
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// orderBy maps a SortField onto an ORDER BY clause. id is always the
// tie-breaker so equal names list in insertion order.
func orderBy(field domain.SortField, allowed ...domain.SortField) (string, error) {
	if field == "" {
		field = domain.SortByID
	}
	for _, a := range allowed {
		if a != field {
			continue
		}
		if field == domain.SortByID {
			return "id ASC", nil
		}
		return string(field) + " ASC, id ASC", nil
	}
	return "", ErrInvalidSort
}
