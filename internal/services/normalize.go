package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-game-loans/internal/domain"
)

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// now is replaced in tests.
var now = time.Now

// normalizeText composes to NFC, trims, and collapses inner whitespace so
// "José  Silva " and "José Silva" are stored identically.
func normalizeText(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(norm.NFC.String(s)), " ")
}

func normalizeEmail(s string) string {
	return strings.ToLower(normalizeText(s))
}

// required normalizes v and fails with ErrInvalidInput naming field when
// nothing is left.
func required(field, v string) (string, error) {
	v = normalizeText(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return v, nil
}

func requiredID(field string, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	return nil
}

// parseDate accepts YYYY-MM-DD and returns it in canonical form.
func parseDate(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	t, err := time.Parse(domain.DateLayout, v)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidDate, field, v)
	}
	return t.Format(domain.DateLayout), nil
}

func today() string {
	return now().Format(domain.DateLayout)
}

// sortCollated reorders items by key using Brazilian Portuguese collation,
// ignoring case, so "Álvaro" lists next to "Alvaro" rather than after "Zeca".
// A Collator is not safe for concurrent use, so one is built per call.
func sortCollated[T any](items []T, key func(T) string) {
	c := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(key(items[i]), key(items[j])) < 0
	})
}
