// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"errors"
	"strconv"
)

// ErrInvalidID is returned by ParseID for anything but a positive decimal.
var ErrInvalidID = errors.New("invalid id")

// ParseID converts a path segment into a row id. Zero, signs, blanks and
// values beyond the uint range are rejected.
//
// Example:
//
//	id, err := utils.ParseID("42") // 42, nil
//	_, err = utils.ParseID("0")    // ErrInvalidID
//	_, err = utils.ParseID("x")    // ErrInvalidID
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize)
	if err != nil || n == 0 {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}
