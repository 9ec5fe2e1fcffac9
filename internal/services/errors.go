// Package services defines the business logic for friends, games, and loans.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"

	"github.com/tbourn/go-game-loans/internal/repo"
)

var (
	// ErrFriendNotFound indicates that the requested friend does not exist.
	ErrFriendNotFound = errors.New("friend not found")

	// ErrGameNotFound indicates that the requested game does not exist.
	ErrGameNotFound = errors.New("game not found")

	// ErrLoanNotFound indicates that the requested loan does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrInvalidInput is returned when a required field is blank or an id
	// is zero.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

	// ErrUnknownReference is returned when a write names a friend or game
	// that does not exist.
	ErrUnknownReference = errors.New("referenced row does not exist")

	// ErrFriendInUse is returned when deleting a friend that still owns
	// games or appears in loans.
	ErrFriendInUse = errors.New("friend is referenced by games or loans")

	// ErrGameInUse is returned when deleting a game that appears in loans.
	ErrGameInUse = errors.New("game is referenced by loans")

	// ErrInvalidSort is returned when a listing is asked for an unsupported order.
	ErrInvalidSort = repo.ErrInvalidSort
)
