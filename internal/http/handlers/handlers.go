// Package handlers wires HTTP routes to the friend, game and loan services.
//
// Handlers are transport-thin: they bind form or path input, call exactly one
// service operation, and then render a view, redirect to the list, or write
// JSON. Service errors are translated by serviceError in response.go.
package handlers

import (
	"context"
	"io"
	"time"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/services"
)

//
// Service contracts (context-aware)
//

// FriendService defines the friend operations consumed by HTTP handlers.
type FriendService interface {
	List(ctx context.Context, sort domain.SortField) ([]domain.Amigo, error)
	// Options returns friends for select inputs, in collated name order.
	Options(ctx context.Context) ([]domain.Amigo, error)
	Get(ctx context.Context, id uint) (*domain.Amigo, error)
	Create(ctx context.Context, in services.FriendInput) (*domain.Amigo, error)
	Update(ctx context.Context, id uint, p services.FriendPatch) error
	Delete(ctx context.Context, id uint) error
	// Stats returns the row count and the latest updated_at, used for ETags.
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// GameService defines the game operations consumed by HTTP handlers.
type GameService interface {
	List(ctx context.Context, sort domain.SortField) ([]domain.Jogo, error)
	Options(ctx context.Context) ([]domain.Jogo, error)
	Get(ctx context.Context, id uint) (*domain.Jogo, error)
	Create(ctx context.Context, in services.GameInput) (*domain.Jogo, error)
	Update(ctx context.Context, id uint, p services.GamePatch) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// LoanService defines the loan operations consumed by HTTP handlers.
type LoanService interface {
	List(ctx context.Context, sort domain.SortField) ([]domain.Emprestimo, error)
	Get(ctx context.Context, id uint) (*domain.Emprestimo, error)
	Create(ctx context.Context, in services.LoanInput) (*domain.Emprestimo, error)
	Update(ctx context.Context, id uint, p services.LoanPatch) error
	// Return closes an open loan; an empty date means today.
	Return(ctx context.Context, id uint, date string) error
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// ReportRenderer draws the loans report.
type ReportRenderer interface {
	Render(w io.Writer, rows []domain.Emprestimo) error
}

// Pinger checks storage reachability for /health.
type Pinger func(ctx context.Context) error

//
// Handler wiring
//

// Handlers groups the HTML, JSON and report endpoints.
type Handlers struct {
	friends FriendService
	games   GameService
	loans   LoanService
	report  ReportRenderer
	ping    Pinger
}

// New constructs a Handlers bound to the given services. ping may be nil, in
// which case /health always reports ok.
func New(friends FriendService, games GameService, loans LoanService, report ReportRenderer, ping Pinger) *Handlers {
	return &Handlers{friends: friends, games: games, loans: loans, report: report, ping: ping}
}
