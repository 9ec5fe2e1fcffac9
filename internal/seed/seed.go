// Package seed fills an empty database with plausible fake friends, games
// and loans. Everything goes through the entity services so the same
// normalisation and validation apply as for requests coming from the web.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/services"
)

// ErrNoOwners is returned when games or loans are requested without any
// friend or game to reference.
var ErrNoOwners = errors.New("seed: nothing to reference")

// Friends is the subset of the friend service the seeder needs.
type Friends interface {
	Create(ctx context.Context, in services.FriendInput) (*domain.Amigo, error)
}

// Games is the subset of the game service the seeder needs.
type Games interface {
	Create(ctx context.Context, in services.GameInput) (*domain.Jogo, error)
}

// Loans is the subset of the loan service the seeder needs.
type Loans interface {
	Create(ctx context.Context, in services.LoanInput) (*domain.Emprestimo, error)
}

// Options controls how many rows of each kind are created.
type Options struct {
	Friends int
	Games   int
	Loans   int
	// OpenRatio is the share of loans left without an end date, in [0..1].
	OpenRatio float64
	// Now anchors generated dates; zero means time.Now().
	Now time.Time
}

// Result counts what was created.
type Result struct {
	Friends int
	Games   int
	Loans   int
}

var platforms = []string{"PC", "PlayStation 5", "PlayStation 4", "Xbox Series X", "Nintendo Switch", "Steam Deck"}

// Seeder generates fake data from a seeded gofakeit source.
type Seeder struct {
	friends Friends
	games   Games
	loans   Loans
	fake    *gofakeit.Faker
}

// New returns a Seeder. A zero seed picks a random one; any other value
// makes the generated data reproducible.
func New(f Friends, g Games, l Loans, seed uint64) *Seeder {
	return &Seeder{friends: f, games: g, loans: l, fake: gofakeit.New(seed)}
}

// Run creates the requested rows in dependency order: friends, then games
// owned by them, then loans of those games. It stops at the first failure
// and reports what it managed to create so far.
func (s *Seeder) Run(ctx context.Context, opt Options) (Result, error) {
	var res Result
	if opt.Friends < 0 || opt.Games < 0 || opt.Loans < 0 {
		return res, fmt.Errorf("%w: negative count", services.ErrInvalidInput)
	}
	if opt.Games > 0 && opt.Friends == 0 {
		return res, fmt.Errorf("%w: games need at least one friend", ErrNoOwners)
	}
	if opt.Loans > 0 && opt.Games == 0 {
		return res, fmt.Errorf("%w: loans need at least one game", ErrNoOwners)
	}
	now := opt.Now
	if now.IsZero() {
		now = time.Now()
	}

	amigos := make([]*domain.Amigo, 0, opt.Friends)
	for i := 0; i < opt.Friends; i++ {
		a, err := s.friends.Create(ctx, services.FriendInput{
			Nome:  s.fake.Name(),
			Email: s.fake.Email(),
		})
		if err != nil {
			return res, fmt.Errorf("friend %d: %w", i+1, err)
		}
		amigos = append(amigos, a)
		res.Friends++
	}

	jogos := make([]*domain.Jogo, 0, opt.Games)
	for i := 0; i < opt.Games; i++ {
		dono := amigos[s.fake.Number(0, len(amigos)-1)]
		j, err := s.games.Create(ctx, services.GameInput{
			Titulo:     s.fake.AppName(),
			Plataforma: s.fake.RandomString(platforms),
			AmigoID:    dono.ID,
		})
		if err != nil {
			return res, fmt.Errorf("game %d: %w", i+1, err)
		}
		jogos = append(jogos, j)
		res.Games++
	}

	for i := 0; i < opt.Loans; i++ {
		jogo := jogos[s.fake.Number(0, len(jogos)-1)]
		in := services.LoanInput{
			JogoID:  jogo.ID,
			AmigoID: s.borrower(amigos, jogo.AmigoID),
		}
		inicio := s.fake.DateRange(now.AddDate(-1, 0, 0), now)
		in.DataInicio = inicio.Format(domain.DateLayout)
		if s.fake.Float64Range(0, 1) >= opt.OpenRatio {
			fim := inicio.AddDate(0, 0, s.fake.Number(1, 45))
			if fim.After(now) {
				fim = now
			}
			in.DataFim = fim.Format(domain.DateLayout)
		}
		if _, err := s.loans.Create(ctx, in); err != nil {
			return res, fmt.Errorf("loan %d: %w", i+1, err)
		}
		res.Loans++
	}

	log.Info().
		Int("friends", res.Friends).
		Int("games", res.Games).
		Int("loans", res.Loans).
		Msg("seed complete")
	return res, nil
}

// borrower picks a friend other than the owner when there is one.
func (s *Seeder) borrower(amigos []*domain.Amigo, owner uint) uint {
	if len(amigos) == 1 {
		return amigos[0].ID
	}
	for {
		a := amigos[s.fake.Number(0, len(amigos)-1)]
		if a.ID != owner {
			return a.ID
		}
	}
}
