package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/repo"
)

// GameRepo defines the repository contract required by GameService.
type GameRepo interface {
	CreateGame(ctx context.Context, db *gorm.DB, titulo, plataforma string, amigoID uint) (*domain.Jogo, error)
	ListGames(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Jogo, error)
	GetGame(ctx context.Context, db *gorm.DB, id uint) (*domain.Jogo, error)
	UpdateGame(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error)
	DeleteGame(ctx context.Context, db *gorm.DB, id uint) (int64, error)
	GamesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
}

// GameInput carries the fields of a new game.
type GameInput struct {
	Titulo     string
	Plataforma string
	AmigoID    uint
}

// GamePatch carries a partial update; nil fields are left untouched.
type GamePatch struct {
	Titulo     *string
	Plataforma *string
	AmigoID    *uint
}

// GameService provides CRUD over games. Every game returned by List and Get
// has its owner (Dono) attached.
type GameService struct {
	DB   *gorm.DB
	Repo GameRepo
}

// NewGameService constructs a GameService.
func NewGameService(db *gorm.DB, r GameRepo) *GameService {
	return &GameService{DB: db, Repo: r}
}

// List returns all games with owners, ordered by sort (id by default).
func (s *GameService) List(ctx context.Context, sort domain.SortField) (out []domain.Jogo, err error) {
	ctx, end := begin(ctx, "Game", "List", attribute.String("sort", string(sort)))
	defer func() { end(err) }()

	return s.Repo.ListGames(ctx, s.DB, sort)
}

// Options returns games for selection lists, in collated title order.
func (s *GameService) Options(ctx context.Context) (out []domain.Jogo, err error) {
	ctx, end := begin(ctx, "Game", "Options")
	defer func() { end(err) }()

	out, err = s.Repo.ListGames(ctx, s.DB, domain.SortByTitulo)
	if err != nil {
		return nil, err
	}
	sortCollated(out, func(j domain.Jogo) string { return j.Titulo })
	return out, nil
}

// Get returns game id with its owner, or ErrGameNotFound.
func (s *GameService) Get(ctx context.Context, id uint) (j *domain.Jogo, err error) {
	ctx, end := begin(ctx, "Game", "Get", attribute.Int64("game.id", int64(id)))
	defer func() { end(err) }()

	j, err = s.Repo.GetGame(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	return j, err
}

// Create validates in and inserts a new game. An owner that does not exist
// yields ErrUnknownReference.
func (s *GameService) Create(ctx context.Context, in GameInput) (j *domain.Jogo, err error) {
	ctx, end := begin(ctx, "Game", "Create")
	defer func() { end(err) }()

	titulo, err := required("titulo", in.Titulo)
	if err != nil {
		return nil, err
	}
	plataforma, err := required("plataforma", in.Plataforma)
	if err != nil {
		return nil, err
	}
	if err = requiredID("amigoId", in.AmigoID); err != nil {
		return nil, err
	}
	j, err = s.Repo.CreateGame(ctx, s.DB, titulo, plataforma, in.AmigoID)
	if repo.IsForeignKeyViolation(err) {
		return nil, fmt.Errorf("%w: %w", ErrUnknownReference, err)
	}
	return j, err
}

// Update applies p to game id. A missing id is not an error; reassigning
// to an unknown owner yields ErrUnknownReference.
func (s *GameService) Update(ctx context.Context, id uint, p GamePatch) (err error) {
	ctx, end := begin(ctx, "Game", "Update", attribute.Int64("game.id", int64(id)))
	defer func() { end(err) }()

	fields := map[string]any{}
	if p.Titulo != nil {
		v, err := required("titulo", *p.Titulo)
		if err != nil {
			return err
		}
		fields["titulo"] = v
	}
	if p.Plataforma != nil {
		v, err := required("plataforma", *p.Plataforma)
		if err != nil {
			return err
		}
		fields["plataforma"] = v
	}
	if p.AmigoID != nil {
		if err := requiredID("amigoId", *p.AmigoID); err != nil {
			return err
		}
		fields["amigo_id"] = *p.AmigoID
	}
	_, err = s.Repo.UpdateGame(ctx, s.DB, id, fields)
	if repo.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrUnknownReference, err)
	}
	return err
}

// Delete removes game id. It returns ErrGameInUse while loans reference the
// game, and nil when the id does not exist.
func (s *GameService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := begin(ctx, "Game", "Delete", attribute.Int64("game.id", int64(id)))
	defer func() { end(err) }()

	_, err = s.Repo.DeleteGame(ctx, s.DB, id)
	if repo.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrGameInUse, err)
	}
	return err
}

// Stats returns the game count and latest update time.
func (s *GameService) Stats(ctx context.Context) (n int64, maxAt *time.Time, err error) {
	ctx, end := begin(ctx, "Game", "Stats")
	defer func() { end(err) }()

	return s.Repo.GamesStats(ctx, s.DB)
}
