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

// LoanRepo defines the repository contract required by LoanService.
type LoanRepo interface {
	CreateLoan(ctx context.Context, db *gorm.DB, jogoID, amigoID uint, dataInicio string, dataFim *string) (*domain.Emprestimo, error)
	ListLoans(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Emprestimo, error)
	GetLoan(ctx context.Context, db *gorm.DB, id uint) (*domain.Emprestimo, error)
	UpdateLoan(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error)
	CloseLoan(ctx context.Context, db *gorm.DB, id uint, dataFim string) (int64, error)
	DeleteLoan(ctx context.Context, db *gorm.DB, id uint) (int64, error)
	LoansStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error)
}

// LoanInput carries the fields of a new loan. An empty DataFim records a
// loan that is still in progress.
type LoanInput struct {
	JogoID     uint
	AmigoID    uint
	DataInicio string
	DataFim    string
}

// LoanPatch carries a partial update; nil fields are left untouched.
// ClearDataFim reopens the loan and is ignored when DataFim is set.
type LoanPatch struct {
	JogoID       *uint
	AmigoID      *uint
	DataInicio   *string
	DataFim      *string
	ClearDataFim bool
}

// LoanService provides CRUD over loans. Loans returned by List and Get have
// the lent game (Jogo) and the borrower (Amigo) attached.
type LoanService struct {
	DB   *gorm.DB
	Repo LoanRepo
}

// NewLoanService constructs a LoanService.
func NewLoanService(db *gorm.DB, r LoanRepo) *LoanService {
	return &LoanService{DB: db, Repo: r}
}

// List returns all loans with associations, ordered by id.
func (s *LoanService) List(ctx context.Context, sort domain.SortField) (out []domain.Emprestimo, err error) {
	ctx, end := begin(ctx, "Loan", "List", attribute.String("sort", string(sort)))
	defer func() { end(err) }()

	return s.Repo.ListLoans(ctx, s.DB, sort)
}

// Get returns loan id with associations, or ErrLoanNotFound.
func (s *LoanService) Get(ctx context.Context, id uint) (e *domain.Emprestimo, err error) {
	ctx, end := begin(ctx, "Loan", "Get", attribute.Int64("loan.id", int64(id)))
	defer func() { end(err) }()

	e, err = s.Repo.GetLoan(ctx, s.DB, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrLoanNotFound
	}
	return e, err
}

// Create validates in and inserts a new loan. Unknown game or friend ids
// yield ErrUnknownReference.
func (s *LoanService) Create(ctx context.Context, in LoanInput) (e *domain.Emprestimo, err error) {
	ctx, end := begin(ctx, "Loan", "Create")
	defer func() { end(err) }()

	if err = requiredID("jogoId", in.JogoID); err != nil {
		return nil, err
	}
	if err = requiredID("amigoId", in.AmigoID); err != nil {
		return nil, err
	}
	if normalizeText(in.DataInicio) == "" {
		return nil, fmt.Errorf("%w: dataInicio is required", ErrInvalidInput)
	}
	inicio, err := parseDate("dataInicio", in.DataInicio)
	if err != nil {
		return nil, err
	}
	var fim *string
	if normalizeText(in.DataFim) != "" {
		v, err := parseDate("dataFim", in.DataFim)
		if err != nil {
			return nil, err
		}
		fim = &v
	}

	e, err = s.Repo.CreateLoan(ctx, s.DB, in.JogoID, in.AmigoID, inicio, fim)
	if repo.IsForeignKeyViolation(err) {
		return nil, fmt.Errorf("%w: %w", ErrUnknownReference, err)
	}
	return e, err
}

// Update applies p to loan id. A missing id is not an error.
func (s *LoanService) Update(ctx context.Context, id uint, p LoanPatch) (err error) {
	ctx, end := begin(ctx, "Loan", "Update", attribute.Int64("loan.id", int64(id)))
	defer func() { end(err) }()

	fields := map[string]any{}
	if p.JogoID != nil {
		if err := requiredID("jogoId", *p.JogoID); err != nil {
			return err
		}
		fields["jogo_id"] = *p.JogoID
	}
	if p.AmigoID != nil {
		if err := requiredID("amigoId", *p.AmigoID); err != nil {
			return err
		}
		fields["amigo_id"] = *p.AmigoID
	}
	if p.DataInicio != nil {
		v, err := parseDate("dataInicio", *p.DataInicio)
		if err != nil {
			return err
		}
		fields["data_inicio"] = v
	}
	switch {
	case p.DataFim != nil:
		v, err := parseDate("dataFim", *p.DataFim)
		if err != nil {
			return err
		}
		fields["data_fim"] = v
	case p.ClearDataFim:
		fields["data_fim"] = nil
	}

	_, err = s.Repo.UpdateLoan(ctx, s.DB, id, fields)
	if repo.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrUnknownReference, err)
	}
	return err
}

// Return closes loan id as of date, or today when date is empty. Loans
// that are already closed keep their end date; a missing id is not an error.
func (s *LoanService) Return(ctx context.Context, id uint, date string) (err error) {
	ctx, end := begin(ctx, "Loan", "Return", attribute.Int64("loan.id", int64(id)))
	defer func() { end(err) }()

	if normalizeText(date) == "" {
		date = today()
	}
	fim, err := parseDate("dataFim", date)
	if err != nil {
		return err
	}
	_, err = s.Repo.CloseLoan(ctx, s.DB, id, fim)
	return err
}

// Delete removes loan id; a missing id is not an error.
func (s *LoanService) Delete(ctx context.Context, id uint) (err error) {
	ctx, end := begin(ctx, "Loan", "Delete", attribute.Int64("loan.id", int64(id)))
	defer func() { end(err) }()

	_, err = s.Repo.DeleteLoan(ctx, s.DB, id)
	return err
}

// Stats returns the loan count and latest update time.
func (s *LoanService) Stats(ctx context.Context) (n int64, maxAt *time.Time, err error) {
	ctx, end := begin(ctx, "Loan", "Stats")
	defer func() { end(err) }()

	return s.Repo.LoansStats(ctx, s.DB)
}
