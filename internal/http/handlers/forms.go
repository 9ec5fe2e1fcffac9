package handlers

import (
	"strings"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/services"
)

// Form payloads posted by the HTML views. FK fields are uint so a malformed
// number fails binding with 400 before any service call.

type friendForm struct {
	Nome  string `form:"nome" binding:"required"`
	Email string `form:"email" binding:"required"`
}

func friendFormOf(a *domain.Amigo) friendForm {
	return friendForm{Nome: a.Nome, Email: a.Email}
}

func (f friendForm) input() services.FriendInput {
	return services.FriendInput{Nome: f.Nome, Email: f.Email}
}

func (f friendForm) patch() services.FriendPatch {
	return services.FriendPatch{Nome: &f.Nome, Email: &f.Email}
}

type gameForm struct {
	Titulo     string `form:"titulo" binding:"required"`
	Plataforma string `form:"plataforma" binding:"required"`
	AmigoID    uint   `form:"amigoId" binding:"required"`
}

func gameFormOf(j *domain.Jogo) gameForm {
	return gameForm{Titulo: j.Titulo, Plataforma: j.Plataforma, AmigoID: j.AmigoID}
}

func (f gameForm) input() services.GameInput {
	return services.GameInput{Titulo: f.Titulo, Plataforma: f.Plataforma, AmigoID: f.AmigoID}
}

func (f gameForm) patch() services.GamePatch {
	return services.GamePatch{Titulo: &f.Titulo, Plataforma: &f.Plataforma, AmigoID: &f.AmigoID}
}

// loanForm leaves dataFim optional; blank means the loan is in progress.
type loanForm struct {
	JogoID     uint   `form:"jogoId" binding:"required"`
	AmigoID    uint   `form:"amigoId" binding:"required"`
	DataInicio string `form:"dataInicio" binding:"required"`
	DataFim    string `form:"dataFim"`
}

func loanFormOf(e *domain.Emprestimo) loanForm {
	f := loanForm{JogoID: e.JogoID, AmigoID: e.AmigoID, DataInicio: e.DataInicio}
	if e.DataFim != nil {
		f.DataFim = *e.DataFim
	}
	return f
}

func (f loanForm) input() services.LoanInput {
	return services.LoanInput{JogoID: f.JogoID, AmigoID: f.AmigoID, DataInicio: f.DataInicio, DataFim: f.DataFim}
}

// patch replaces every field; a blank (or whitespace-only) dataFim reopens
// the loan, matching what Create records for the same input.
func (f loanForm) patch() services.LoanPatch {
	p := services.LoanPatch{JogoID: &f.JogoID, AmigoID: &f.AmigoID, DataInicio: &f.DataInicio}
	if strings.TrimSpace(f.DataFim) == "" {
		p.ClearDataFim = true
	} else {
		p.DataFim = &f.DataFim
	}
	return p
}
