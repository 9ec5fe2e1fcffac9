// Loan HTML handlers.
//
// Same route shape as the friend views under /emprestimos, plus
//   - POST /emprestimos/devolver/:id  (close an open loan as of today)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/domain"
)

const loansPath = "/emprestimos"

// LoansIndex renders every loan with its game and borrower.
func (h *Handlers) LoansIndex(c *gin.Context) {
	list, err := h.loans.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgListLoans, err)
		return
	}
	c.HTML(http.StatusOK, "emprestimos/index", gin.H{"Emprestimos": list})
}

// NewLoanForm renders an empty loan form.
func (h *Handlers) NewLoanForm(c *gin.Context) {
	h.renderLoanForm(c, http.StatusOK, "Novo Empréstimo", loansPath+"/novo", loanForm{}, "")
}

// CreateLoan stores a loan and redirects to the list.
func (h *Handlers) CreateLoan(c *gin.Context) {
	const heading, action = "Novo Empréstimo", loansPath + "/novo"
	var f loanForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderLoanForm(c, http.StatusBadRequest, heading, action, f, MsgInvalidInput)
		return
	}
	if _, err := h.loans.Create(c.Request.Context(), f.input()); err != nil {
		formFailed(c, err, MsgLoanNotFound, func(status int, msg string) {
			h.renderLoanForm(c, status, heading, action, f, msg)
		})
		return
	}
	c.Redirect(http.StatusFound, loansPath)
}

// EditLoanForm renders the form of an existing loan, or 404.
func (h *Handlers) EditLoanForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	e, err := h.loans.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err, MsgLoanNotFound)
		return
	}
	h.renderLoanForm(c, http.StatusOK, "Editar Empréstimo", editAction(loansPath, id), loanFormOf(e), "")
}

// UpdateLoan replaces the loan's fields. A blank dataFim reopens it.
func (h *Handlers) UpdateLoan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	heading, action := "Editar Empréstimo", editAction(loansPath, id)
	var f loanForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderLoanForm(c, http.StatusBadRequest, heading, action, f, MsgInvalidInput)
		return
	}
	if err := h.loans.Update(c.Request.Context(), id, f.patch()); err != nil {
		formFailed(c, err, MsgLoanNotFound, func(status int, msg string) {
			h.renderLoanForm(c, status, heading, action, f, msg)
		})
		return
	}
	c.Redirect(http.StatusFound, loansPath)
}

// ReturnLoan sets today's date as the end of an open loan. Closed or missing
// loans are left untouched.
func (h *Handlers) ReturnLoan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.loans.Return(c.Request.Context(), id, ""); err != nil {
		failService(c, err, MsgLoanNotFound)
		return
	}
	c.Redirect(http.StatusFound, loansPath)
}

// DeleteLoan removes a loan.
func (h *Handlers) DeleteLoan(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.loans.Delete(c.Request.Context(), id); err != nil {
		failService(c, err, MsgLoanNotFound)
		return
	}
	c.Redirect(http.StatusFound, loansPath)
}

func (h *Handlers) renderLoanForm(c *gin.Context, status int, heading, action string, f loanForm, erro string) {
	ctx := c.Request.Context()
	jogos, err := h.games.Options(ctx)
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgListGames, err)
		return
	}
	amigos, err := h.friends.Options(ctx)
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgListFriends, err)
		return
	}
	c.HTML(status, "emprestimos/form", formView{
		Heading: heading,
		Action:  action,
		Erro:    erro,
		Form:    f,
		Amigos:  amigos,
		Jogos:   jogos,
	})
}
