// JSON API handlers.
//
// This file exposes read-only REST endpoints:
//   - GET /api/amigos, /api/jogos, /api/emprestimos  (full list, ETag support)
//   - GET /api/amigos/{id}, /api/jogos/{id}, /api/emprestimos/{id}
//
// Lists are ordered by id. Games carry their owner ("dono"); loans carry the
// lent game, the borrower and the derived "emAndamento" flag.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/utils"
)

// statsFunc matches the Stats method of the entity services.
type statsFunc func(ctx context.Context) (int64, *time.Time, error)

// tableStats names a table whose rows end up in a response.
type tableStats struct {
	table string
	stats statsFunc
}

// notModified sets a weak ETag derived from the row count and latest change
// of every listed table, and answers 304 when the client already holds it.
// Lists embedding associations must name the associated tables too, or an
// edit to an owner would not change the tag. Stats failures only skip the
// ETag.
func notModified(c *gin.Context, tables ...tableStats) bool {
	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		count, maxTS, err := t.stats(c.Request.Context())
		if err != nil {
			return false
		}
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		parts = append(parts, fmt.Sprintf("%s:%d:%d", t.table, count, ts))
	}
	etag := `W/"` + strings.Join(parts, ";") + `"`
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// apiID parses the {id} segment or aborts with a JSON 400.
func apiID(c *gin.Context) (uint, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidID, nil)
		return 0, false
	}
	return id, true
}

// ListFriendsAPI godoc
// @ID          listFriends
// @Summary     List friends
// @Description Returns every friend ordered by id. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Amigos
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"amigos:3:1700000000\")
//
// @Success     200  {array}  domain.Amigo
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Erro ao buscar amigos"
// @Router      /amigos [get]
func (h *Handlers) ListFriendsAPI(c *gin.Context) {
	if notModified(c, tableStats{"amigos", h.friends.Stats}) {
		return
	}
	list, err := h.friends.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgListFriends, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// GetFriendAPI godoc
// @ID          getFriend
// @Summary     Get a friend
// @Tags        Amigos
// @Produce     json
//
// @Param       id  path  int  true  "Friend ID"  minimum(1)
//
// @Success     200  {object} domain.Amigo
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     404  {object} handlers.ErrorResponse "Amigo não encontrado."
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /amigos/{id} [get]
func (h *Handlers) GetFriendAPI(c *gin.Context) {
	id, valid := apiID(c)
	if !valid {
		return
	}
	a, err := h.friends.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := serviceError(err, MsgFriendNotFound)
		fail(c, status, msg, err)
		return
	}
	ok(c, http.StatusOK, a)
}

// ListGamesAPI godoc
// @ID          listGames
// @Summary     List games
// @Description Returns every game ordered by id, each with its owner ("dono"). Supports weak ETag.
// @Tags        Jogos
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Jogo
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Erro ao buscar jogos"
// @Router      /jogos [get]
func (h *Handlers) ListGamesAPI(c *gin.Context) {
	if notModified(c,
		tableStats{"jogos", h.games.Stats},
		tableStats{"amigos", h.friends.Stats},
	) {
		return
	}
	list, err := h.games.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgListGames, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// GetGameAPI godoc
// @ID          getGame
// @Summary     Get a game
// @Tags        Jogos
// @Produce     json
//
// @Param       id  path  int  true  "Game ID"  minimum(1)
//
// @Success     200  {object} domain.Jogo
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     404  {object} handlers.ErrorResponse "Jogo não encontrado."
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /jogos/{id} [get]
func (h *Handlers) GetGameAPI(c *gin.Context) {
	id, valid := apiID(c)
	if !valid {
		return
	}
	j, err := h.games.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := serviceError(err, MsgGameNotFound)
		fail(c, status, msg, err)
		return
	}
	ok(c, http.StatusOK, j)
}

// ListLoansAPI godoc
// @ID          listLoans
// @Summary     List loans
// @Description Returns every loan ordered by id with "jogo", "amigo" and "emAndamento". "dataFim" is omitted while the loan is open.
// @Tags        Emprestimos
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {array}  domain.Emprestimo
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Erro ao buscar emprestimos"
// @Router      /emprestimos [get]
func (h *Handlers) ListLoansAPI(c *gin.Context) {
	if notModified(c,
		tableStats{"emprestimos", h.loans.Stats},
		tableStats{"jogos", h.games.Stats},
		tableStats{"amigos", h.friends.Stats},
	) {
		return
	}
	list, err := h.loans.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgListLoans, err)
		return
	}
	ok(c, http.StatusOK, list)
}

// GetLoanAPI godoc
// @ID          getLoan
// @Summary     Get a loan
// @Tags        Emprestimos
// @Produce     json
//
// @Param       id  path  int  true  "Loan ID"  minimum(1)
//
// @Success     200  {object} domain.Emprestimo
// @Failure     400  {object} handlers.ErrorResponse "Invalid id"
// @Failure     404  {object} handlers.ErrorResponse "Empréstimo não encontrado."
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /emprestimos/{id} [get]
func (h *Handlers) GetLoanAPI(c *gin.Context) {
	id, valid := apiID(c)
	if !valid {
		return
	}
	e, err := h.loans.Get(c.Request.Context(), id)
	if err != nil {
		status, msg := serviceError(err, MsgLoanNotFound)
		fail(c, status, msg, err)
		return
	}
	ok(c, http.StatusOK, e)
}
