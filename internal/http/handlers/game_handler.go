// Game HTML handlers.
//
// Same route shape as the friend views under /jogos. The form offers the
// friends as owners; an unknown owner re-renders the form with 400.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/domain"
)

const gamesPath = "/jogos"

// GamesIndex renders the game list with each owner attached.
func (h *Handlers) GamesIndex(c *gin.Context) {
	list, err := h.games.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgListGames, err)
		return
	}
	c.HTML(http.StatusOK, "jogos/index", gin.H{"Jogos": list})
}

// NewGameForm renders an empty game form.
func (h *Handlers) NewGameForm(c *gin.Context) {
	h.renderGameForm(c, http.StatusOK, "Novo Jogo", gamesPath+"/novo", gameForm{}, "")
}

// CreateGame stores a game and redirects to the list.
func (h *Handlers) CreateGame(c *gin.Context) {
	const heading, action = "Novo Jogo", gamesPath + "/novo"
	var f gameForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderGameForm(c, http.StatusBadRequest, heading, action, f, MsgInvalidInput)
		return
	}
	if _, err := h.games.Create(c.Request.Context(), f.input()); err != nil {
		formFailed(c, err, MsgGameNotFound, func(status int, msg string) {
			h.renderGameForm(c, status, heading, action, f, msg)
		})
		return
	}
	c.Redirect(http.StatusFound, gamesPath)
}

// EditGameForm renders the form of an existing game, or 404.
func (h *Handlers) EditGameForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	j, err := h.games.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err, MsgGameNotFound)
		return
	}
	h.renderGameForm(c, http.StatusOK, "Editar Jogo", editAction(gamesPath, id), gameFormOf(j), "")
}

// UpdateGame replaces the game's fields, including its owner.
func (h *Handlers) UpdateGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	heading, action := "Editar Jogo", editAction(gamesPath, id)
	var f gameForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderGameForm(c, http.StatusBadRequest, heading, action, f, MsgInvalidInput)
		return
	}
	if err := h.games.Update(c.Request.Context(), id, f.patch()); err != nil {
		formFailed(c, err, MsgGameNotFound, func(status int, msg string) {
			h.renderGameForm(c, status, heading, action, f, msg)
		})
		return
	}
	c.Redirect(http.StatusFound, gamesPath)
}

// DeleteGame removes a game that was never lent.
func (h *Handlers) DeleteGame(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		failService(c, err, MsgGameNotFound)
		return
	}
	c.Redirect(http.StatusFound, gamesPath)
}

func (h *Handlers) renderGameForm(c *gin.Context, status int, heading, action string, f gameForm, erro string) {
	amigos, err := h.friends.Options(c.Request.Context())
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgListFriends, err)
		return
	}
	c.HTML(status, "jogos/form", formView{Heading: heading, Action: action, Erro: erro, Form: f, Amigos: amigos})
}
