// Friend HTML handlers.
//
// This file serves the friend views:
//   - GET  /amigos                 (list)
//   - GET  /amigos/novo            (create form)
//   - POST /amigos/novo            (create)
//   - GET  /amigos/editar/:id      (edit form)
//   - POST /amigos/editar/:id      (update)
//   - POST /amigos/excluir/:id     (delete, 409 while referenced)
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/domain"
)

const friendsPath = "/amigos"

// FriendsIndex renders the friend list.
func (h *Handlers) FriendsIndex(c *gin.Context) {
	list, err := h.friends.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgListFriends, err)
		return
	}
	c.HTML(http.StatusOK, "amigos/index", gin.H{"Amigos": list})
}

// NewFriendForm renders an empty friend form.
func (h *Handlers) NewFriendForm(c *gin.Context) {
	h.renderFriendForm(c, http.StatusOK, "Novo Amigo", friendsPath+"/novo", friendForm{}, "")
}

// CreateFriend stores a friend and redirects to the list.
func (h *Handlers) CreateFriend(c *gin.Context) {
	const heading, action = "Novo Amigo", friendsPath + "/novo"
	var f friendForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderFriendForm(c, http.StatusBadRequest, heading, action, f, MsgInvalidInput)
		return
	}
	if _, err := h.friends.Create(c.Request.Context(), f.input()); err != nil {
		formFailed(c, err, MsgFriendNotFound, func(status int, msg string) {
			h.renderFriendForm(c, status, heading, action, f, msg)
		})
		return
	}
	c.Redirect(http.StatusFound, friendsPath)
}

// EditFriendForm renders the form of an existing friend, or 404.
func (h *Handlers) EditFriendForm(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.friends.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err, MsgFriendNotFound)
		return
	}
	h.renderFriendForm(c, http.StatusOK, "Editar Amigo", editAction(friendsPath, id), friendFormOf(a), "")
}

// UpdateFriend replaces the friend's fields. A missing id is a no-op.
func (h *Handlers) UpdateFriend(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	heading, action := "Editar Amigo", editAction(friendsPath, id)
	var f friendForm
	if err := c.ShouldBind(&f); err != nil {
		h.renderFriendForm(c, http.StatusBadRequest, heading, action, f, MsgInvalidInput)
		return
	}
	if err := h.friends.Update(c.Request.Context(), id, f.patch()); err != nil {
		formFailed(c, err, MsgFriendNotFound, func(status int, msg string) {
			h.renderFriendForm(c, status, heading, action, f, msg)
		})
		return
	}
	c.Redirect(http.StatusFound, friendsPath)
}

// DeleteFriend removes a friend that nothing references.
func (h *Handlers) DeleteFriend(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.friends.Delete(c.Request.Context(), id); err != nil {
		failService(c, err, MsgFriendNotFound)
		return
	}
	c.Redirect(http.StatusFound, friendsPath)
}

func (h *Handlers) renderFriendForm(c *gin.Context, status int, heading, action string, f friendForm, erro string) {
	c.HTML(status, "amigos/form", formView{Heading: heading, Action: action, Erro: erro, Form: f})
}

func editAction(base string, id uint) string {
	return fmt.Sprintf("%s/editar/%d", base, id)
}
