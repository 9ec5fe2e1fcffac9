// Package handlers provides the HTTP handlers for the HTML views, the JSON
// API and the PDF report.
//
// This file defines the response helpers shared by every route. JSON errors
// use the ErrorResponse envelope, HTML routes answer errors as plain text.
// Both paths log server-side failures with the request-scoped logger.
//
// Example JSON error:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "erro": "Amigo não encontrado.",
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/http/middleware"
	"github.com/tbourn/go-game-loans/internal/services"
)

// ErrorResponse is the error envelope returned by the JSON endpoints.
type ErrorResponse struct {
	// Human-readable message (safe to show to users)
	Erro string `json:"erro" example:"Erro ao buscar amigos"`
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
}

// fail aborts the request with a JSON error. Server errors (>=500) are logged
// along with cause when one is given.
func fail(c *gin.Context, status int, msg string, cause error) {
	logFailure(c, status, msg, cause)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Erro:      msg,
		RequestID: middleware.RequestIDFrom(c),
	})
}

// Fail is the exported variant of fail(), used by the router fallbacks.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg, nil) }

// failText aborts an HTML route with a plain-text body.
func failText(c *gin.Context, status int, msg string, cause error) {
	logFailure(c, status, msg, cause)
	c.Abort()
	c.String(status, msg)
}

// FailText is the exported variant of failText().
func FailText(c *gin.Context, status int, msg string) { failText(c, status, msg, nil) }

func logFailure(c *gin.Context, status int, msg string, cause error) {
	if status < http.StatusInternalServerError {
		return
	}
	lg := middleware.LoggerFrom(c)
	ev := lg.Error().Int("status", status).Str("message", msg)
	if cause != nil {
		ev = ev.Err(cause)
		_ = c.Error(cause)
	}
	ev.Msg("request failed")
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// serviceError maps a service error to a status and a user-facing message.
// notFound is the entity-specific text used for the not-found sentinels.
func serviceError(err error, notFound string) (int, string) {
	switch {
	case errors.Is(err, services.ErrFriendNotFound),
		errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrLoanNotFound):
		return http.StatusNotFound, notFound
	case errors.Is(err, services.ErrInvalidDate):
		return http.StatusBadRequest, MsgInvalidDate
	case errors.Is(err, services.ErrUnknownReference):
		return http.StatusBadRequest, MsgUnknownReference
	case errors.Is(err, services.ErrInvalidSort):
		return http.StatusBadRequest, MsgInvalidSort
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest, MsgInvalidInput
	case errors.Is(err, services.ErrFriendInUse):
		return http.StatusConflict, MsgFriendInUse
	case errors.Is(err, services.ErrGameInUse):
		return http.StatusConflict, MsgGameInUse
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}
