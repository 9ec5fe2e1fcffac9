package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/http/middleware"
)

// LoansPDF godoc
// @ID          loansReport
// @Summary     Loans report
// @Description Renders every loan as an A4 PDF. Open loans show "Em andamento" as end date.
// @Tags        Relatorios
// @Produce     application/pdf
//
// @Success     200  {file}   file   "PDF document"
// @Failure     500  {string} string "Erro ao gerar PDF"
// @Router      /pdf/emprestimos [get]
func (h *Handlers) LoansPDF(c *gin.Context) {
	rows, err := h.loans.List(c.Request.Context(), domain.SortByID)
	if err != nil {
		failText(c, http.StatusInternalServerError, MsgPDF, err)
		return
	}
	var buf bytes.Buffer
	if err := h.report.Render(&buf, rows); err != nil {
		failText(c, http.StatusInternalServerError, MsgPDF, err)
		return
	}
	c.Header("Content-Disposition", "inline; filename=emprestimos.pdf")
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Home redirects to the friend list.
func (h *Handlers) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, friendsPath)
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Erro   string `json:"erro,omitempty"`
}

// Health godoc
// @ID          health
// @Summary     Liveness and storage check
// @Tags        Infra
// @Produce     json
// @Success     200  {object} handlers.HealthResponse
// @Failure     503  {object} handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	if h.ping != nil {
		if err := h.ping(c.Request.Context()); err != nil {
			lg := middleware.LoggerFrom(c)
			lg.Warn().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Erro: MsgUnavailable})
			return
		}
	}
	ok(c, http.StatusOK, HealthResponse{Status: "ok"})
}
