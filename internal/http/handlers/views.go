package handlers

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/utils"
)

// TemplateFuncs returns the helpers the HTML templates rely on.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		// dataHora formats timestamps the way pt-BR browsers do.
		"dataHora": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("02/01/2006 15:04:05")
		},
	}
}

// formView is the data handed to every */form template.
type formView struct {
	Heading string
	Action  string
	Erro    string
	Form    any
	Amigos  any
	Jogos   any
}

// pathID parses the :id segment or aborts with 400.
func pathID(c *gin.Context) (uint, bool) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		failText(c, http.StatusBadRequest, MsgInvalidID, nil)
		return 0, false
	}
	return id, true
}

// formFailed answers a failed create/edit submit. Validation and reference
// errors re-render the form; anything else is final.
func formFailed(c *gin.Context, err error, notFound string, rerender func(status int, msg string)) {
	status, msg := serviceError(err, notFound)
	if status == http.StatusBadRequest {
		rerender(status, msg)
		return
	}
	failText(c, status, msg, err)
}

// failService answers a failed lookup, delete or state change on an HTML route.
func failService(c *gin.Context, err error, notFound string) {
	status, msg := serviceError(err, notFound)
	failText(c, status, msg, err)
}
