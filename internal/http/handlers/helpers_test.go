package handlers

import (
	"context"
	"errors"
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/services"
)

var errBoom = errors.New("boom")

// --- fakes ---

type fakeFriends struct {
	list    []domain.Amigo
	listErr error
	byID    map[uint]*domain.Amigo
	created []services.FriendInput
	patched map[uint]services.FriendPatch
	err     error // returned by Create/Update/Delete
	statsN  int64
	statsAt *time.Time
	deleted []uint
}

func (f *fakeFriends) List(ctx context.Context, sort domain.SortField) ([]domain.Amigo, error) {
	return f.list, f.listErr
}
func (f *fakeFriends) Options(ctx context.Context) ([]domain.Amigo, error) { return f.list, f.listErr }
func (f *fakeFriends) Get(ctx context.Context, id uint) (*domain.Amigo, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, services.ErrFriendNotFound
}
func (f *fakeFriends) Create(ctx context.Context, in services.FriendInput) (*domain.Amigo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &domain.Amigo{ID: uint(len(f.created)), Nome: in.Nome, Email: in.Email}, nil
}
func (f *fakeFriends) Update(ctx context.Context, id uint, p services.FriendPatch) error {
	if f.err != nil {
		return f.err
	}
	if f.patched == nil {
		f.patched = map[uint]services.FriendPatch{}
	}
	f.patched[id] = p
	return nil
}
func (f *fakeFriends) Delete(ctx context.Context, id uint) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}
func (f *fakeFriends) Stats(ctx context.Context) (int64, *time.Time, error) {
	return f.statsN, f.statsAt, nil
}

type fakeGames struct {
	list    []domain.Jogo
	byID    map[uint]*domain.Jogo
	created []services.GameInput
	patched map[uint]services.GamePatch
	err     error
}

func (g *fakeGames) List(ctx context.Context, sort domain.SortField) ([]domain.Jogo, error) {
	return g.list, nil
}
func (g *fakeGames) Options(ctx context.Context) ([]domain.Jogo, error) { return g.list, nil }
func (g *fakeGames) Get(ctx context.Context, id uint) (*domain.Jogo, error) {
	if j, ok := g.byID[id]; ok {
		return j, nil
	}
	return nil, services.ErrGameNotFound
}
func (g *fakeGames) Create(ctx context.Context, in services.GameInput) (*domain.Jogo, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, in)
	return &domain.Jogo{ID: 1}, nil
}
func (g *fakeGames) Update(ctx context.Context, id uint, p services.GamePatch) error {
	if g.err != nil {
		return g.err
	}
	if g.patched == nil {
		g.patched = map[uint]services.GamePatch{}
	}
	g.patched[id] = p
	return nil
}
func (g *fakeGames) Delete(ctx context.Context, id uint) error { return g.err }
func (g *fakeGames) Stats(ctx context.Context) (int64, *time.Time, error) {
	return int64(len(g.list)), nil, nil
}

type fakeLoans struct {
	list     []domain.Emprestimo
	listErr  error
	byID     map[uint]*domain.Emprestimo
	created  []services.LoanInput
	patched  map[uint]services.LoanPatch
	returned map[uint]string
	err      error
}

func (l *fakeLoans) List(ctx context.Context, sort domain.SortField) ([]domain.Emprestimo, error) {
	return l.list, l.listErr
}
func (l *fakeLoans) Get(ctx context.Context, id uint) (*domain.Emprestimo, error) {
	if e, ok := l.byID[id]; ok {
		return e, nil
	}
	return nil, services.ErrLoanNotFound
}
func (l *fakeLoans) Create(ctx context.Context, in services.LoanInput) (*domain.Emprestimo, error) {
	if l.err != nil {
		return nil, l.err
	}
	l.created = append(l.created, in)
	return &domain.Emprestimo{ID: 1}, nil
}
func (l *fakeLoans) Update(ctx context.Context, id uint, p services.LoanPatch) error {
	if l.err != nil {
		return l.err
	}
	if l.patched == nil {
		l.patched = map[uint]services.LoanPatch{}
	}
	l.patched[id] = p
	return nil
}
func (l *fakeLoans) Return(ctx context.Context, id uint, date string) error {
	if l.err != nil {
		return l.err
	}
	if l.returned == nil {
		l.returned = map[uint]string{}
	}
	l.returned[id] = date
	return nil
}
func (l *fakeLoans) Delete(ctx context.Context, id uint) error { return l.err }
func (l *fakeLoans) Stats(ctx context.Context) (int64, *time.Time, error) {
	return int64(len(l.list)), nil, nil
}

type fakeReport struct {
	err  error
	rows int
}

func (r *fakeReport) Render(w io.Writer, rows []domain.Emprestimo) error {
	if r.err != nil {
		return r.err
	}
	r.rows = len(rows)
	_, err := io.WriteString(w, "%PDF-1.3 fake")
	return err
}

// --- router ---

// testTemplates renders just enough of each view to assert on.
const testTemplates = `
{{define "amigos/index"}}{{range .Amigos}}[{{.ID}} {{.Nome}}]{{end}}{{end}}
{{define "amigos/form"}}{{.Heading}}|{{.Action}}|{{.Erro}}|{{.Form.Nome}}|{{.Form.Email}}{{end}}
{{define "jogos/index"}}{{range .Jogos}}[{{.Titulo}}]{{end}}{{end}}
{{define "jogos/form"}}{{.Heading}}|{{.Erro}}|{{range .Amigos}}<{{.Nome}}>{{end}}{{end}}
{{define "emprestimos/index"}}{{range .Emprestimos}}[{{.ID}} {{if .InProgress}}Em andamento{{else}}{{deref .DataFim}}{{end}}]{{end}}{{end}}
{{define "emprestimos/form"}}{{.Heading}}|{{.Erro}}|{{.Form.DataInicio}}|{{.Form.DataFim}}|{{range .Jogos}}<{{.Titulo}}>{{end}}{{end}}
`

type fixture struct {
	friends *fakeFriends
	games   *fakeGames
	loans   *fakeLoans
	report  *fakeReport
	pingErr error
	r       *gin.Engine
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		friends: &fakeFriends{byID: map[uint]*domain.Amigo{}},
		games:   &fakeGames{byID: map[uint]*domain.Jogo{}},
		loans:   &fakeLoans{byID: map[uint]*domain.Emprestimo{}},
		report:  &fakeReport{},
	}
	h := New(f.friends, f.games, f.loans, f.report, func(context.Context) error { return f.pingErr })

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Funcs(TemplateFuncs()).Parse(testTemplates)))

	r.GET("/", h.Home)
	r.GET("/health", h.Health)
	r.GET("/amigos", h.FriendsIndex)
	r.GET("/amigos/novo", h.NewFriendForm)
	r.POST("/amigos/novo", h.CreateFriend)
	r.GET("/amigos/editar/:id", h.EditFriendForm)
	r.POST("/amigos/editar/:id", h.UpdateFriend)
	r.POST("/amigos/excluir/:id", h.DeleteFriend)
	r.GET("/jogos", h.GamesIndex)
	r.GET("/jogos/novo", h.NewGameForm)
	r.POST("/jogos/novo", h.CreateGame)
	r.GET("/jogos/editar/:id", h.EditGameForm)
	r.POST("/jogos/editar/:id", h.UpdateGame)
	r.POST("/jogos/excluir/:id", h.DeleteGame)
	r.GET("/emprestimos", h.LoansIndex)
	r.GET("/emprestimos/novo", h.NewLoanForm)
	r.POST("/emprestimos/novo", h.CreateLoan)
	r.GET("/emprestimos/editar/:id", h.EditLoanForm)
	r.POST("/emprestimos/editar/:id", h.UpdateLoan)
	r.POST("/emprestimos/excluir/:id", h.DeleteLoan)
	r.POST("/emprestimos/devolver/:id", h.ReturnLoan)
	r.GET("/pdf/emprestimos", h.LoansPDF)
	r.GET("/api/amigos", h.ListFriendsAPI)
	r.GET("/api/amigos/:id", h.GetFriendAPI)
	r.GET("/api/jogos", h.ListGamesAPI)
	r.GET("/api/jogos/:id", h.GetGameAPI)
	r.GET("/api/emprestimos", h.ListLoansAPI)
	r.GET("/api/emprestimos/:id", h.GetLoanAPI)
	f.r = r
	return f
}

func (f *fixture) get(path string, hdr ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func (f *fixture) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func strp(s string) *string { return &s }
