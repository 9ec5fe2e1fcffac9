package web_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/http/handlers"
	"github.com/tbourn/go-game-loans/web"
)

type view struct {
	Heading string
	Action  string
	Erro    string
	Form    any
	Amigos  any
	Jogos   any
}

func TestTemplates_RenderEveryView(t *testing.T) {
	tpl, err := web.Templates(handlers.TemplateFuncs())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	fim := "2025-02-01"
	ana := domain.Amigo{ID: 1, Nome: "Ana", Email: "ana@x.com", CreatedAt: time.Now()}
	zelda := domain.Jogo{ID: 2, Titulo: "Zelda", Plataforma: "Switch", AmigoID: 1, Dono: &ana}
	loans := []domain.Emprestimo{
		{ID: 1, JogoID: 2, AmigoID: 1, DataInicio: "2025-01-10", Jogo: &zelda, Amigo: &ana},
		{ID: 2, JogoID: 2, AmigoID: 1, DataInicio: "2025-01-10", DataFim: &fim},
	}

	cases := []struct {
		name string
		data any
		want string
	}{
		{"amigos/index", map[string]any{"Amigos": []domain.Amigo{ana}}, "ana@x.com"},
		{"amigos/index", map[string]any{"Amigos": []domain.Amigo{}}, "Nenhum amigo"},
		{"amigos/form", view{Heading: "Novo Amigo", Action: "/amigos/novo", Erro: "falhou", Form: struct{ Nome, Email string }{"Ana", ""}}, `class="erro"`},
		{"jogos/index", map[string]any{"Jogos": []domain.Jogo{zelda}}, "Zelda"},
		{"jogos/form", view{Heading: "Editar Jogo", Action: "/jogos/editar/2", Form: struct {
			Titulo, Plataforma string
			AmigoID            uint
		}{"Zelda", "Switch", 1}, Amigos: []domain.Amigo{ana}}, "selected"},
		{"emprestimos/index", map[string]any{"Emprestimos": loans}, "Em andamento"},
		{"emprestimos/form", view{Heading: "Novo Empréstimo", Action: "/emprestimos/novo", Form: struct {
			JogoID, AmigoID     uint
			DataInicio, DataFim string
		}{2, 1, "2025-01-10", ""}, Amigos: []domain.Amigo{ana}, Jogos: []domain.Jogo{zelda}}, `name="dataFim"`},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := tpl.ExecuteTemplate(&buf, tc.name, tc.data); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !strings.Contains(buf.String(), tc.want) {
			t.Fatalf("%s: missing %q in output", tc.name, tc.want)
		}
	}
}

func TestStatic_ServesFriendsPage(t *testing.T) {
	fs := web.Static()
	for _, name := range []string{"/amigos.html", "/js/script.js", "/css/style.css"} {
		f, err := fs.Open(name)
		if err != nil {
			t.Fatalf("open %s: %v", name, err)
		}
		b, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil || len(b) == 0 {
			t.Fatalf("read %s: %v", name, err)
		}
		if name == "/js/script.js" && (!strings.Contains(string(b), "APP_CONFIG") || !strings.Contains(string(b), "'/amigos'")) {
			t.Fatalf("script should fetch <apiBase>/amigos")
		}
		if name == "/amigos.html" && !strings.Contains(string(b), `src="/app-config.js"`) {
			t.Fatalf("page should load the client config before the script")
		}
	}
}
