// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// rate limiting, CORS, compression and security headers.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-game-loans/docs"
	"github.com/tbourn/go-game-loans/internal/config"
	"github.com/tbourn/go-game-loans/internal/domain"
	"github.com/tbourn/go-game-loans/internal/http/handlers"
	"github.com/tbourn/go-game-loans/internal/http/middleware"
	"github.com/tbourn/go-game-loans/internal/repo"
	"github.com/tbourn/go-game-loans/internal/report"
	"github.com/tbourn/go-game-loans/internal/services"
	"github.com/tbourn/go-game-loans/web"
)

// friendRepoShim adapts the repository free functions to services.FriendRepo.
type friendRepoShim struct{}

func (friendRepoShim) CreateFriend(ctx context.Context, db *gorm.DB, nome, email string) (*domain.Amigo, error) {
	return repo.CreateFriend(ctx, db, nome, email)
}

func (friendRepoShim) ListFriends(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Amigo, error) {
	return repo.ListFriends(ctx, db, sort)
}

func (friendRepoShim) GetFriend(ctx context.Context, db *gorm.DB, id uint) (*domain.Amigo, error) {
	return repo.GetFriend(ctx, db, id)
}

func (friendRepoShim) UpdateFriend(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return repo.UpdateFriend(ctx, db, id, fields)
}

func (friendRepoShim) DeleteFriend(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return repo.DeleteFriend(ctx, db, id)
}

func (friendRepoShim) FriendsStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.FriendsStats(ctx, db)
}

// gameRepoShim adapts the repository free functions to services.GameRepo.
type gameRepoShim struct{}

func (gameRepoShim) CreateGame(ctx context.Context, db *gorm.DB, titulo, plataforma string, amigoID uint) (*domain.Jogo, error) {
	return repo.CreateGame(ctx, db, titulo, plataforma, amigoID)
}

func (gameRepoShim) ListGames(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Jogo, error) {
	return repo.ListGames(ctx, db, sort)
}

func (gameRepoShim) GetGame(ctx context.Context, db *gorm.DB, id uint) (*domain.Jogo, error) {
	return repo.GetGame(ctx, db, id)
}

func (gameRepoShim) UpdateGame(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return repo.UpdateGame(ctx, db, id, fields)
}

func (gameRepoShim) DeleteGame(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return repo.DeleteGame(ctx, db, id)
}

func (gameRepoShim) GamesStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.GamesStats(ctx, db)
}

// loanRepoShim adapts the repository free functions to services.LoanRepo.
type loanRepoShim struct{}

func (loanRepoShim) CreateLoan(ctx context.Context, db *gorm.DB, jogoID, amigoID uint, dataInicio string, dataFim *string) (*domain.Emprestimo, error) {
	return repo.CreateLoan(ctx, db, jogoID, amigoID, dataInicio, dataFim)
}

func (loanRepoShim) ListLoans(ctx context.Context, db *gorm.DB, sort domain.SortField) ([]domain.Emprestimo, error) {
	return repo.ListLoans(ctx, db, sort)
}

func (loanRepoShim) GetLoan(ctx context.Context, db *gorm.DB, id uint) (*domain.Emprestimo, error) {
	return repo.GetLoan(ctx, db, id)
}

func (loanRepoShim) UpdateLoan(ctx context.Context, db *gorm.DB, id uint, fields map[string]any) (int64, error) {
	return repo.UpdateLoan(ctx, db, id, fields)
}

func (loanRepoShim) CloseLoan(ctx context.Context, db *gorm.DB, id uint, dataFim string) (int64, error) {
	return repo.CloseLoan(ctx, db, id, dataFim)
}

func (loanRepoShim) DeleteLoan(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	return repo.DeleteLoan(ctx, db, id)
}

func (loanRepoShim) LoansStats(ctx context.Context, db *gorm.DB) (int64, *time.Time, error) {
	return repo.LoansStats(ctx, db)
}

// NewServices builds the entity services over db using the repository
// functions. The seeding command shares it with RegisterRoutes.
func NewServices(db *gorm.DB) (*services.FriendService, *services.GameService, *services.LoanService) {
	return services.NewFriendService(db, friendRepoShim{}),
		services.NewGameService(db, gameRepoShim{}),
		services.NewLoanService(db, loanRepoShim{})
}

// Options tunes RegisterRoutes beyond what Config carries.
type Options struct {
	// Report renders /pdf/emprestimos; nil uses report.New().
	Report handlers.ReportRenderer
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: the HTML views, the JSON API under cfg.APIBasePath, the PDF report,
// embedded static assets, health, metrics and (when enabled) Swagger UI.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics (and /metrics, mounted before the rest)
//  7. Rate limiter (per client IP)
//  8. CORS, compression and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config, opts ...Options) {
	var opt Options
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Report == nil {
		opt.Report = report.New()
	}

	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		SkipPaths: []string{"/health", "/metrics"},
	}))

	// 4) Panic recovery to 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP(), "/health", "/metrics")
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	corsHeaders := []string{"Origin", "Content-Type", "Accept", "If-None-Match"}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     corsHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// The PDF is already deflated by the generator.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/pdf/"})))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:        cfg.Security.EnableHSTS,
		HSTSMaxAge:        cfg.Security.HSTSMaxAge,
		CSP:               cfg.Security.CSP,
		CSPExemptPrefixes: []string{"/swagger/"},
		NoStore:           false,
		EnablePolicy:      true,
	}))

	// Views and assets
	r.SetHTMLTemplate(template.Must(web.Templates(handlers.TemplateFuncs())))
	r.StaticFS("/static", web.Static())
	r.GET("/app-config.js", clientConfig(cfg.APIBasePath))

	apiBase := cfg.APIBasePath // e.g. "/api"

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		if isAPI(c, apiBase) {
			handlers.Fail(c, http.StatusNotFound, handlers.MsgRouteNotFound)
			return
		}
		handlers.FailText(c, http.StatusNotFound, handlers.MsgRouteNotFound)
	})
	r.NoMethod(func(c *gin.Context) {
		if isAPI(c, apiBase) {
			handlers.Fail(c, http.StatusMethodNotAllowed, handlers.MsgMethodNotAllowed)
			return
		}
		handlers.FailText(c, http.StatusMethodNotAllowed, handlers.MsgMethodNotAllowed)
	})

	// Dependency injection: services ← repo/db
	friendSvc, gameSvc, loanSvc := NewServices(db)
	h := handlers.New(friendSvc, gameSvc, loanSvc, opt.Report, func(ctx context.Context) error {
		return repo.Ping(ctx, db)
	})

	// Liveness/health
	r.GET("/health", h.Health)

	// HTML views
	r.GET("/", h.Home)
	amigos := r.Group("/amigos")
	{
		amigos.GET("", h.FriendsIndex)
		amigos.GET("/novo", h.NewFriendForm)
		amigos.POST("/novo", h.CreateFriend)
		amigos.GET("/editar/:id", h.EditFriendForm)
		amigos.POST("/editar/:id", h.UpdateFriend)
		amigos.POST("/excluir/:id", h.DeleteFriend)
	}
	jogos := r.Group("/jogos")
	{
		jogos.GET("", h.GamesIndex)
		jogos.GET("/novo", h.NewGameForm)
		jogos.POST("/novo", h.CreateGame)
		jogos.GET("/editar/:id", h.EditGameForm)
		jogos.POST("/editar/:id", h.UpdateGame)
		jogos.POST("/excluir/:id", h.DeleteGame)
	}
	emprestimos := r.Group("/emprestimos")
	{
		emprestimos.GET("", h.LoansIndex)
		emprestimos.GET("/novo", h.NewLoanForm)
		emprestimos.POST("/novo", h.CreateLoan)
		emprestimos.GET("/editar/:id", h.EditLoanForm)
		emprestimos.POST("/editar/:id", h.UpdateLoan)
		emprestimos.POST("/excluir/:id", h.DeleteLoan)
		emprestimos.POST("/devolver/:id", h.ReturnLoan)
	}

	// Report
	r.GET("/pdf/emprestimos", h.LoansPDF)

	// Public API
	api := groupWithPrefix(r, apiBase)
	{
		api.GET("/amigos", h.ListFriendsAPI)
		api.GET("/amigos/:id", h.GetFriendAPI)
		api.GET("/jogos", h.ListGamesAPI)
		api.GET("/jogos/:id", h.GetGameAPI)
		api.GET("/emprestimos", h.ListLoansAPI)
		api.GET("/emprestimos/:id", h.GetLoanAPI)
	}

	// API docs
	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = apiBase
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// clientConfig serves the settings the static page needs as a script
// assigning window.APP_CONFIG, so the page follows API_BASE_PATH.
func clientConfig(apiBase string) gin.HandlerFunc {
	body, _ := json.Marshal(map[string]string{"apiBase": apiBase})
	script := []byte("window.APP_CONFIG = " + string(body) + ";\n")
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-cache")
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", script)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

func isAPI(c *gin.Context, base string) bool {
	return strings.HasPrefix(c.Request.URL.Path, base+"/") || c.Request.URL.Path == base
}
