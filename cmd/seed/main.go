// Command seed fills the configured database with fake friends, games and
// loans for demos and local development.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-game-loans/internal/config"
	httpapi "github.com/tbourn/go-game-loans/internal/http"
	"github.com/tbourn/go-game-loans/internal/repo"
	"github.com/tbourn/go-game-loans/internal/seed"
	"github.com/tbourn/go-game-loans/internal/sysutil"
)

func main() {
	friends := flag.Int("friends", 10, "number of friends to create")
	games := flag.Int("games", 20, "number of games to create")
	loans := flag.Int("loans", 15, "number of loans to create")
	open := flag.Float64("open", 0.3, "share of loans left in progress (0..1)")
	seedValue := flag.Uint64("seed", 0, "random seed; 0 picks one")
	migrate := flag.Bool("migrate", sysutil.IsTruthy(os.Getenv("SEED_MIGRATE")), "create the schema before seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg(".env could not be parsed; using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.ConfigureLogger(cfg.LogPretty, os.Stderr)
	sysutil.SetLogLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repo.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	defer func() { _ = repo.Close(db) }()

	if *migrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
	}

	f, g, l := httpapi.NewServices(db)
	_, err = seed.New(f, g, l, *seedValue).Run(ctx, seed.Options{
		Friends:   *friends,
		Games:     *games,
		Loans:     *loans,
		OpenRatio: *open,
	})
	if err != nil {
		log.Error().Err(err).Msg("seed failed")
		_ = repo.Close(db)
		stop()
		os.Exit(1)
	}
}
