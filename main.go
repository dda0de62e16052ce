// main.go
//
// Entry point for termhack.
//   - play  (default): terminal game on stdin/stdout, logs on stderr.
//   - serve: HTTP host backed by SQLite for accounts, history and daily results.
//
// Settings come from .env, flags and the environment (see internal/config).

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termhack/internal/config"
	"github.com/robalobadob/termhack/internal/console"
	"github.com/robalobadob/termhack/internal/db"
	"github.com/robalobadob/termhack/internal/httpserver"
	"github.com/robalobadob/termhack/internal/store"
	"github.com/robalobadob/termhack/internal/words"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	dict, err := words.Load(cfg.Game.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Game.WordsFile).Msg("failed to load word list")
	}

	switch cfg.Mode {
	case config.ModeServe:
		serve(cfg, dict)
	default:
		play(cfg, dict)
	}
}

func play(cfg *config.Config, dict *words.Dictionary) {
	// stdout belongs to the game screen
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := console.New(os.Stdin, os.Stdout, dict)
	_, err := c.Run(ctx, console.Options{
		Attempts:   cfg.Game.Attempts,
		Duds:       cfg.Game.Duds,
		WordLength: cfg.Game.WordLength,
	})
	switch {
	case err == nil, errors.Is(err, console.ErrQuit):
	case errors.Is(err, console.ErrInputClosed), errors.Is(err, context.Canceled):
		log.Info().Msg("bye")
	default:
		log.Fatal().Err(err).Msg("game aborted")
	}
}

func serve(cfg *config.Config, dict *words.Dictionary) {
	conn, err := db.OpenMigrated(cfg.DB.Path)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("failed to open database")
	}
	defer conn.Close()

	mem, err := store.NewMemoryStore(cfg.HTTP.StoreCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}

	srv := httpserver.New(cfg, mem, conn, dict)
	log.Info().Str("port", cfg.Port).Int("words", dict.Size()).Msg("starting termhack server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
