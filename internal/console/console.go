// Package console is the terminal host: it reads lines, drives the
// data-input phase and the hacking phase, and renders results. The game
// rules themselves live in internal/game.
package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termhack/internal/game"
	"github.com/robalobadob/termhack/internal/words"
)

var (
	// ErrInputClosed is returned when input ends before a phase can finish.
	ErrInputClosed = errors.New("console: input closed")
	// ErrQuit is returned when the player leaves a session with !quit.
	ErrQuit = errors.New("console: player quit")
)

// Options configure one console run.
type Options struct {
	Attempts   int
	Duds       int
	WordLength int

	// Pick chooses the secret index and dud indices; defaults to words.RandomIndex.
	Pick func(n int) int
}

// Console reads player lines from in and writes to out.
type Console struct {
	in   *bufio.Scanner
	out  *Renderer
	dict *words.Dictionary
	pick func(n int) int
}

// New builds a console. dict may be nil, which disables !fill.
func New(in io.Reader, out io.Writer, dict *words.Dictionary) *Console {
	return &Console{
		in:   bufio.NewScanner(in),
		out:  NewRenderer(out),
		dict: dict,
		pick: words.RandomIndex,
	}
}

// Run plays one full game: build the pool, pick a secret, hack.
// The returned session is terminal unless the player quit or input ended.
func (c *Console) Run(ctx context.Context, opts Options) (*game.Session, error) {
	if opts.Pick != nil {
		c.pick = opts.Pick
	}
	pool, err := c.BuildPool(ctx, opts.WordLength)
	if err != nil {
		return nil, err
	}

	snap := pool.Snapshot()
	secret := snap[c.pick(len(snap))]
	s, err := game.NewSession(snap, secret, opts.Attempts, game.WithDuds(opts.Duds))
	if err != nil {
		return nil, err
	}
	log.Debug().Str("session", s.ID).Int("candidates", len(snap)).Int("attempts", opts.Attempts).Msg("session started")

	if err := c.Hack(ctx, s); err != nil {
		return s, err
	}
	log.Info().Str("session", s.ID).Str("status", s.Status().String()).Int("guesses", len(s.History())).Msg("session finished")
	return s, nil
}

// next returns the next trimmed input line, ok is false at end of input.
func (c *Console) next() (string, bool) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			log.Warn().Err(err).Msg("read input")
		}
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}
