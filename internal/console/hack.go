package console

import (
	"context"
	"errors"
	"strings"

	"github.com/robalobadob/termhack/internal/game"
	"github.com/robalobadob/termhack/internal/solver"
)

// Hack runs the hacking phase until the session is won or lost.
//
// A line is a guess unless it is one of:
//
//	?      suggest a guess
//	!dud   remove a dud candidate (if the session has any left)
//	!quit  leave; returns ErrQuit
//
// Guesses that are not on the candidate list are refused without spending
// an attempt.
func (c *Console) Hack(ctx context.Context, s *game.Session) error {
	offered := make(map[string]struct{})
	for _, w := range s.Remaining() {
		offered[w.Key()] = struct{}{}
	}

	c.out.Line("ROBCO INDUSTRIES (TM) TERMLINK PROTOCOL")
	c.out.Line("ENTER PASSWORD NOW")
	c.out.Line("")

	for !s.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			return err
		}
		c.out.Attempts(s.AttemptsRemaining())
		c.out.Words(s.Remaining())
		c.out.Prompt(">")

		line, ok := c.next()
		if !ok {
			return ErrInputClosed
		}
		switch strings.ToLower(line) {
		case "":
			continue
		case "?":
			c.hint(s)
			continue
		case "!dud":
			c.dud(s)
			continue
		case "!quit":
			return ErrQuit
		}

		w, err := game.Validate(line)
		if err != nil {
			c.out.Warn("%q is not a word", line)
			continue
		}
		if _, ok := offered[w.Key()]; !ok {
			c.out.Warn("%s is not on the list", strings.ToUpper(line))
			continue
		}

		out, err := s.Guess(w)
		if err != nil {
			// only reachable through a host bug; surface it
			return err
		}
		c.report(s, w, out)
	}
	return nil
}

func (c *Console) report(s *game.Session, w game.Word, out game.Outcome) {
	c.out.Line(">%s", strings.ToUpper(w.String()))
	switch out.Result {
	case game.ResultCorrect:
		c.out.Line(">Exact match!")
		c.out.Line(">Please wait while system is accessed.")
	case game.ResultOutOfAttempts:
		c.out.Line(">Entry denied.")
		c.out.Line(">Likeness=%d", out.Score)
		c.out.Line("")
		c.out.Line("TERMINAL LOCKED. PASSWORD WAS %s", strings.ToUpper(s.Secret().String()))
	default:
		c.out.Line(">Entry denied.")
		c.out.Line(">Likeness=%d", out.Score)
		c.out.Line("")
	}
}

func (c *Console) hint(s *game.Session) {
	w, worst := solver.Suggest(s.Remaining())
	if w == "" {
		c.out.Warn("no candidates left")
		return
	}
	c.out.Line(">Try %s (leaves at most %d)", strings.ToUpper(w.String()), worst)
}

func (c *Console) dud(s *game.Session) {
	w, err := s.RemoveDud(c.pick)
	if errors.Is(err, game.ErrNoDuds) {
		c.out.Warn("no duds left to remove")
		return
	}
	if err != nil {
		c.out.Warn("%v", err)
		return
	}
	c.out.Line(">Dud removed: %s", strings.ToUpper(w.String()))
}
