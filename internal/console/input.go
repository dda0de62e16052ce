// internal/console/input.go
//
// The data-input phase: build the candidate pool from typed lines.
//
// Commands:
//   word [word ...]  add candidates (whitespace separated)
//   -word            remove a candidate
//   !list            show the pool
//   !fill [N]        add N random dictionary words of the pool's length
//   !done / empty    finish (pool must be non-empty)
//
// Every pool error is reported as a warning; the phase keeps going.

package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/termhack/internal/game"
)

const defaultFill = 10

// BuildPool runs the data-input phase. wordLength picks the length used by
// !fill while the pool is still empty.
func (c *Console) BuildPool(ctx context.Context, wordLength int) (*game.Pool, error) {
	p := game.NewPool()
	c.out.Line("ENTER CANDIDATE PASSWORDS. EMPTY LINE OR !done TO FINISH, !help FOR COMMANDS.")

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c.out.Prompt("> ")
		line, ok := c.next()
		if !ok {
			if p.Len() > 0 {
				return p, nil
			}
			return nil, ErrInputClosed
		}

		switch cmd, arg := command(line); cmd {
		case "", "!done":
			if p.Len() == 0 {
				c.out.Warn("the list is empty, enter at least one word")
				continue
			}
			log.Debug().Int("candidates", p.Len()).Msg("input phase complete")
			return p, nil
		case "!help":
			c.out.Line("word [word ...] | -word | !list | !fill [N] | !done")
		case "!list":
			c.list(p)
		case "!fill":
			c.fill(p, arg, wordLength)
		case "word":
			if strings.HasPrefix(line, "-") {
				c.remove(p, strings.TrimSpace(line[1:]))
				continue
			}
			for _, tok := range strings.Fields(line) {
				c.add(p, tok)
			}
		default:
			c.out.Warn("unknown command %s", cmd)
		}
	}
}

func (c *Console) add(p *game.Pool, tok string) {
	err := p.Add(tok)
	if err == nil {
		c.out.Line("+ %s", strings.ToUpper(tok))
		return
	}
	var ae *game.AddError
	if !errors.As(err, &ae) {
		c.out.Warn("%v", err)
		return
	}
	switch ae.Kind {
	case game.AddDuplicate:
		c.out.Warn("%s is already in the list", strings.ToUpper(tok))
	case game.AddLengthMismatch:
		var lm *game.LengthMismatchError
		if errors.As(err, &lm) {
			c.out.Warn("%s has %d letters, expected %d", strings.ToUpper(tok), lm.Actual, lm.Expected)
		}
	default:
		var iw *game.InvalidWordError
		if errors.As(err, &iw) {
			c.out.Warn("%q is not a valid word (%s)", tok, iw.Reason)
		}
	}
}

func (c *Console) remove(p *game.Pool, tok string) {
	if err := p.Remove(tok); err != nil {
		c.out.Warn("%q is not in the list", tok)
		return
	}
	c.out.Line("- %s", strings.ToUpper(tok))
}

func (c *Console) list(p *game.Pool) {
	if p.Len() == 0 {
		c.out.Line("(empty)")
		return
	}
	c.out.Words(p.Snapshot())
}

func (c *Console) fill(p *game.Pool, arg string, wordLength int) {
	if c.dict == nil {
		c.out.Warn("no dictionary loaded")
		return
	}
	n := defaultFill
	if arg != "" {
		v, err := strconv.Atoi(arg)
		if err != nil || v <= 0 {
			c.out.Warn("!fill expects a positive number")
			return
		}
		n = v
	}
	if l, ok := p.WordLength(); ok {
		wordLength = l
	}
	var have []string
	for _, w := range p.Snapshot() {
		have = append(have, w.String())
	}
	picked, err := c.dict.Sample(wordLength, n, have)
	if err != nil {
		c.out.Warn("%v", err)
		return
	}
	for _, w := range picked {
		c.add(p, w)
	}
}

// command splits "!cmd arg" lines; other lines return ("word", "").
func command(line string) (cmd, arg string) {
	if line == "" {
		return "", ""
	}
	if !strings.HasPrefix(line, "!") {
		return "word", ""
	}
	f := strings.Fields(line)
	if len(f) > 1 {
		arg = f[1]
	}
	return strings.ToLower(f[0]), arg
}
