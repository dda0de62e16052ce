// internal/game/types.go
//
// Core type definitions for the hacking engine.
// Defines:
//   - Word: a candidate password, case preserved for display.
//   - Status: state of a single hacking session (in progress/won/lost).
//   - Result/Outcome: what a single guess produced.
//   - Attempt: one entry of a session's guess history.

package game

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Word is a candidate password. The original casing is kept for display;
// all comparisons go through Key.
type Word string

// Key returns the case-folded form used for equality and scoring.
// Folding is rune-by-rune so the rune count never changes.
func (w Word) Key() string { return strings.Map(foldRune, string(w)) }

// foldRune maps every rune of a simple case-folding orbit to one
// representative: the lower case of the orbit's smallest rune.
// 'S', 's' and 'ſ' all become 's'; 'Σ', 'σ' and 'ς' all become 'σ'.
func foldRune(r rune) rune {
	lo := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < lo {
			lo = f
		}
	}
	return unicode.ToLower(lo)
}

// Len reports the length of w in runes.
func (w Word) Len() int { return utf8.RuneCountInString(string(w)) }

// Equal reports whether w and o are the same word ignoring case.
func (w Word) Equal(o Word) bool { return w.Key() == o.Key() }

func (w Word) String() string { return string(w) }

// Status represents the lifecycle state of a Session.
// InProgress is the only non-terminal state.
type Status int

const (
	StatusInProgress Status = iota
	StatusWon
	StatusLost
)

func (s Status) String() string {
	switch s {
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "in_progress"
	}
}

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s != StatusInProgress }

// Result tags the variant of an Outcome.
type Result int

const (
	ResultIncorrect Result = iota
	ResultCorrect
	ResultOutOfAttempts
)

func (r Result) String() string {
	switch r {
	case ResultCorrect:
		return "correct"
	case ResultOutOfAttempts:
		return "out_of_attempts"
	default:
		return "incorrect"
	}
}

// Outcome is the value returned by Session.Guess.
//   - ResultCorrect:       Score == word length, Remaining is unset (0).
//   - ResultIncorrect:     Score and Remaining (candidates left) are set.
//   - ResultOutOfAttempts: Score is set; the session is lost.
type Outcome struct {
	Result    Result
	Score     int
	Remaining int
}

// Attempt is a single played guess with the likeness it scored.
type Attempt struct {
	Word  Word
	Score int
}
