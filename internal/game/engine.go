// internal/game/engine.go
//
// Turn engine for a single hacking session.
// Responsibilities:
//   - Build a session from a candidate snapshot, a chosen secret and an attempt budget.
//   - Score each guess by likeness and narrow the remaining candidates.
//   - Track state transitions: in_progress → won/lost.
//
// Notes:
//   - The caller picks the secret; the engine never generates randomness.
//   - Every precondition is checked before any field is touched, so a
//     rejected call leaves the session exactly as it was.
//   - A Session is owned by one caller at a time (see internal/store for
//     the serialized wrapper used by the HTTP host).
package game

import (
	"crypto/rand"
	"encoding/hex"
)

// Session holds the state of one hacking session.
type Session struct {
	ID string

	secret    Word
	length    int
	remaining []Word
	attempts  int
	duds      int
	history   []Attempt
	status    Status
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithDuds grants n dud removals (see RemoveDud).
func WithDuds(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.duds = n
		}
	}
}

// WithID overrides the random session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// NewSession starts a session over a copy of pool.
//
// Validation rules (all contract violations):
//   - attempts must be positive.
//   - pool must be non-empty and every word must share the secret's length.
//   - secret must be a member of pool (ignoring case).
func NewSession(pool []Word, secret Word, attempts int, opts ...Option) (*Session, error) {
	if attempts <= 0 {
		return nil, invalidSession("attempts must be positive")
	}
	if len(pool) == 0 {
		return nil, invalidSession("pool is empty")
	}
	n := secret.Len()
	var found Word
	remaining := make([]Word, 0, len(pool))
	for _, w := range pool {
		if w.Len() != n {
			return nil, invalidSession("pool words differ in length from secret")
		}
		if found == "" && w.Equal(secret) {
			found = w
		}
		remaining = append(remaining, w)
	}
	if found == "" {
		return nil, invalidSession("secret is not in pool")
	}

	s := &Session{
		ID:        randomID(),
		secret:    found,
		length:    n,
		remaining: remaining,
		attempts:  attempts,
		status:    StatusInProgress,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Guess plays one turn.
//
// Steps:
//  1. reject closed sessions and wrong-length words (no mutation)
//  2. score against the secret, record history, spend an attempt
//  3. full match → won
//  4. otherwise narrow the remaining pool and drop the guess itself
//  5. no attempts left → lost
func (s *Session) Guess(word Word) (Outcome, error) {
	if s.status.Terminal() {
		return Outcome{}, &ContractError{Op: "guess", Err: ErrSessionClosed}
	}
	if n := word.Len(); n != s.length {
		return Outcome{}, &ContractError{
			Op:  "guess",
			Err: &LengthMismatchError{Expected: s.length, Actual: n},
		}
	}

	score, err := Score(word, s.secret)
	if err != nil {
		return Outcome{}, err
	}
	s.history = append(s.history, Attempt{Word: word, Score: score})
	s.attempts--

	if score == s.length {
		s.status = StatusWon
		return Outcome{Result: ResultCorrect, Score: score}, nil
	}

	s.remaining = without(Narrow(s.remaining, word, score), word)

	if s.attempts == 0 {
		s.status = StatusLost
		return Outcome{Result: ResultOutOfAttempts, Score: score}, nil
	}
	return Outcome{Result: ResultIncorrect, Score: score, Remaining: len(s.remaining)}, nil
}

// RemoveDud eliminates one remaining candidate that is not the secret,
// without spending an attempt. choose receives the number of duds
// available and returns the index of the one to drop; it is clamped to range.
func (s *Session) RemoveDud(choose func(n int) int) (Word, error) {
	if s.status.Terminal() {
		return "", &ContractError{Op: "remove dud", Err: ErrSessionClosed}
	}
	if s.duds == 0 {
		return "", ErrNoDuds
	}
	duds := without(s.remaining, s.secret)
	if len(duds) == 0 {
		return "", ErrNoDuds
	}
	i := 0
	if choose != nil {
		i = choose(len(duds))
	}
	if i < 0 || i >= len(duds) {
		i = 0
	}
	dud := duds[i]
	s.remaining = without(s.remaining, dud)
	s.duds--
	return dud, nil
}

// Status reports the current state.
func (s *Session) Status() Status { return s.status }

// AttemptsRemaining reports how many guesses are left.
func (s *Session) AttemptsRemaining() int { return s.attempts }

// DudsRemaining reports how many dud removals are left.
func (s *Session) DudsRemaining() int { return s.duds }

// WordLength is the fixed length every guess must have.
func (s *Session) WordLength() int { return s.length }

// History returns a copy of the played guesses in order.
func (s *Session) History() []Attempt {
	out := make([]Attempt, len(s.history))
	copy(out, s.history)
	return out
}

// Remaining returns a copy of the candidates still consistent with every score.
func (s *Session) Remaining() []Word {
	out := make([]Word, len(s.remaining))
	copy(out, s.remaining)
	return out
}

// Secret reveals the password. Hosts should only show it once the session is over.
func (s *Session) Secret() Word { return s.secret }

// without returns words minus any entry equal to w (ignoring case).
func without(words []Word, w Word) []Word {
	k := w.Key()
	out := make([]Word, 0, len(words))
	for _, x := range words {
		if x.Key() != k {
			out = append(out, x)
		}
	}
	return out
}

func invalidSession(reason string) error {
	return &ContractError{Op: "new session", Err: &InvalidSessionError{Reason: reason}}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
