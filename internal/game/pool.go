// internal/game/pool.go
//
// Pool is the candidate list built during the data-input phase.
//
// Invariants:
//   - words keep insertion order and are unique ignoring case.
//   - every word has length wordLength while the pool is non-empty.
//   - wordLength is cleared only when the pool becomes empty.
//
// A Pool is not safe for concurrent use; it belongs to one phase at a time.

package game

import "strings"

// Pool is an ordered, deduplicated set of equal-length words.
type Pool struct {
	words  []Word
	keys   map[string]struct{}
	length int // 0 = unset
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{keys: make(map[string]struct{})}
}

// Add validates token and appends it.
// Failures come back as *AddError and leave the pool unchanged.
func (p *Pool) Add(token string) error {
	w, err := Validate(token)
	if err != nil {
		return &AddError{Kind: AddInvalid, Word: token, Err: err}
	}
	if p.keys == nil {
		p.keys = make(map[string]struct{})
	}
	n := w.Len()
	if p.length != 0 && n != p.length {
		return &AddError{
			Kind: AddLengthMismatch,
			Word: token,
			Err:  &LengthMismatchError{Expected: p.length, Actual: n},
		}
	}
	k := w.Key()
	if _, dup := p.keys[k]; dup {
		return &AddError{Kind: AddDuplicate, Word: token}
	}
	if p.length == 0 {
		p.length = n
	}
	p.keys[k] = struct{}{}
	p.words = append(p.words, w)
	return nil
}

// Remove deletes the word matching token ignoring case.
// Empty or whitespace-only input never matches.
func (p *Pool) Remove(token string) error {
	if strings.TrimSpace(token) == "" {
		return &RemoveError{Kind: RemoveNotFound, Word: token}
	}
	k := Word(token).Key()
	if _, ok := p.keys[k]; !ok {
		return &RemoveError{Kind: RemoveNotFound, Word: token}
	}
	for i, w := range p.words {
		if w.Key() == k {
			p.words = append(p.words[:i], p.words[i+1:]...)
			break
		}
	}
	delete(p.keys, k)
	if len(p.words) == 0 {
		p.length = 0
	}
	return nil
}

// Contains reports whether token is in the pool ignoring case.
func (p *Pool) Contains(token string) bool {
	_, ok := p.keys[Word(token).Key()]
	return ok
}

// Snapshot returns a copy of the words in insertion order.
func (p *Pool) Snapshot() []Word {
	out := make([]Word, len(p.words))
	copy(out, p.words)
	return out
}

// WordLength returns the fixed word length, ok is false while the pool is empty.
func (p *Pool) WordLength() (n int, ok bool) {
	return p.length, p.length != 0
}

// Len returns the number of candidates.
func (p *Pool) Len() int { return len(p.words) }
