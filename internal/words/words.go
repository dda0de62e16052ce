// internal/words/words.go
//
// Provides the dictionary that candidate pools are filled from.
//
// Responsibilities:
//   - Load a word list from WORDS_FILE or fall back to the embedded assets list.
//   - Keep only words game.Validate accepts, normalized to lowercase, deduplicated.
//   - Index words by length so a pool of one length can be drawn quickly.
//
// Randomness (secret choice, sampling) lives in random.go; the game engine
// itself never draws random numbers.

package words

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/termhack/assets"
	"github.com/robalobadob/termhack/internal/game"
)

// ErrEmpty is returned when a dictionary source yields no usable word.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an immutable, length-indexed word list.
type Dictionary struct {
	byLen map[int][]string
	set   map[string]struct{}
}

// Load reads the dictionary at path, or the embedded list when path is empty.
func Load(path string) (*Dictionary, error) {
	if path == "" {
		return Parse(assets.Words())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse builds a dictionary from one word per line.
// Blank lines and # comments are skipped; invalid words are dropped silently.
func Parse(r io.Reader) (*Dictionary, error) {
	lines, err := assets.ReadLines(r)
	if err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	d := &Dictionary{byLen: make(map[int][]string), set: make(map[string]struct{})}
	for _, line := range lines {
		w, err := game.Validate(strings.ToLower(line))
		if err != nil {
			continue
		}
		k := w.Key()
		if _, dup := d.set[k]; dup {
			continue
		}
		d.set[k] = struct{}{}
		d.byLen[w.Len()] = append(d.byLen[w.Len()], k)
	}
	if len(d.set) == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

// OfLength returns the words with n letters, in file order.
func (d *Dictionary) OfLength(n int) []string {
	return append([]string(nil), d.byLen[n]...)
}

// Lengths returns the available word lengths in ascending order.
func (d *Dictionary) Lengths() []int {
	out := make([]int, 0, len(d.byLen))
	for n := range d.byLen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Contains reports whether w is in the dictionary (ignoring case).
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[game.Word(w).Key()]
	return ok
}

// Size returns the total number of words.
func (d *Dictionary) Size() int { return len(d.set) }
