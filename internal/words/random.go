package words

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/robalobadob/termhack/internal/game"
)

// RandomIndex returns a cryptographically random index in [0, n).
// It returns 0 when n <= 1.
func RandomIndex(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// Sample draws up to n distinct random words of the given length, skipping
// any word listed in exclude (ignoring case). Fewer than n words are
// returned when the dictionary runs short; none at all is an error.
func (d *Dictionary) Sample(length, n int, exclude []string) ([]string, error) {
	skip := make(map[string]struct{}, len(exclude))
	for _, w := range exclude {
		skip[game.Word(w).Key()] = struct{}{}
	}
	var src []string
	for _, w := range d.byLen[length] {
		if _, ok := skip[w]; !ok {
			src = append(src, w)
		}
	}
	if len(src) == 0 {
		return nil, fmt.Errorf("words: no %d-letter words available", length)
	}
	if n > len(src) {
		n = len(src)
	}
	// partial Fisher–Yates
	for i := 0; i < n; i++ {
		j := i + RandomIndex(len(src)-i)
		src[i], src[j] = src[j], src[i]
	}
	return src[:n], nil
}
