// Package solver suggests guesses for a hacking session.
//
// The strategy is plain minimax over likeness buckets: for each candidate,
// group every remaining candidate by the score it would produce, and
// prefer the guess whose largest group is smallest.
package solver

import "github.com/robalobadob/termhack/internal/game"

// Buckets groups candidates by their likeness against guess.
// Candidates of a different length are skipped.
func Buckets(guess game.Word, candidates []game.Word) map[int][]game.Word {
	out := make(map[int][]game.Word)
	for _, c := range candidates {
		s, err := game.Score(guess, c)
		if err != nil {
			continue
		}
		out[s] = append(out[s], c)
	}
	return out
}

// Suggest returns the candidate that minimizes the worst-case number of
// candidates left after guessing it, together with that worst case.
// Ties keep the earliest candidate. An empty input returns ("", 0).
func Suggest(candidates []game.Word) (game.Word, int) {
	var best game.Word
	bestWorst := -1
	for _, g := range candidates {
		worst := 0
		for score, b := range Buckets(g, candidates) {
			n := len(b)
			if score == g.Len() {
				n-- // guessing the secret ends the game
			}
			if n > worst {
				worst = n
			}
		}
		if bestWorst < 0 || worst < bestWorst {
			best, bestWorst = g, worst
		}
	}
	if bestWorst < 0 {
		return "", 0
	}
	return best, bestWorst
}
