package game

// Narrow keeps the words of pool that would have scored exactly score
// against guess; every other word cannot be the secret. The result is a
// subsequence of pool in its original order, and the guess itself is kept
// if it qualifies. Words whose length differs from guess never qualify.
func Narrow(pool []Word, guess Word, score int) []Word {
	out := make([]Word, 0, len(pool))
	for _, w := range pool {
		s, err := Score(guess, w)
		if err != nil {
			continue
		}
		if s == score {
			out = append(out, w)
		}
	}
	return out
}
