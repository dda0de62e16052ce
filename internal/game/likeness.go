package game

// Score returns the likeness of guess against secret: the number of
// positions holding the same letter, ignoring case. Only the count is
// revealed, never which positions matched. The metric is symmetric.
//
// Words of different length are a contract violation.
func Score(guess, secret Word) (int, error) {
	g, s := []rune(guess.Key()), []rune(secret.Key())
	if len(g) != len(s) {
		return 0, &ContractError{
			Op:  "score",
			Err: &LengthMismatchError{Expected: len(s), Actual: len(g)},
		}
	}
	n := 0
	for i := range g {
		if g[i] == s[i] {
			n++
		}
	}
	return n, nil
}
