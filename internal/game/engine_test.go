package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(ss ...string) []Word {
	out := make([]Word, len(ss))
	for i, s := range ss {
		out[i] = Word(s)
	}
	return out
}

func TestScore_PositionMatches(t *testing.T) {
	s, err := Score("APPLE", "AMPLY")
	require.NoError(t, err)
	assert.Equal(t, 3, s) // A, P(3rd), L

	s, err = Score("amply", "AMPLY")
	require.NoError(t, err)
	assert.Equal(t, 5, s)

	s, err = Score("abcde", "fghij")
	require.NoError(t, err)
	assert.Equal(t, 0, s)
}

func TestScore_LengthMismatchIsContractViolation(t *testing.T) {
	_, err := Score("pear", "apple")
	require.Error(t, err)
	assert.True(t, IsContractViolation(err))
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func randomWord(rng *rand.Rand, n int) Word {
	const alpha = "abcdeABCDE"
	b := make([]byte, n)
	for i := range b {
		b[i] = alpha[rng.Intn(len(alpha))]
	}
	return Word(b)
}

func TestScore_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		n := 1 + rng.Intn(8)
		a, b := randomWord(rng, n), randomWord(rng, n)
		ab, err := Score(a, b)
		require.NoError(t, err)
		ba, err := Score(b, a)
		require.NoError(t, err)

		require.Equal(t, ab, ba, "symmetry %q %q", a, b)
		require.GreaterOrEqual(t, ab, 0)
		require.LessOrEqual(t, ab, n)
		require.Equal(t, a.Equal(b), ab == n, "full score iff equal: %q %q", a, b)
	}
}

func TestWord_FoldsWholeCaseOrbit(t *testing.T) {
	assert.True(t, Word("straw").Equal("ſtraw"))
	assert.True(t, Word("λογος").Equal("ΛΟΓΟΣ"))
	assert.Equal(t, "kelvin", Word("\u212Aelvin").Key())

	s, err := Score("ſtraw", "STRAW")
	require.NoError(t, err)
	assert.Equal(t, 5, s)
	s, err = Score("λογος", "ΛΟΓΟΣ")
	require.NoError(t, err)
	assert.Equal(t, 5, s)
}

func TestNarrow_KeepsConsistentWordsInOrder(t *testing.T) {
	pool := words("APPLE", "AMBLE", "AMPLY")
	got := Narrow(pool, "APPLE", 3)
	assert.Equal(t, words("AMBLE", "AMPLY"), got)

	// the guess survives when its own score matches
	assert.Equal(t, words("APPLE"), Narrow(pool, "APPLE", 5))
}

func TestNarrow_SoundAndSubsequence(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 500; i++ {
		n := 2 + rng.Intn(5)
		pool := make([]Word, 1+rng.Intn(12))
		for j := range pool {
			pool[j] = randomWord(rng, n)
		}
		secret := pool[rng.Intn(len(pool))]
		guess := randomWord(rng, n)
		score, err := Score(guess, secret)
		require.NoError(t, err)

		got := Narrow(pool, guess, score)
		assert.Contains(t, got, secret)

		// subsequence of the input
		j := 0
		for _, w := range got {
			for j < len(pool) && pool[j] != w {
				j++
			}
			require.Less(t, j, len(pool), "%q not found in order", w)
			j++
		}
	}
}

func TestSession_Scenario_WrongGuessNarrows(t *testing.T) {
	s, err := NewSession(words("APPLE", "AMBLE", "AMPLY"), "AMPLY", 4)
	require.NoError(t, err)

	out, err := s.Guess("APPLE")
	require.NoError(t, err)
	assert.Equal(t, ResultIncorrect, out.Result)
	assert.Equal(t, 3, out.Score)
	assert.Equal(t, 2, out.Remaining)
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Equal(t, 3, s.AttemptsRemaining())
	assert.Equal(t, words("AMBLE", "AMPLY"), s.Remaining())
	assert.Equal(t, []Attempt{{Word: "APPLE", Score: 3}}, s.History())
}

func TestSession_Scenario_DirectHit(t *testing.T) {
	s, err := NewSession(words("APPLE", "AMBLE", "AMPLY"), "AMPLY", 4)
	require.NoError(t, err)

	out, err := s.Guess("amply")
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
	assert.Equal(t, 5, out.Score)
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, 3, s.AttemptsRemaining())
}

func TestSession_Scenario_SingleWordSingleAttempt(t *testing.T) {
	s, err := NewSession(words("VAULT"), "vault", 1)
	require.NoError(t, err)
	out, err := s.Guess("VAULT")
	require.NoError(t, err)
	assert.Equal(t, ResultCorrect, out.Result)
	assert.Equal(t, StatusWon, s.Status())
	assert.Equal(t, 0, s.AttemptsRemaining())
}

func TestSession_Scenario_OutOfAttempts(t *testing.T) {
	s, err := NewSession(words("VAULT", "TOWER"), "VAULT", 1)
	require.NoError(t, err)
	out, err := s.Guess("TOWER")
	require.NoError(t, err)
	assert.Equal(t, ResultOutOfAttempts, out.Result)
	assert.Equal(t, StatusLost, s.Status())
	assert.Equal(t, 0, s.AttemptsRemaining())
}

func TestSession_ClosedRejectsWithoutMutation(t *testing.T) {
	s, err := NewSession(words("VAULT", "TOWER"), "VAULT", 1)
	require.NoError(t, err)
	_, err = s.Guess("TOWER")
	require.NoError(t, err)

	hist, rem, att := s.History(), s.Remaining(), s.AttemptsRemaining()
	_, err = s.Guess("VAULT")
	require.ErrorIs(t, err, ErrSessionClosed)
	assert.True(t, IsContractViolation(err))
	assert.Equal(t, hist, s.History())
	assert.Equal(t, rem, s.Remaining())
	assert.Equal(t, att, s.AttemptsRemaining())
	assert.Equal(t, StatusLost, s.Status())
}

func TestSession_WonRejectsWithoutMutation(t *testing.T) {
	s, err := NewSession(words("APPLE", "AMBLE", "AMPLY"), "AMPLY", 4)
	require.NoError(t, err)
	_, err = s.Guess("APPLE")
	require.NoError(t, err)
	_, err = s.Guess("amply")
	require.NoError(t, err)
	require.Equal(t, StatusWon, s.Status())

	hist, rem, att := s.History(), s.Remaining(), s.AttemptsRemaining()
	for _, g := range []Word{"AMBLE", "AMPLY", "TOOLONG"} {
		_, err = s.Guess(g)
		require.ErrorIs(t, err, ErrSessionClosed, g)
		assert.Equal(t, hist, s.History())
		assert.Equal(t, rem, s.Remaining())
		assert.Equal(t, att, s.AttemptsRemaining())
		assert.Equal(t, StatusWon, s.Status())
	}
}

func TestSession_LengthMismatchRejectsWithoutMutation(t *testing.T) {
	s, err := NewSession(words("VAULT", "TOWER"), "VAULT", 3)
	require.NoError(t, err)
	_, err = s.Guess("VAULTS")
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.True(t, IsContractViolation(err))
	assert.Equal(t, 3, s.AttemptsRemaining())
	assert.Empty(t, s.History())
}

func TestNewSession_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		pool     []Word
		secret   Word
		attempts int
	}{
		{"zero attempts", words("VAULT"), "VAULT", 0},
		{"negative attempts", words("VAULT"), "VAULT", -2},
		{"empty pool", nil, "VAULT", 3},
		{"secret missing", words("VAULT", "TOWER"), "CRANE", 3},
		{"mixed lengths", words("VAULT", "TOWERS"), "VAULT", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSession(tc.pool, tc.secret, tc.attempts)
			require.ErrorIs(t, err, ErrInvalidSession)
			assert.True(t, IsContractViolation(err))
		})
	}
}

func TestNewSession_DoesNotShareCallerSlice(t *testing.T) {
	pool := words("VAULT", "TOWER", "CRANE")
	s, err := NewSession(pool, "VAULT", 3)
	require.NoError(t, err)
	_, err = s.Guess("TOWER")
	require.NoError(t, err)
	assert.Equal(t, words("VAULT", "TOWER", "CRANE"), pool)
}

// Random play must keep the secret among the candidates and never raise attempts.
func TestSession_RandomPlayInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	for run := 0; run < 300; run++ {
		n := 3 + rng.Intn(4)
		p := NewPool()
		for p.Len() < 2+rng.Intn(10) {
			_ = p.Add(string(randomWord(rng, n)))
		}
		pool := p.Snapshot()
		secret := pool[rng.Intn(len(pool))]
		s, err := NewSession(pool, secret, 1+rng.Intn(5))
		require.NoError(t, err)

		prev := s.AttemptsRemaining()
		for !s.Status().Terminal() {
			g := pool[rng.Intn(len(pool))]
			_, err := s.Guess(g)
			require.NoError(t, err)
			require.Less(t, s.AttemptsRemaining(), prev)
			prev = s.AttemptsRemaining()
			if s.Status() != StatusWon {
				require.Contains(t, s.Remaining(), secret)
			}
		}
		final := s.Status()
		hist, rem, att := s.History(), s.Remaining(), s.AttemptsRemaining()
		_, err = s.Guess(secret)
		require.ErrorIs(t, err, ErrSessionClosed)
		require.Equal(t, final, s.Status())
		require.Equal(t, hist, s.History())
		require.Equal(t, rem, s.Remaining())
		require.Equal(t, att, s.AttemptsRemaining())
	}
}

func TestSession_RemoveDud(t *testing.T) {
	s, err := NewSession(words("VAULT", "TOWER", "CRANE"), "CRANE", 4, WithDuds(1))
	require.NoError(t, err)

	dud, err := s.RemoveDud(func(n int) int { return n - 1 })
	require.NoError(t, err)
	assert.Equal(t, Word("TOWER"), dud)
	assert.Equal(t, words("VAULT", "CRANE"), s.Remaining())
	assert.Equal(t, 4, s.AttemptsRemaining(), "duds are free")

	_, err = s.RemoveDud(nil)
	assert.ErrorIs(t, err, ErrNoDuds)
}

func TestSession_RemoveDudNeverRemovesSecret(t *testing.T) {
	s, err := NewSession(words("VAULT", "TOWER"), "VAULT", 4, WithDuds(5))
	require.NoError(t, err)
	_, err = s.RemoveDud(func(int) int { return 99 })
	require.NoError(t, err)
	assert.Equal(t, words("VAULT"), s.Remaining())

	_, err = s.RemoveDud(nil)
	assert.ErrorIs(t, err, ErrNoDuds)
	assert.Equal(t, 4, s.DudsRemaining())
}
