package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Rules(t *testing.T) {
	cases := []struct {
		token  string
		reason Reason
	}{
		{"", ReasonEmpty},
		{"   ", ReasonWhitespace},
		{"\t\n", ReasonWhitespace},
		{"12345", ReasonNonLetters},
		{"ab-cd", ReasonNonLetters},
		{" apple", ReasonNonLetters},
		{"apple ", ReasonNonLetters},
	}
	for _, tc := range cases {
		_, err := Validate(tc.token)
		var iw *InvalidWordError
		require.ErrorAs(t, err, &iw, "token %q", tc.token)
		assert.Equal(t, tc.reason, iw.Reason, "token %q", tc.token)
		assert.ErrorIs(t, err, ErrInvalidWord)
	}

	w, err := Validate("Terminal")
	require.NoError(t, err)
	assert.Equal(t, Word("Terminal"), w, "case is preserved")

	_, err = Validate("café")
	assert.NoError(t, err, "non-ASCII letters are letters")
}

func TestValidateRef_Null(t *testing.T) {
	_, err := ValidateRef(nil)
	var iw *InvalidWordError
	require.ErrorAs(t, err, &iw)
	assert.Equal(t, ReasonNull, iw.Reason)

	s := "vault"
	w, err := ValidateRef(&s)
	require.NoError(t, err)
	assert.Equal(t, Word("vault"), w)
}

func TestPool_AddRejectsNonLetters(t *testing.T) {
	p := NewPool()
	err := p.Add("12345")

	var ae *AddError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AddInvalid, ae.Kind)
	assert.ErrorIs(t, err, ErrInvalidWord)
	assert.Equal(t, 0, p.Len())
	_, ok := p.WordLength()
	assert.False(t, ok)
}

func TestPool_AddDuplicateIgnoresCase(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("apple"))
	err := p.Add("APPLE")

	var ae *AddError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AddDuplicate, ae.Kind)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, []Word{"apple"}, p.Snapshot())
}

func TestPool_AddDuplicateAcrossFoldOrbit(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("straw"))
	assert.ErrorIs(t, p.Add("ſtraw"), ErrDuplicate)
	require.NoError(t, p.Add("vault"))
	assert.Equal(t, 2, p.Len())

	g := NewPool()
	require.NoError(t, g.Add("ΛΟΓΟΣ"))
	assert.ErrorIs(t, g.Add("λογος"), ErrDuplicate)
	assert.True(t, g.Contains("λογοσ"))
}

func TestPool_AddLengthMismatch(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("apple"))
	err := p.Add("pear")

	var ae *AddError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AddLengthMismatch, ae.Kind)
	var lm *LengthMismatchError
	require.ErrorAs(t, err, &lm)
	assert.Equal(t, 5, lm.Expected)
	assert.Equal(t, 4, lm.Actual)
	assert.False(t, IsContractViolation(err), "pool mismatches are user errors")
	assert.Equal(t, 1, p.Len())
}

func TestPool_RemoveNotFound(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("apple"))
	require.NoError(t, p.Add("amble"))

	for _, tok := range []string{"zzzzz", "", "   "} {
		err := p.Remove(tok)
		var re *RemoveError
		require.ErrorAs(t, err, &re, "token %q", tok)
		assert.Equal(t, RemoveNotFound, re.Kind)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, []Word{"apple", "amble"}, p.Snapshot())
}

func TestPool_RemoveClearsLengthWhenEmpty(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("apple"))
	require.NoError(t, p.Add("amble"))

	require.NoError(t, p.Remove("APPLE"))
	n, ok := p.WordLength()
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	require.NoError(t, p.Remove("amble"))
	_, ok = p.WordLength()
	assert.False(t, ok)

	require.NoError(t, p.Add("pear"), "a new length is accepted once empty")
	n, _ = p.WordLength()
	assert.Equal(t, 4, n)
}

func TestPool_SnapshotIsCopy(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("apple"))
	snap := p.Snapshot()
	snap[0] = "mango"
	assert.Equal(t, []Word{"apple"}, p.Snapshot())
}

// Random add/remove sequences must keep the length and uniqueness invariants.
func TestPool_InvariantsUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tokens := []string{"apple", "APPLE", "amble", "amply", "pear", "PEAR", "plum", "", " ", "x1y2z", "kiwis"}

	for run := 0; run < 200; run++ {
		p := NewPool()
		for step := 0; step < 30; step++ {
			tok := tokens[rng.Intn(len(tokens))]
			before := p.Snapshot()
			var err error
			if rng.Intn(3) == 0 {
				err = p.Remove(tok)
			} else {
				err = p.Add(tok)
			}
			if err != nil {
				require.Equal(t, before, p.Snapshot(), "failed op mutated pool")
			}

			n, ok := p.WordLength()
			words := p.Snapshot()
			if len(words) == 0 {
				require.False(t, ok)
				continue
			}
			require.True(t, ok)
			seen := map[string]bool{}
			for _, w := range words {
				require.Equal(t, n, w.Len())
				require.False(t, seen[w.Key()], "duplicate %q", w)
				seen[w.Key()] = true
			}
		}
	}
}

func TestAddError_Messages(t *testing.T) {
	p := NewPool()
	require.NoError(t, p.Add("apple"))
	err := p.Add("apple")
	assert.Contains(t, err.Error(), "already in pool")
	assert.False(t, errors.Is(err, ErrNotFound))
}
