package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/termhack/internal/db"
)

var dict = []string{"amber", "blast", "cable", "crane", "debug", "drone", "ember", "fence", "ghost", "guard"}

func TestPool_Deterministic(t *testing.T) {
	day := time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)
	later := day.Add(10 * time.Hour)

	a := Pool(day, "salt", dict, 6)
	b := Pool(later, "salt", dict, 6)
	assert.Equal(t, a, b, "same UTC date, same pool")
	assert.Len(t, a, 6)

	seen := map[string]bool{}
	for _, w := range a {
		assert.Contains(t, dict, w)
		assert.False(t, seen[w])
		seen[w] = true
	}

	assert.Equal(t, SecretIndex(day, "salt", 6), SecretIndex(later, "salt", 6))
	assert.Equal(t, []string{"amber", "blast", "cable", "crane", "debug", "drone", "ember", "fence", "ghost", "guard"}, dict, "input untouched")
}

func TestPool_ClampsSize(t *testing.T) {
	got := Pool(time.Now(), "x", dict[:3], 10)
	assert.Len(t, got, 3)
	assert.ElementsMatch(t, dict[:3], got)
}

func TestSecretIndexAndLength_InRange(t *testing.T) {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		d := day.AddDate(0, 0, i)
		idx := SecretIndex(d, "salt", 7)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 7)
		assert.Contains(t, []int{5, 6, 7}, Length(d, "salt", []int{5, 6, 7}))
	}
	assert.Equal(t, 0, SecretIndex(day, "salt", 0))
	assert.Equal(t, 0, Length(day, "salt", nil))
}

func TestStore_ResultsAndLeaderboard(t *testing.T) {
	sqlDB, err := db.OpenMigrated(db.MemoryDSN)
	require.NoError(t, err)
	defer sqlDB.Close()
	st := NewStore(sqlDB)
	ctx := context.Background()

	played, err := st.AlreadyPlayed(ctx, "u1", "2026-10-16")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-16", Guesses: 3, Won: true, ElapsedMs: 9000}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u2", Date: "2026-10-16", Guesses: 2, Won: true, ElapsedMs: 20000}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u3", Date: "2026-10-16", Guesses: 4, Won: false, ElapsedMs: 1000}))
	// duplicate is ignored
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "u1", Date: "2026-10-16", Guesses: 1, Won: true, ElapsedMs: 1}))

	played, err = st.AlreadyPlayed(ctx, "u1", "2026-10-16")
	require.NoError(t, err)
	assert.True(t, played)

	lb, err := st.Leaderboard(ctx, "2026-10-16", 0)
	require.NoError(t, err)
	assert.Equal(t, []LBRow{
		{UserID: "u2", Guesses: 2, ElapsedMs: 20000},
		{UserID: "u1", Guesses: 3, ElapsedMs: 9000},
	}, lb)
}
