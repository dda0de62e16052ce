package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/termhack/internal/game"
)

func newSession(t *testing.T, id string, attempts int) *game.Session {
	t.Helper()
	pool := []game.Word{"VAULT", "TOWER", "CRANE", "GHOST"}
	s, err := game.NewSession(pool, "GHOST", attempts, game.WithID(id))
	require.NoError(t, err)
	return s
}

func TestMemory_SaveAndWith(t *testing.T) {
	st, err := NewMemoryStore(0)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, newSession(t, "a", 4)))
	err = st.With(ctx, "a", func(s *game.Session) error {
		_, err := s.Guess("VAULT")
		return err
	})
	require.NoError(t, err)

	require.NoError(t, st.With(ctx, "a", func(s *game.Session) error {
		assert.Equal(t, 3, s.AttemptsRemaining())
		return nil
	}))

	assert.ErrorIs(t, st.With(ctx, "missing", func(*game.Session) error { return nil }), ErrNotFound)
}

func TestMemory_EvictsLeastRecentlyUsed(t *testing.T) {
	st, err := NewMemoryStore(2)
	require.NoError(t, err)
	ctx := context.Background()
	noop := func(*game.Session) error { return nil }

	require.NoError(t, st.Save(ctx, newSession(t, "a", 4)))
	require.NoError(t, st.Save(ctx, newSession(t, "b", 4)))
	require.NoError(t, st.With(ctx, "a", noop)) // a becomes most recent
	require.NoError(t, st.Save(ctx, newSession(t, "c", 4)))

	assert.NoError(t, st.With(ctx, "a", noop))
	assert.ErrorIs(t, st.With(ctx, "b", noop), ErrNotFound)
	assert.NoError(t, st.With(ctx, "c", noop))
}

func TestMemory_SerializesGuesses(t *testing.T) {
	st, err := NewMemoryStore(8)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, st.Save(ctx, newSession(t, "race", 50)))

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(ctx, "race", func(s *game.Session) error {
				_, err := s.Guess("VAULT")
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, st.With(ctx, "race", func(s *game.Session) error {
		assert.Equal(t, 10, s.AttemptsRemaining())
		assert.Len(t, s.History(), 40)
		return nil
	}))
}

func TestMemory_CanceledContext(t *testing.T) {
	st, err := NewMemoryStore(1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, st.Save(ctx, newSession(t, "x", 1)), context.Canceled)
}
