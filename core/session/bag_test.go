package session_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/core/session"
)

func TestBag(t *testing.T) {
	t.Parallel()

	t.Run("set get delete", func(t *testing.T) {
		t.Parallel()

		b := session.NewBag()
		_, ok := b.Get("user")
		assert.False(t, ok)

		b.Set("user", "alice")
		v, ok := b.Get("user")
		require.True(t, ok)
		assert.Equal(t, "alice", v)
		assert.True(t, b.Has("user"))
		assert.Equal(t, 1, b.Len())

		b.Delete("user")
		assert.False(t, b.Has("user"))
		assert.Equal(t, 0, b.Len())
	})

	t.Run("seeded bag copies input", func(t *testing.T) {
		t.Parallel()

		seed := map[string]any{"theme": "dark"}
		b := session.NewBag(seed)
		seed["theme"] = "light"

		s, ok := b.GetString("theme")
		require.True(t, ok)
		assert.Equal(t, "dark", s)
	})

	t.Run("get string rejects other types", func(t *testing.T) {
		t.Parallel()

		b := session.NewBag()
		b.Set("count", 3)
		_, ok := b.GetString("count")
		assert.False(t, ok)
	})

	t.Run("snapshot is detached", func(t *testing.T) {
		t.Parallel()

		b := session.NewBag()
		b.Set("a", 1)
		snap := b.Snapshot()
		snap["a"] = 2
		v, _ := b.Get("a")
		assert.Equal(t, 1, v)

		b.Clear()
		assert.Equal(t, 0, b.Len())
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		b := session.NewBag()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				b.Set("k", n)
				_, _ = b.Get("k")
				_ = b.Snapshot()
			}(i)
		}
		wg.Wait()
		assert.True(t, b.Has("k"))
	})

	t.Run("version counts writes", func(t *testing.T) {
		t.Parallel()

		b := session.NewBag(map[string]any{"seed": true})
		assert.Equal(t, uint64(0), b.Version())

		_, _ = b.Get("seed")
		_ = b.Snapshot()
		assert.Equal(t, uint64(0), b.Version())

		b.Set("a", 1)
		b.Delete("a")
		b.Clear()
		assert.Equal(t, uint64(3), b.Version())
	})
}
