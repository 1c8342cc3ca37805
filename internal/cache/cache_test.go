package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrLoad_LoadsOnce(t *testing.T) {
	c, err := New[int](Options{Size: 8})
	require.NoError(t, err)

	var calls atomic.Int32

	var wg sync.WaitGroup

	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			v, err := c.GetOrLoad("k", func() (int, error) {
				calls.Add(1)
				time.Sleep(5 * time.Millisecond)

				return 7, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 7, v)
		}()
	}

	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Stats().Len)
}

func TestGetOrLoad_ErrorNotCached(t *testing.T) {
	c, err := New[string](Options{})
	require.NoError(t, err)

	boom := errors.New("boom")

	_, err = c.GetOrLoad("k", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)

	v, err := c.GetOrLoad("k", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestEviction(t *testing.T) {
	c, err := New[int](Options{Size: 2})
	require.NoError(t, err)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok)

	v, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	s := c.Stats()
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, 2, s.Len)

	c.Purge()
	assert.Equal(t, 0, c.Stats().Len)
}

func TestTTL(t *testing.T) {
	c, err := New[int](Options{Size: 2, TTL: 20 * time.Millisecond})
	require.NoError(t, err)

	c.Add("a", 1)

	_, ok := c.Get("a")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
