package discussion

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrustAddIsUnique(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()
	ctx := context.Background()

	ok, err := g.Add(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.Add(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := g.List(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, list)
}

func TestTrustRejectsSelfAndBlank(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()
	ctx := context.Background()

	for _, pair := range [][2]string{{"a", "a"}, {"", "b"}, {"a", ""}, {"  ", "b"}} {
		ok, err := g.Add(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, ok, "add %q -> %q", pair[0], pair[1])
	}

	list, err := g.List(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, list)

	ok, err := g.IsTrusted(ctx, "", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTrustRemove(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()
	ctx := context.Background()

	ok, err := g.Remove(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = g.Add(ctx, "a", "b")
	require.NoError(t, err)

	ok, err = g.Remove(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.IsTrusted(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.Remove(ctx, "", "b")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTrustIsDirectedAndNotTransitive(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()
	ctx := context.Background()

	_, err := g.Add(ctx, "a", "b")
	require.NoError(t, err)
	_, err = g.Add(ctx, "b", "c")
	require.NoError(t, err)

	ok, err := g.IsTrusted(ctx, "a", "c")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.IsTrusted(ctx, "b", "a")
	require.NoError(t, err)
	assert.False(t, ok)

	trusters, err := g.Trusters(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, trusters)
}

func TestTrustListUnknownIsEmptyNotNil(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()

	for _, student := range []string{"nobody", ""} {
		list, err := g.List(context.Background(), student)
		require.NoError(t, err)
		assert.NotNil(t, list)
		assert.Empty(t, list)
	}
}

func TestTrustClearIsIdempotent(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()
	ctx := context.Background()

	for _, r := range []string{"x", "y", "z"} {
		_, err := g.Add(ctx, "a", r)
		require.NoError(t, err)
	}
	_, err := g.Add(ctx, "other", "x")
	require.NoError(t, err)

	n, err := g.Clear(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	n, err = g.Clear(ctx, "a")
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := g.List(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, list)
}

func TestConcurrentTrustAddsLeaveOneEdge(t *testing.T) {
	b, _ := newTestBoard(t)
	g := b.Trust()
	ctx := context.Background()

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := g.Add(ctx, "a", "b")
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	list, err := g.List(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, list)
}
