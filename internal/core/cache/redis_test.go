package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mhimmo/internal/core/config"
	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := New(config.Redis{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "mhimmo-users")
	assert.ErrorIs(t, err, persistence.ErrNotFound)

	require.NoError(t, c.Set(ctx, "mhimmo-users", []byte(`[]`)))
	got, err := c.Get(ctx, "mhimmo-users")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
	assert.Zero(t, mr.TTL("mhimmo-users"))

	require.NoError(t, c.Delete(ctx, "mhimmo-users"))
	assert.False(t, mr.Exists("mhimmo-users"))
}

func TestCache_BacksAdapter(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	a := persistence.NewAdapter(c, persistence.Keys{Prefix: "t:"}, nil)

	ds, seeded, err := a.Load(ctx, persistence.Bootstrap(fixedNow))
	require.NoError(t, err)
	require.Len(t, seeded, 5)
	require.NoError(t, a.Save(ctx, ds, seeded...))

	again, seeded, err := a.Load(ctx, persistence.Bootstrap(fixedNow))
	require.NoError(t, err)
	assert.Empty(t, seeded)
	assert.Len(t, again.Users, len(ds.Users))
}

func TestCache_PingFailsWhenDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

// holdHook parks the first GET until release is closed and records whether
// the context it ran under had been cancelled by then.
type holdHook struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	mu      sync.Mutex
	seen    error
}

func (h *holdHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (h *holdHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (h *holdHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "get" {
			h.once.Do(func() {
				close(h.entered)
				<-h.release
				h.mu.Lock()
				h.seen = ctx.Err()
				h.mu.Unlock()
			})
		}
		return next(ctx, cmd)
	}
}

func TestCache_CancelledCallerLeavesSharedReadRunning(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "mhimmo-users", []byte(`[1]`)))

	h := &holdHook{entered: make(chan struct{}), release: make(chan struct{})}
	c.RDB.AddHook(h)

	cctx, cancel := context.WithCancel(ctx)
	errc := make(chan error, 1)
	go func() {
		_, err := c.Get(cctx, "mhimmo-users")
		errc <- err
	}()
	<-h.entered
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)

	close(h.release)
	got, err := c.Get(ctx, "mhimmo-users")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))

	h.mu.Lock()
	defer h.mu.Unlock()
	assert.NoError(t, h.seen)
}

func TestCache_GetWithEndedContext(t *testing.T) {
	c, _ := newTestCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "mhimmo-users")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCache_KeysListOnlyApplicationSlots(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	a := persistence.NewAdapter(c, persistence.Keys{Prefix: "t:"}, nil)
	require.NoError(t, a.Save(ctx, persistence.Bootstrap(fixedNow), domain.CollectionUsers, domain.CollectionProperties))
	require.NoError(t, mr.Set("unrelated", "x"))
	require.NoError(t, mr.Set("mhimmo-users", "[]"))

	keys, err := c.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mhimmo-users", "t:mhimmo-properties", "t:mhimmo-users"}, keys)

	stored, err := a.Stored(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"t:mhimmo-properties", "t:mhimmo-users"}, stored)
}
