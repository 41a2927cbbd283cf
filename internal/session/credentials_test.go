package session_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
	"mhimmo/internal/session"
)

func TestCredentials_SeededOnceAndHashed(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemory()
	seed := map[string]string{"a@x.io": "pw-a"}

	c, err := session.LoadCredentials(ctx, kv, persistence.Keys{}, bcrypt.MinCost, seed)
	require.NoError(t, err)
	assert.True(t, c.Verify("a@x.io", "pw-a"))

	raw, err := kv.Get(ctx, persistence.KeyCredentials)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "pw-a"))

	require.NoError(t, c.Register(ctx, "b@x.io", "pw-b"))

	// reload ignores the seed once the slot exists
	again, err := session.LoadCredentials(ctx, kv, persistence.Keys{}, bcrypt.MinCost, map[string]string{"a@x.io": "other"})
	require.NoError(t, err)
	assert.True(t, again.Verify("a@x.io", "pw-a"))
	assert.False(t, again.Verify("a@x.io", "other"))
	assert.True(t, again.Verify("b@x.io", "pw-b"))
}

func TestCredentials_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	c, err := session.LoadCredentials(ctx, persistence.NewMemory(), persistence.Keys{}, bcrypt.MinCost, nil)
	require.NoError(t, err)
	require.NoError(t, c.Register(ctx, "a@x.io", "1"))
	assert.ErrorIs(t, c.Register(ctx, "a@x.io", "2"), domain.ErrEmailTaken)
	assert.True(t, c.Verify("a@x.io", "1"))
	assert.True(t, c.Has("a@x.io"))
	assert.False(t, c.Has("b@x.io"))
}

func TestCredentials_RegisterRejectsOverlongPassword(t *testing.T) {
	ctx := context.Background()
	c, err := session.LoadCredentials(ctx, persistence.NewMemory(), persistence.Keys{}, bcrypt.MinCost, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Register(ctx, "a@x.io", strings.Repeat("é", 40)), domain.ErrPasswordTooLong)
	assert.False(t, c.Has("a@x.io"))
	require.NoError(t, c.Register(ctx, "a@x.io", strings.Repeat("p", 72)))
}

func TestPreferences(t *testing.T) {
	ctx := context.Background()
	p := session.NewPreferences(persistence.NewMemory(), persistence.Keys{})
	on, err := p.DarkMode(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, p.SetDarkMode(ctx, true))
	on, err = p.DarkMode(ctx)
	require.NoError(t, err)
	assert.True(t, on)
}
