package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mhimmo/internal/persistence"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) *SlotRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	r := NewSlotRepo(db)
	require.NoError(t, r.Migrate())
	return r
}

func TestSlotRepo_GetMissing(t *testing.T) {
	r := newTestRepo(t)
	_, err := r.Get(context.Background(), "mhimmo-users")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestSlotRepo_SetOverwrites(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "mhimmo-dark-mode", []byte("false")))
	require.NoError(t, r.Set(ctx, "mhimmo-dark-mode", []byte("true")))

	got, err := r.Get(ctx, "mhimmo-dark-mode")
	require.NoError(t, err)
	assert.Equal(t, "true", string(got))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"mhimmo-dark-mode"}, keys)
}

func TestSlotRepo_Delete(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "missing"))

	keys, err := r.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestSlotRepo_RoundTripsCollections(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	a := persistence.NewAdapter(r, persistence.Keys{}, nil)

	seed := persistence.Bootstrap(fixedNow)
	ds, seeded, err := a.Load(ctx, seed)
	require.NoError(t, err)
	require.NoError(t, a.Save(ctx, ds, seeded...))

	loaded, seeded, err := a.Load(ctx, seed)
	require.NoError(t, err)
	assert.Empty(t, seeded)
	assert.Equal(t, seed.Properties, loaded.Properties)
	assert.Equal(t, seed.Contracts, loaded.Contracts)
}
