package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"mhimmo/internal/core/config"
	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		JWT:      config.JWT{Secret: "test", Issuer: "mhimmo", AccessTokenTTLMin: 60},
		Store:    config.Store{Backend: "memory", StrictContracts: true},
		Security: config.Security{BcryptCost: bcrypt.MinCost},
	}
}

func assemble(t *testing.T, kv persistence.KV) *App {
	t.Helper()
	a, err := Assemble(context.Background(), testConfig(), zap.NewNop(), kv, Options{Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)
	return a
}

func TestAssemble_SeedsThenReloads(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemory()

	first := assemble(t, kv)
	_, err := first.Store.CreateProperty(ctx, domain.NewProperty{Address: "1 Quai", City: "Nantes", Type: domain.PropertyLoft})
	require.NoError(t, err)

	second := assemble(t, kv)
	assert.Len(t, second.Store.Properties(), 4)
	assert.Len(t, second.Store.Users(), 4)
	assert.True(t, second.Creds.Verify(persistence.AdminEmail, "admin123"))

	ok, err := second.Gate.Login(ctx, persistence.AdminEmail, "admin123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAssemble_KeyPrefixIsolates(t *testing.T) {
	kv := persistence.NewMemory()
	cfg := testConfig()
	cfg.Store.KeyPrefix = "a:"
	_, err := Assemble(context.Background(), cfg, zap.NewNop(), kv, Options{})
	require.NoError(t, err)

	_, err = kv.Get(context.Background(), "a:mhimmo-users")
	assert.NoError(t, err)
	_, err = kv.Get(context.Background(), "mhimmo-users")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestCheck_ReportsDrift(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemory()
	a := assemble(t, kv)

	drift, err := a.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, drift)

	props := a.Store.Properties()
	props[2].Status = domain.StatusOccupied
	props[2].TenantID = "tenant-1"
	require.NoError(t, persistence.SetJSON(ctx, kv, "mhimmo-properties", props))

	drift, err = a.Check(ctx)
	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.Contains(t, drift[0], "prop-3")
}

func TestOpenKV_UnknownBackend(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "etcd"
	_, _, err := OpenKV(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestOpen_GormSQLite(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Backend = "gorm"
	cfg.DB = config.DB{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1, AutoMigrate: true, LogLevel: "silent"}

	a, err := Open(context.Background(), cfg, zap.NewNop(), Options{})
	require.NoError(t, err)
	defer a.Close()
	assert.Len(t, a.Store.Contracts(), 2)
}

func TestReload_PicksUpOtherWriters(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemory()
	reader := assemble(t, kv)
	writer := assemble(t, kv)

	_, err := writer.Store.CreateProperty(ctx, domain.NewProperty{Address: "2 Quai", City: "Brest", Type: domain.PropertyHouse})
	require.NoError(t, err)
	assert.Len(t, reader.Store.Properties(), 3)

	require.NoError(t, reader.Reload(ctx))
	assert.Len(t, reader.Store.Properties(), 4)
	assert.Equal(t, 4, reader.Store.Stats("").TotalProperties)
}

func TestOpenKV_GormMigrateFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.db")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	cfg := testConfig()
	cfg.Store.Backend = "gorm"
	cfg.DB = config.DB{Driver: "sqlite", DSN: "file:" + path + "?mode=ro", MaxOpenConns: 1, AutoMigrate: true, LogLevel: "silent"}

	kv, closers, err := OpenKV(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "automigrate")
	assert.Nil(t, kv)
	assert.Empty(t, closers)
}
