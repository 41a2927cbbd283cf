// Package app assembles the durable backend, the entity store and the
// session pieces from configuration. Every binary starts here.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"mhimmo/internal/core/auth"
	"mhimmo/internal/core/cache"
	"mhimmo/internal/core/config"
	"mhimmo/internal/core/database"
	"mhimmo/internal/domain"
	"mhimmo/internal/messaging"
	"mhimmo/internal/persistence"
	"mhimmo/internal/repo"
	"mhimmo/internal/session"
	"mhimmo/internal/store"
	"mhimmo/internal/transport/http/handler"
)

type App struct {
	Cfg         *config.Config
	Log         *zap.Logger
	KV          persistence.KV
	Adapter     *persistence.Adapter
	Store       *store.Store
	Messages    *messaging.Index
	Creds       *session.Credentials
	Gate        *session.Gate
	Preferences *session.Preferences
	JWT         *auth.JWTer

	closers []io.Closer
}

// Options overrides process defaults; tests pin the clock here.
type Options struct {
	Now func() time.Time
}

// OpenKV connects the backend named by store.backend.
func OpenKV(ctx context.Context, cfg *config.Config, l *zap.Logger) (persistence.KV, []io.Closer, error) {
	switch cfg.Store.Backend {
	case "memory":
		return persistence.NewMemory(), nil, nil
	case "redis":
		c := cache.New(cfg.Redis)
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, nil, err
		}
		l.Info("redis backend connected", zap.String("addr", cfg.Redis.Addr))
		return c, []io.Closer{c}, nil
	case "gorm":
		db, err := database.NewGorm(cfg.DB, l)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		r := repo.NewSlotRepo(db)
		var closers []io.Closer
		if sqlDB, err := db.DB(); err == nil {
			closers = append(closers, sqlDB)
		}
		if cfg.DB.AutoMigrate {
			if err := r.Migrate(); err != nil {
				for _, c := range closers {
					_ = c.Close()
				}
				return nil, nil, fmt.Errorf("automigrate: %w", err)
			}
		}
		l.Info("database backend connected", zap.String("driver", cfg.DB.Driver))
		return r, closers, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Open loads every collection (seeding empty slots with the bootstrap
// dataset), restores the store and attaches the mirror.
func Open(ctx context.Context, cfg *config.Config, l *zap.Logger, o Options) (*App, error) {
	kv, closers, err := OpenKV(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	a, err := Assemble(ctx, cfg, l, kv, o)
	if err != nil {
		for _, c := range closers {
			_ = c.Close()
		}
		return nil, err
	}
	a.closers = closers
	return a, nil
}

// Assemble builds the App over an already connected kv.
func Assemble(ctx context.Context, cfg *config.Config, l *zap.Logger, kv persistence.KV, o Options) (*App, error) {
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	keys := persistence.Keys{Prefix: cfg.Store.KeyPrefix}
	adapter := persistence.NewAdapter(kv, keys, l.Named("persistence"))

	ds, seeded, err := adapter.Load(ctx, persistence.Bootstrap(o.Now()))
	if err != nil {
		return nil, err
	}
	st := store.New(store.Options{
		StrictContracts: cfg.Store.StrictContracts,
		Now:             o.Now,
		Logger:          l.Named("store"),
	})
	st.Restore(ds)
	st.SetMirror(adapter)
	if len(seeded) > 0 {
		if err := adapter.Save(ctx, st.Snapshot(), seeded...); err != nil {
			return nil, err
		}
		l.Info("bootstrap data written", zap.Any("collections", seeded))
	}

	creds, err := session.LoadCredentials(ctx, kv, keys, cfg.Security.BcryptCost, persistence.BootstrapCredentials)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:         cfg,
		Log:         l,
		KV:          kv,
		Adapter:     adapter,
		Store:       st,
		Messages:    messaging.NewIndex(st, l.Named("messaging")),
		Creds:       creds,
		Gate:        session.NewGate(st, creds, kv, keys, l.Named("session")),
		Preferences: session.NewPreferences(kv, keys),
		JWT: &auth.JWTer{
			Secret: []byte(cfg.JWT.Secret),
			Issuer: cfg.JWT.Issuer,
			TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
		},
	}, nil
}

func (a *App) Deps() handler.Deps {
	return handler.Deps{
		Store:    a.Store,
		Messages: a.Messages,
		Creds:    a.Creds,
		JWT:      a.JWT,
		Log:      a.Log.Named("http"),
		Reload:   a.Reload,
	}
}

// Reload replaces the store contents with what the backend holds now. Slots
// that have gone empty keep the current records.
func (a *App) Reload(ctx context.Context) error {
	ds, _, err := a.Adapter.Load(ctx, a.Store.Snapshot())
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	a.Store.Restore(ds)
	return nil
}

// Check compares the stored property occupancy with the occupancy derived
// from contracts and lists every property where they differ.
func (a *App) Check(ctx context.Context) ([]string, error) {
	raw, _, err := persistence.GetJSON[[]domain.Property](ctx, a.KV, a.Adapter.Keys().Collection(domain.CollectionProperties))
	if err != nil {
		return nil, err
	}
	derived := map[string]domain.Property{}
	for _, p := range a.Store.Properties() {
		derived[p.ID] = p
	}
	var drift []string
	for _, p := range raw {
		d, ok := derived[p.ID]
		if !ok {
			drift = append(drift, fmt.Sprintf("%s: stored but not loaded", p.ID))
			continue
		}
		if d.Status != p.Status || d.TenantID != p.TenantID {
			drift = append(drift, fmt.Sprintf("%s: stored %s/%q, derived %s/%q", p.ID, p.Status, p.TenantID, d.Status, d.TenantID))
		}
	}
	return drift, nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
