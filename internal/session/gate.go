// Package session binds an authenticated identity to the running process and
// persists it for resumption.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
)

// Directory resolves users; *store.Store satisfies it.
type Directory interface {
	UserByID(id string) (domain.User, bool)
	UserByEmail(email string) (domain.User, bool)
}

// Authenticate returns the user for email when both the user exists and the
// credential matches.
func Authenticate(users Directory, creds *Credentials, email, password string) (domain.User, bool) {
	u, ok := users.UserByEmail(email)
	if !ok {
		return domain.User{}, false
	}
	if !creds.Verify(email, password) {
		return domain.User{}, false
	}
	return u, true
}

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

type Gate struct {
	mu      sync.RWMutex
	current *domain.Identity

	users Directory
	creds *Credentials
	kv    persistence.KV
	key   string
	log   *zap.Logger
}

func NewGate(users Directory, creds *Credentials, kv persistence.KV, keys persistence.Keys, l *zap.Logger) *Gate {
	if l == nil {
		l = zap.NewNop()
	}
	return &Gate{users: users, creds: creds, kv: kv, key: keys.CurrentUser(), log: l}
}

// Login binds the identity of the user with email when the credential pair
// matches. A failed login leaves the gate untouched and reveals nothing
// beyond false.
func (g *Gate) Login(ctx context.Context, email, password string) (bool, error) {
	u, ok := Authenticate(g.users, g.creds, email, password)
	if !ok {
		g.log.Debug("login rejected")
		return false, nil
	}
	id := u.Identity()
	g.mu.Lock()
	g.current = &id
	g.mu.Unlock()
	if err := persistence.SetJSON(ctx, g.kv, g.key, id); err != nil {
		return true, fmt.Errorf("%w: session: %w", domain.ErrPersist, err)
	}
	g.log.Info("login", zap.String("user_id", id.ID), zap.String("role", string(id.Role)))
	return true, nil
}

// Resume reinstates a persisted identity whose user still exists; a stale
// identity is cleared.
func (g *Gate) Resume(ctx context.Context) (bool, error) {
	saved, found, err := persistence.GetJSON[domain.Identity](ctx, g.kv, g.key)
	if err != nil {
		g.log.Warn("unreadable session, clearing", zap.Error(err))
		return false, g.Logout(ctx)
	}
	if !found {
		return false, nil
	}
	u, ok := g.users.UserByID(saved.ID)
	if !ok {
		g.log.Info("session user gone, clearing", zap.String("user_id", saved.ID))
		return false, g.Logout(ctx)
	}
	id := u.Identity()
	g.mu.Lock()
	g.current = &id
	g.mu.Unlock()
	return true, nil
}

// Logout returns to the anonymous state and clears the persisted identity.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	g.current = nil
	g.mu.Unlock()
	if err := g.kv.Delete(ctx, g.key); err != nil {
		return fmt.Errorf("%w: session: %w", domain.ErrPersist, err)
	}
	return nil
}

func (g *Gate) Current() (domain.Identity, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.current == nil {
		return domain.Identity{}, false
	}
	return *g.current, true
}

func (g *Gate) State() State {
	if _, ok := g.Current(); ok {
		return Authenticated
	}
	return Anonymous
}

// Require checks the bound identity holds one of roles (any role when none given).
func (g *Gate) Require(roles ...domain.Role) (domain.Identity, error) {
	id, ok := g.Current()
	if !ok {
		return domain.Identity{}, domain.ErrNotAuthenticated
	}
	if len(roles) == 0 {
		return id, nil
	}
	for _, r := range roles {
		if id.Role == r {
			return id, nil
		}
	}
	return id, domain.ErrForbidden
}
