// Package persistence mirrors the entity store into a durable key-value
// backend, one slot per collection, and rehydrates it at startup.
package persistence

import (
	"context"
	"errors"

	"mhimmo/internal/domain"
)

// ErrNotFound is returned by KV.Get for an empty slot.
var ErrNotFound = errors.New("slot not found")

// KV is a durable key-value backend. Writes overwrite; the last writer wins.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
	Delete(ctx context.Context, key string) error
}

// Lister is implemented by backends that can enumerate their slots.
type Lister interface {
	Keys(ctx context.Context) ([]string, error)
}

const (
	KeyCurrentUser = "mhimmo-current-user"
	KeyDarkMode    = "mhimmo-dark-mode"
	KeyCredentials = "mhimmo-credentials"
)

// Keys namespaces slot names; a non-empty Prefix lets several deployments
// share one backend.
type Keys struct {
	Prefix string
}

func (k Keys) Collection(c domain.Collection) string { return k.Prefix + "mhimmo-" + string(c) }
func (k Keys) CurrentUser() string                   { return k.Prefix + KeyCurrentUser }
func (k Keys) DarkMode() string                      { return k.Prefix + KeyDarkMode }
func (k Keys) Credentials() string                   { return k.Prefix + KeyCredentials }

// All lists every slot the application writes.
func (k Keys) All() []string {
	out := make([]string, 0, len(domain.Collections)+3)
	for _, c := range domain.Collections {
		out = append(out, k.Collection(c))
	}
	return append(out, k.CurrentUser(), k.DarkMode(), k.Credentials())
}
