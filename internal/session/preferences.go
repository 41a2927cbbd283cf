package session

import (
	"context"

	"mhimmo/internal/persistence"
)

// Preferences holds display settings that outlive a session.
type Preferences struct {
	kv  persistence.KV
	key string
}

func NewPreferences(kv persistence.KV, keys persistence.Keys) *Preferences {
	return &Preferences{kv: kv, key: keys.DarkMode()}
}

// DarkMode defaults to false when never set.
func (p *Preferences) DarkMode(ctx context.Context) (bool, error) {
	v, _, err := persistence.GetJSON[bool](ctx, p.kv, p.key)
	return v, err
}

func (p *Preferences) SetDarkMode(ctx context.Context, on bool) error {
	return persistence.SetJSON(ctx, p.kv, p.key, on)
}
