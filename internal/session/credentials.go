package session

import (
	"context"
	"fmt"
	"sync"

	"mhimmo/internal/domain"
	"mhimmo/internal/persistence"
	"mhimmo/pkg/utils"
)

// Credentials maps an email to a bcrypt hash. It is kept apart from the user
// records: a login needs both a user with the email and a matching credential.
type Credentials struct {
	mu     sync.RWMutex
	hashes map[string]string
	kv     persistence.KV
	key    string
	cost   int
}

// LoadCredentials reads the credential slot. An empty slot is filled by
// hashing seed (email -> plain password) and writing it back.
func LoadCredentials(ctx context.Context, kv persistence.KV, keys persistence.Keys, cost int, seed map[string]string) (*Credentials, error) {
	c := &Credentials{hashes: map[string]string{}, kv: kv, key: keys.Credentials(), cost: cost}
	stored, found, err := persistence.GetJSON[map[string]string](ctx, kv, c.key)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if found {
		for k, v := range stored {
			c.hashes[k] = v
		}
		return c, nil
	}
	for email, pw := range seed {
		h, err := utils.HashPassword(pw, cost)
		if err != nil {
			return nil, fmt.Errorf("hash seed credential: %w", err)
		}
		c.hashes[email] = h
	}
	if err := c.flush(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Credentials) Verify(email, password string) bool {
	c.mu.RLock()
	h, ok := c.hashes[email]
	c.mu.RUnlock()
	return ok && utils.CheckPassword(password, h)
}

func (c *Credentials) Has(email string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.hashes[email]
	return ok
}

// Register stores a credential for email, failing if one already exists.
func (c *Credentials) Register(ctx context.Context, email, password string) error {
	if len(password) > utils.MaxPasswordBytes {
		return domain.ErrPasswordTooLong
	}
	h, err := utils.HashPassword(password, c.cost)
	if err != nil {
		return err
	}
	c.mu.Lock()
	if _, taken := c.hashes[email]; taken {
		c.mu.Unlock()
		return domain.ErrEmailTaken
	}
	c.hashes[email] = h
	c.mu.Unlock()
	return c.flush(ctx)
}

func (c *Credentials) flush(ctx context.Context) error {
	c.mu.RLock()
	snapshot := make(map[string]string, len(c.hashes))
	for k, v := range c.hashes {
		snapshot[k] = v
	}
	c.mu.RUnlock()
	if err := persistence.SetJSON(ctx, c.kv, c.key, snapshot); err != nil {
		return fmt.Errorf("%w: credentials: %w", domain.ErrPersist, err)
	}
	return nil
}
