// Package store owns every entity record in memory and keeps the derived
// property occupancy consistent with contracts. Each mutation is handed to a
// Mirror (the persistence adapter) after it has been applied.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/pkg/utils"
)

// Mirror receives the full affected collection after each mutation.
type Mirror interface {
	Mirror(ctx context.Context, c domain.Collection, records any) error
}

type Options struct {
	// StrictContracts rejects contracts whose property does not exist.
	// When false the contract is kept and the occupancy side effect is skipped.
	StrictContracts bool
	Now             func() time.Time
	NewID           func(prefix string) string
	Mirror          Mirror
	Logger          *zap.Logger
}

type Store struct {
	mu   sync.RWMutex
	data Dataset
	// property id -> index into data.Contracts
	byProperty map[string]int

	// serialises mirror writes so snapshots land in mutation order
	flushMu sync.Mutex

	strict bool
	now    func() time.Time
	newID  func(prefix string) string
	mirror Mirror
	log    *zap.Logger
}

func New(o Options) *Store {
	s := &Store{
		byProperty: map[string]int{},
		strict:     o.StrictContracts,
		now:        o.Now,
		newID:      o.NewID,
		mirror:     o.Mirror,
		log:        o.Logger,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = utils.NewID
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// SetMirror attaches the mirror after construction, e.g. once the store has
// been restored from the same backend it mirrors to.
func (s *Store) SetMirror(m Mirror) {
	s.flushMu.Lock()
	s.mirror = m
	s.flushMu.Unlock()
}

// Restore replaces every collection with ds. Property status and tenant are
// recomputed from the contracts; whatever ds says about them is ignored.
func (s *Store) Restore(ds Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = ds.Clone()
	s.byProperty = make(map[string]int, len(s.data.Contracts))
	for i, c := range s.data.Contracts {
		// later contracts win, matching the order they were applied in
		s.byProperty[c.PropertyID] = i
	}
	for i := range s.data.Properties {
		s.deriveLocked(i)
	}
	s.log.Debug("store restored",
		zap.Int("users", len(s.data.Users)),
		zap.Int("properties", len(s.data.Properties)),
		zap.Int("contracts", len(s.data.Contracts)),
		zap.Int("messages", len(s.data.Messages)),
		zap.Int("payments", len(s.data.Payments)),
	)
}

// Snapshot returns a consistent copy of every collection.
func (s *Store) Snapshot() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// View runs fn against the live collections under a read lock. fn must not
// retain or modify the slices.
func (s *Store) View(fn func(d Dataset)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) deriveLocked(i int) {
	p := &s.data.Properties[i]
	if ci, ok := s.byProperty[p.ID]; ok {
		p.Status = domain.StatusOccupied
		p.TenantID = s.data.Contracts[ci].TenantID
		return
	}
	p.Status = domain.StatusVacant
	p.TenantID = ""
}

// maxIDDraws bounds how often a generator may repeat a taken id before the
// store gives up.
const maxIDDraws = 16

// freshID draws ids until one is absent from recs. A generator that keeps
// returning taken ids is a programming error and panics.
func freshID[T any](s *Store, prefix string, recs []T, idOf func(T) string) string {
	for range maxIDDraws {
		id := s.newID(prefix)
		if !slices.ContainsFunc(recs, func(r T) bool { return idOf(r) == id }) {
			return id
		}
		s.log.Warn("generated id already taken", zap.String("id", id))
	}
	panic(fmt.Sprintf("store: no free %s id after %d draws", prefix, maxIDDraws))
}

type pending struct {
	c       domain.Collection
	records any
}

// commit must be called with s.mu held for writing. It takes the flush lock
// before releasing s.mu so mirrors are written in mutation order, then writes
// each pending collection.
func (s *Store) commit(ctx context.Context, writes ...pending) error {
	s.flushMu.Lock()
	s.mu.Unlock()
	defer s.flushMu.Unlock()

	if s.mirror == nil {
		return nil
	}
	for _, w := range writes {
		if err := s.mirror.Mirror(ctx, w.c, w.records); err != nil {
			s.log.Error("mirror write failed", zap.String("collection", string(w.c)), zap.Error(err))
			return fmt.Errorf("%w: %s: %w", domain.ErrPersist, w.c, err)
		}
	}
	return nil
}
