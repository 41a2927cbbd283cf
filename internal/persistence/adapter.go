package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"mhimmo/internal/domain"
	"mhimmo/internal/store"
)

var (
	mirrorWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "mhimmo_mirror_writes_total", Help: "Collection mirror writes by result"},
		[]string{"collection", "result"},
	)
	mirrorBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "mhimmo_mirror_bytes", Help: "Size of the last mirrored collection payload"},
		[]string{"collection"},
	)
)

func init() { prometheus.MustRegister(mirrorWrites, mirrorBytes) }

// Adapter mirrors store collections into a KV backend. It holds no copy of
// the data itself.
type Adapter struct {
	kv   KV
	keys Keys
	log  *zap.Logger
}

func NewAdapter(kv KV, keys Keys, l *zap.Logger) *Adapter {
	if l == nil {
		l = zap.NewNop()
	}
	return &Adapter{kv: kv, keys: keys, log: l}
}

func (a *Adapter) KV() KV     { return a.kv }
func (a *Adapter) Keys() Keys { return a.keys }

// Mirror serialises records and overwrites the slot of collection c.
func (a *Adapter) Mirror(ctx context.Context, c domain.Collection, records any) error {
	b, err := json.Marshal(records)
	if err != nil {
		mirrorWrites.WithLabelValues(string(c), "error").Inc()
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := a.kv.Set(ctx, a.keys.Collection(c), b); err != nil {
		mirrorWrites.WithLabelValues(string(c), "error").Inc()
		return fmt.Errorf("write %s: %w", c, err)
	}
	mirrorWrites.WithLabelValues(string(c), "ok").Inc()
	mirrorBytes.WithLabelValues(string(c)).Set(float64(len(b)))
	return nil
}

// Load rehydrates every collection from its slot. Collections whose slot is
// empty are taken from seed and reported in seeded.
func (a *Adapter) Load(ctx context.Context, seed store.Dataset) (ds store.Dataset, seeded []domain.Collection, err error) {
	if ds.Users, err = loadSlot(ctx, a, domain.CollectionUsers, seed.Users, &seeded); err != nil {
		return
	}
	if ds.Properties, err = loadSlot(ctx, a, domain.CollectionProperties, seed.Properties, &seeded); err != nil {
		return
	}
	if ds.Contracts, err = loadSlot(ctx, a, domain.CollectionContracts, seed.Contracts, &seeded); err != nil {
		return
	}
	if ds.Messages, err = loadSlot(ctx, a, domain.CollectionMessages, seed.Messages, &seeded); err != nil {
		return
	}
	if ds.Payments, err = loadSlot(ctx, a, domain.CollectionPayments, seed.Payments, &seeded); err != nil {
		return
	}
	a.log.Debug("collections loaded", zap.Int("seeded", len(seeded)))
	return ds, seeded, nil
}

func loadSlot[T any](ctx context.Context, a *Adapter, c domain.Collection, seed []T, seeded *[]domain.Collection) ([]T, error) {
	v, found, err := GetJSON[[]T](ctx, a.kv, a.keys.Collection(c))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c, err)
	}
	if !found {
		*seeded = append(*seeded, c)
		return append([]T(nil), seed...), nil
	}
	if v == nil {
		v = []T{}
	}
	return v, nil
}

// Save writes the given collections of ds; no collections means all of them.
func (a *Adapter) Save(ctx context.Context, ds store.Dataset, cs ...domain.Collection) error {
	if len(cs) == 0 {
		cs = domain.Collections
	}
	for _, c := range cs {
		if err := a.Mirror(ctx, c, ds.Records(c)); err != nil {
			return err
		}
	}
	return nil
}

// Raw returns the stored payload of collection c.
func (a *Adapter) Raw(ctx context.Context, c domain.Collection) ([]byte, error) {
	return a.kv.Get(ctx, a.keys.Collection(c))
}

// Stored lists the application slots that currently hold data. Backends that
// implement Lister are asked once; the others are read slot by slot.
func (a *Adapter) Stored(ctx context.Context) ([]string, error) {
	if l, ok := a.kv.(Lister); ok {
		keys, err := l.Keys(ctx)
		if err != nil {
			return nil, fmt.Errorf("list slots: %w", err)
		}
		ours := a.keys.All()
		return slices.DeleteFunc(keys, func(k string) bool { return !slices.Contains(ours, k) }), nil
	}
	var out []string
	for _, k := range a.keys.All() {
		_, err := a.kv.Get(ctx, k)
		switch {
		case errors.Is(err, ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", k, err)
		default:
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Reset deletes every slot, including the session and preference slots.
func (a *Adapter) Reset(ctx context.Context) error {
	for _, k := range a.keys.All() {
		if err := a.kv.Delete(ctx, k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return nil
}
