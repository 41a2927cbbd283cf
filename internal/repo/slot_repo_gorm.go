package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mhimmo/internal/feature/slot"
	"mhimmo/internal/persistence"
)

// key is reserved in MySQL, so conditions go through clause builders to
// get dialect quoting.
var keyColumn = clause.Column{Name: "key"}

func byKey(key string) clause.Expression { return clause.Eq{Column: keyColumn, Value: key} }

// SlotRepo is a persistence.KV over the kv_slots table.
type SlotRepo struct{ db *gorm.DB }

func NewSlotRepo(db *gorm.DB) *SlotRepo { return &SlotRepo{db: db} }

func (r *SlotRepo) Migrate() error { return r.db.AutoMigrate(slot.Models()...) }

func (r *SlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var m slot.SlotModel
	err := r.db.WithContext(ctx).Where(byKey(key)).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, persistence.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m.Value, nil
}

func (r *SlotRepo) Set(ctx context.Context, key string, val []byte) error {
	m := slot.SlotModel{Key: key, Value: val, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{keyColumn},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}

func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where(byKey(key)).Delete(&slot.SlotModel{}).Error
}

// Keys lists stored slot names in order.
func (r *SlotRepo) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := r.db.WithContext(ctx).Model(&slot.SlotModel{}).Order(clause.OrderByColumn{Column: keyColumn}).Pluck("key", &keys).Error
	return keys, err
}

var (
	_ persistence.KV     = (*SlotRepo)(nil)
	_ persistence.Lister = (*SlotRepo)(nil)
)
