// Package slot holds the table layout of the gorm slot backend.
package slot

import "time"

// SlotModel is one named slot holding a serialised collection or session value.
type SlotModel struct {
	Key       string    `gorm:"primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SlotModel) TableName() string { return "kv_slots" }

// Models lists everything AutoMigrate must create.
func Models() []any { return []any{&SlotModel{}} }
