package persistence

import (
	"context"
	"encoding/json"
	"errors"
)

// GetJSON decodes the slot at key into a T. found is false for an empty slot.
func GetJSON[T any](ctx context.Context, kv KV, key string) (v T, found bool, err error) {
	b, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return v, false, nil
	}
	if err != nil {
		return v, false, err
	}
	if string(b) == "null" {
		return v, true, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, false, err
	}
	return v, true, nil
}

func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, b)
}
