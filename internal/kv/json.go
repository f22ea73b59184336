package kv

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Validator is implemented by records that check their own shape after
// decoding.
type Validator interface {
	Validate() error
}

// GetJSON decodes key into v. A value that does not parse or fails Validate
// is reported as ErrCorrupt with found=true so callers can discard it.
func GetJSON(ctx context.Context, s Store, key string, v any) (found bool, err error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	if val, ok := v.(Validator); ok {
		if err := val.Validate(); err != nil {
			return true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
		}
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}
