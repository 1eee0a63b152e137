package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/postkeeper/internal/common"
)

// SetJSON stores v JSON-encoded under key.
func SetJSON(ctx context.Context, r Repository, key Key, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", common.ErrSerialization, key, err)
	}
	return r.Set(ctx, string(key), string(b))
}

// GetJSON decodes the value stored under key into v. It reports false when
// the key is absent; v is left untouched in that case.
func GetJSON(ctx context.Context, r Repository, key Key, v any) (bool, error) {
	raw, ok, err := r.Get(ctx, string(key))
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("%w: decode %s: %v", common.ErrSerialization, key, err)
	}
	return true, nil
}
