package geocache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/uv-exposure/internal/domain/uvexposure"
)

// ValkeyStore keeps geocoding results in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "geocode"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (uvexposure.Location, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return uvexposure.Location{}, false, nil
		}
		return uvexposure.Location{}, false, err
	}
	var loc uvexposure.Location
	if err := json.Unmarshal([]byte(payload), &loc); err != nil {
		return uvexposure.Location{}, false, fmt.Errorf("decode cached location: %w", err)
	}
	return loc, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, loc uvexposure.Location, ttl time.Duration) error {
	payload, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key(k string) string {
	return fmt.Sprintf("%s:%s", s.prefix, k)
}

var _ Store = (*ValkeyStore)(nil)
