package schedulecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/nap-planner/internal/domain/napschedule"
)

// ValkeyStore caches schedules in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "napplan"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (napschedule.Schedule, bool, error) {
	if key == "" {
		return napschedule.Schedule{}, false, nil
	}
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return napschedule.Schedule{}, false, nil
		}
		return napschedule.Schedule{}, false, err
	}
	var schedule napschedule.Schedule
	if err := json.Unmarshal([]byte(payload), &schedule); err != nil {
		return napschedule.Schedule{}, false, err
	}
	return schedule, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, schedule napschedule.Schedule, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	payload, err := json.Marshal(schedule)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
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

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:schedule:%s", s.prefix, key)
}

var _ napschedule.Cache = (*ValkeyStore)(nil)
