package testutil

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type MockRedisClient struct {
	DelFunc    func(ctx context.Context, key ...string) error
	SetObjFunc func(ctx context.Context, key string, obj any, ttl time.Duration) error
	GetObjFunc func(ctx context.Context, key string, v any) error
}

func (m *MockRedisClient) Del(ctx context.Context, key ...string) error {
	if m.DelFunc != nil {
		return m.DelFunc(ctx, key...)
	}

	return nil
}

func (m *MockRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	if m.SetObjFunc != nil {
		return m.SetObjFunc(ctx, key, obj, ttl)
	}

	return nil
}

func (m *MockRedisClient) GetObj(ctx context.Context, key string, v any) error {
	if m.GetObjFunc != nil {
		return m.GetObjFunc(ctx, key, v)
	}

	return redis.Nil
}

// MemoryRedisClient keeps objects in a map. TTLs are ignored.
type MemoryRedisClient struct {
	mutex sync.Mutex
	data  map[string][]byte

	SetCount int
	DelCount int
}

func NewMemoryRedisClient() *MemoryRedisClient {
	return &MemoryRedisClient{data: map[string][]byte{}}
}

// Has reports whether key is stored.
func (m *MemoryRedisClient) Has(key string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.data[key]
	return ok
}

func (m *MemoryRedisClient) Del(ctx context.Context, key ...string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.DelCount++
	for _, k := range key {
		delete(m.data, k)
	}

	return nil
}

func (m *MemoryRedisClient) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.SetCount++
	m.data[key] = b
	return nil
}

func (m *MemoryRedisClient) GetObj(ctx context.Context, key string, v any) error {
	m.mutex.Lock()
	b, ok := m.data[key]
	m.mutex.Unlock()

	if !ok {
		return redis.Nil
	}

	return json.Unmarshal(b, v)
}
