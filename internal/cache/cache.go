package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 定義快取操作介面
// 行程列表快取與已登出 token 黑名單都透過它存取 Redis
// 測試時以 FakeCache 替換
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	DelFn   func(ctx context.Context, keys ...string) *redis.IntCmd
	CloseFn func() error
}

// Get 執行 Fake 設定或 panic
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

// Del 執行 Fake 設定或 panic
func (f *FakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.DelFn != nil {
		return f.DelFn(ctx, keys...)
	}
	panic("unexpected Del")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

// NewMemoryCache 回傳以 map 實作的 FakeCache，給需要真實讀寫行為的測試使用
func NewMemoryCache() *FakeCache {
	data := map[string]string{}
	return &FakeCache{
		GetFn: func(_ context.Context, key string) *redis.StringCmd {
			v, ok := data[key]
			if !ok {
				return redis.NewStringResult("", redis.Nil)
			}
			return redis.NewStringResult(v, nil)
		},
		SetFn: func(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
			switch v := value.(type) {
			case []byte:
				data[key] = string(v)
			case string:
				data[key] = v
			default:
				data[key] = "1"
			}
			return redis.NewStatusResult("OK", nil)
		},
		DelFn: func(_ context.Context, keys ...string) *redis.IntCmd {
			var n int64
			for _, k := range keys {
				if _, ok := data[k]; ok {
					delete(data, k)
					n++
				}
			}
			return redis.NewIntResult(n, nil)
		},
	}
}
