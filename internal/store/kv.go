package store

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KV 是字符串键值存储，语义与浏览器的 localStorage 相同：整体覆盖写，没有并发控制
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
