package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
)

// CorruptSuffix 是损坏数据备份键的后缀
const CorruptSuffix = ".corrupt"

// Adapter 负责把整个 Database 序列化到一个键下
type Adapter struct {
	kv      KV
	key     string
	timeout time.Duration
	admin   SeedAdmin
	logger  *slog.Logger
}

func NewAdapter(kv KV, key string, timeout time.Duration, admin SeedAdmin, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		kv:      kv,
		key:     key,
		timeout: timeout,
		admin:   admin,
		logger:  logger,
	}
}

func (a *Adapter) KV() KV { return a.kv }

func (a *Adapter) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

// Load 读取并解析数据。条目不存在返回 ErrKeyNotFound，无法解析返回包裹 domain.ErrStorageCorruption 的错误
func (a *Adapter) Load() (*domain.Database, error) {
	ctx, cancel := a.context()
	defer cancel()

	raw, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return nil, err
	}

	db, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorruption, err)
	}
	return db, nil
}

// errMissingAccounts 表示内容是合法 JSON 但不是一个可用的数据库，例如 null 或 {}
var errMissingAccounts = errors.New("accounts 字段缺失")

func decode(raw string) (*domain.Database, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	if accounts, ok := fields["accounts"]; !ok || string(accounts) == "null" {
		return nil, errMissingAccounts
	}

	db := &domain.Database{}
	if err := json.Unmarshal([]byte(raw), db); err != nil {
		return nil, err
	}
	db.Normalize()
	return db, nil
}

// Save 序列化整个 Database 并无条件覆盖
func (a *Adapter) Save(db *domain.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return err
	}

	ctx, cancel := a.context()
	defer cancel()

	return a.kv.Set(ctx, a.key, string(data))
}

// Open 是启动时的加载流程。
// 条目不存在或无法解析时都会写入种子数据；损坏的原始内容会先备份到 key+CorruptSuffix。
// 解析错误不会返回给调用方，只有存储本身的读写错误才会返回。
func (a *Adapter) Open() (*domain.Database, error) {
	db, err := a.Load()
	switch {
	case err == nil:
		return db, nil
	case errors.Is(err, ErrKeyNotFound):
		a.logger.Info("未找到已保存的数据，写入种子数据", "key", a.key)
	case errors.Is(err, domain.ErrStorageCorruption):
		a.logger.Warn("已保存的数据无法解析，备份后重新写入种子数据", "key", a.key, "backup", a.key+CorruptSuffix, "error", err)
		if err := a.backupCorrupt(); err != nil {
			a.logger.Error("备份损坏数据失败", "key", a.key, "error", err)
		}
	default:
		return nil, err
	}

	db = Seed(a.admin)
	if err := a.Save(db); err != nil {
		return nil, err
	}
	return db, nil
}

func (a *Adapter) backupCorrupt() error {
	ctx, cancel := a.context()
	defer cancel()

	raw, err := a.kv.Get(ctx, a.key)
	if err != nil {
		return err
	}
	return a.kv.Set(ctx, a.key+CorruptSuffix, raw)
}

// Seed 返回一份新的种子数据，不写入存储
func (a *Adapter) Seed() *domain.Database {
	return Seed(a.admin)
}

// GetSlot / SetSlot / DeleteSlot 读写与主数据无关的旁路条目，例如 auth_token
func (a *Adapter) GetSlot(key string) (string, error) {
	ctx, cancel := a.context()
	defer cancel()
	return a.kv.Get(ctx, key)
}

func (a *Adapter) SetSlot(key, value string) error {
	ctx, cancel := a.context()
	defer cancel()
	return a.kv.Set(ctx, key, value)
}

func (a *Adapter) DeleteSlot(key string) error {
	ctx, cancel := a.context()
	defer cancel()
	return a.kv.Delete(ctx, key)
}
