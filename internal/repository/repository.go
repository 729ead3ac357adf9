package repository

import (
	"log/slog"
	"time"

	"github.com/ipt-demo/hr-portal/backend/internal/domain"
	"github.com/ipt-demo/hr-portal/backend/internal/store"
)

// Repository 持有内存中的 Database，每次修改后立即整体持久化
type Repository struct {
	adapter *store.Adapter
	db      *domain.Database
	valid   *validation
	logger  *slog.Logger
	now     func() time.Time

	subscribers []func(Event)
}

// Open 通过 adapter 加载数据（必要时写入种子数据）并创建 Repository
func Open(adapter *store.Adapter, logger *slog.Logger) (*Repository, error) {
	db, err := adapter.Open()
	if err != nil {
		return nil, err
	}

	return NewRepository(adapter, db, logger)
}

func NewRepository(adapter *store.Adapter, db *domain.Database, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}

	valid, err := newValidation()
	if err != nil {
		return nil, err
	}

	return &Repository{
		adapter: adapter,
		db:      db,
		valid:   valid,
		logger:  logger,
		now:     time.Now,
	}, nil
}

func (r *Repository) SetClock(now func() time.Time) {
	r.now = now
}

func (r *Repository) Adapter() *store.Adapter {
	return r.adapter
}

// Database 返回当前数据的快照，调用方修改快照不会影响 Repository
func (r *Repository) Database() *domain.Database {
	return r.db.Clone()
}

// mutate 在内存中执行修改并持久化，任何一步失败都会回滚到修改前的状态
func (r *Repository) mutate(fn func(db *domain.Database) error) error {
	backup := r.db.Clone()

	if err := fn(r.db); err != nil {
		r.db = backup
		return err
	}

	if err := r.adapter.Save(r.db); err != nil {
		r.logger.Error("持久化数据失败", "error", err)
		r.db = backup
		return err
	}

	return nil
}

// Reset 丢弃所有数据并重新写入种子数据
func (r *Repository) Reset() error {
	if err := r.mutate(func(db *domain.Database) error {
		*db = *r.adapter.Seed()
		return nil
	}); err != nil {
		return err
	}

	r.emit(Event{Entity: EntityDatabase, Op: OpReset})
	return nil
}
