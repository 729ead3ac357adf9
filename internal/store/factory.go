package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ipt-demo/hr-portal/backend/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open 根据 STORE_BACKEND 创建对应的键值存储
func Open(cfg *config.Config) (KV, error) {
	switch cfg.Store.Backend {
	case "memory":
		return NewMemoryKV(), nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Redis.ConnectTimeout)*time.Second)
		defer cancel()

		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis 连接失败: %w", err)
		}
		return NewRedisKV(rdb, cfg.Redis.KeyPrefix), nil
	case "postgres":
		dbpool, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			return nil, err
		}

		dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
		defer cancel()

		// sql.Open 只是创建连接池对象，需要显式 ping 一下
		if err := dbpool.PingContext(ctx); err != nil {
			_ = dbpool.Close()
			return nil, fmt.Errorf("数据库连接失败: %w", err)
		}

		kv, err := NewPostgresKV(ctx, dbpool)
		if err != nil {
			_ = dbpool.Close()
			return nil, err
		}
		return kv, nil
	case "sqlite":
		return NewSQLiteKV(cfg.SQLite.Path)
	default:
		return nil, config.ErrUnknownBackend
	}
}

// NewAdapterFromConfig 用 STORE_* 和 SEED_ADMIN_* 配置创建 Adapter
func NewAdapterFromConfig(kv KV, cfg *config.Config, logger *slog.Logger) *Adapter {
	return NewAdapter(
		kv,
		cfg.Store.Key,
		time.Duration(cfg.Store.OperationTimeout)*time.Second,
		SeedAdmin{
			FirstName: cfg.SeedAdmin.FirstName,
			LastName:  cfg.SeedAdmin.LastName,
			Email:     cfg.SeedAdmin.Email,
			Password:  cfg.SeedAdmin.Password,
		},
		logger,
	)
}
