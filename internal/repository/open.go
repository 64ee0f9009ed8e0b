package repository

import (
	"context"
	"fmt"
	"time"

	"address-registry/internal/address"
	"address-registry/internal/config"
	"address-registry/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Store is the contract every address repository fulfils. Insert and Replace
// return address.ErrConflict when the tuple is held by another record.
type Store interface {
	Insert(ctx context.Context, key address.Key) (int64, error)
	Get(ctx context.Context, id int64) (*models.Address, error)
	Exists(ctx context.Context, key address.Key) (bool, error)
	Replace(ctx context.Context, id int64, key address.Key) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]models.Address, error)
}

var (
	_ Store = (*PostgresRepository)(nil)
	_ Store = (*RedisRepository)(nil)
	_ Store = (*MemoryRepository)(nil)
)

// Open connects the store selected by cfg.StoreDriver and checks that it is
// reachable. Postgres migrations run first when cfg.MigrateOnStart is set.
// The returned func releases the connection.
func Open(ctx context.Context, cfg config.Config) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if cfg.MigrateOnStart {
			if err := Migrate(cfg.DBSource); err != nil {
				return nil, nil, err
			}
		}

		pool, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("repository: failed to connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("repository: failed to ping postgres: %w", err)
		}
		return NewPostgresRepository(pool), pool.Close, nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("repository: failed to ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisRepository(rdb, cfg.RedisPrefix), func() { rdb.Close() }, nil

	case config.DriverMemory:
		return NewMemoryRepository(), func() {}, nil
	}

	return nil, nil, fmt.Errorf("repository: unknown store driver %q", cfg.StoreDriver)
}
