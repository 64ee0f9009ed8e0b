package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"address-registry/internal/address"
	"address-registry/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps addresses in Redis.
//
// Layout, under a configurable prefix:
//
//	<prefix>seq          INCR counter for record ids
//	<prefix>rec:<id>     hash of the ten components
//	<prefix>key:<sha256> uniqueness slot holding the owning id, claimed with SETNX
//	<prefix>ids          sorted set of live ids
//
// Writes run as Lua scripts so a slot is never held without its record.
type RedisRepository struct {
	rdb    *redis.Client
	prefix string
}

const maxSwapAttempts = 3

// Script results. swapStale means the old slot no longer belongs to the
// record, so the caller reloads and tries again.
const (
	swapStale int64 = 0
	swapDone  int64 = 1
	swapTaken int64 = -1
)

// KEYS: slot, record, ids. ARGV: id, then field/value pairs.
var insertScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
	return -1
end
redis.call('HSET', KEYS[2], unpack(ARGV, 2))
redis.call('ZADD', KEYS[3], ARGV[1], ARGV[1])
return 1
`)

// KEYS: record, old slot, new slot. ARGV: id, then field/value pairs.
var replaceScript = redis.NewScript(`
if redis.call('GET', KEYS[2]) ~= ARGV[1] or redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('SETNX', KEYS[3], ARGV[1]) == 0 then
	return -1
end
redis.call('HSET', KEYS[1], unpack(ARGV, 2))
redis.call('DEL', KEYS[2])
return 1
`)

// KEYS: record, slot, ids. ARGV: id.
var deleteScript = redis.NewScript(`
if redis.call('GET', KEYS[2]) ~= ARGV[1] then
	return 0
end
redis.call('DEL', KEYS[1], KEYS[2])
redis.call('ZREM', KEYS[3], ARGV[1])
return 1
`)

// NewRedisRepository creates a repository over an existing client
func NewRedisRepository(rdb *redis.Client, prefix string) *RedisRepository {
	if prefix == "" {
		prefix = "address:"
	}
	return &RedisRepository{rdb: rdb, prefix: prefix}
}

func (r *RedisRepository) seqKey() string { return r.prefix + "seq" }

func (r *RedisRepository) idsKey() string { return r.prefix + "ids" }

func (r *RedisRepository) recordKey(id int64) string {
	return r.prefix + "rec:" + strconv.FormatInt(id, 10)
}

func (r *RedisRepository) slotKey(key address.Key) string {
	b, _ := json.Marshal(key)
	sum := sha256.Sum256(b)
	return r.prefix + "key:" + hex.EncodeToString(sum[:])
}

// Insert claims the uniqueness slot and writes the record in one script, so
// only one of two identical inserts can succeed
func (r *RedisRepository) Insert(ctx context.Context, key address.Key) (int64, error) {
	id, err := r.rdb.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to allocate id: %w", err)
	}

	keys := []string{r.slotKey(key), r.recordKey(id), r.idsKey()}
	args := append([]interface{}{id}, recordArgs(key)...)

	res, err := insertScript.Run(ctx, r.rdb, keys, args...).Int64()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert address: %w", err)
	}
	if res == swapTaken {
		return 0, fmt.Errorf("repository: %w", address.ErrConflict)
	}

	return id, nil
}

// Get loads the address with the given id
func (r *RedisRepository) Get(ctx context.Context, id int64) (*models.Address, error) {
	key, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.NewAddress(id, key)
}

// Exists reports whether the tuple's uniqueness slot is taken
func (r *RedisRepository) Exists(ctx context.Context, key address.Key) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.slotKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("repository: failed to check address: %w", err)
	}
	return n > 0, nil
}

// Replace swaps the tuple of an existing record. The slot claim, hash write
// and release of the old slot run in one script, retried when the record
// changed between the read and the script.
func (r *RedisRepository) Replace(ctx context.Context, id int64, key address.Key) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		current, err := r.load(ctx, id)
		if err != nil {
			return err
		}
		if current == key {
			return nil
		}

		keys := []string{r.recordKey(id), r.slotKey(current), r.slotKey(key)}
		args := append([]interface{}{id}, recordArgs(key)...)

		res, err := replaceScript.Run(ctx, r.rdb, keys, args...).Int64()
		if err != nil {
			return fmt.Errorf("repository: failed to replace address: %w", err)
		}
		switch res {
		case swapDone:
			return nil
		case swapTaken:
			return fmt.Errorf("repository: %w", address.ErrConflict)
		case swapStale:
			continue
		}
	}
	return fmt.Errorf("repository: address %d kept changing during replace", id)
}

// Delete removes the record, its uniqueness slot and its id in one script
func (r *RedisRepository) Delete(ctx context.Context, id int64) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		key, err := r.load(ctx, id)
		if err != nil {
			return err
		}

		keys := []string{r.recordKey(id), r.slotKey(key), r.idsKey()}
		res, err := deleteScript.Run(ctx, r.rdb, keys, id).Int64()
		if err != nil {
			return fmt.Errorf("repository: failed to delete address: %w", err)
		}
		if res != swapStale {
			return nil
		}
	}
	return fmt.Errorf("repository: address %d kept changing during delete", id)
}

// List returns a page of addresses in listing order
func (r *RedisRepository) List(ctx context.Context, limit, offset int) ([]models.Address, error) {
	members, err := r.rdb.ZRange(ctx, r.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("repository: failed to list ids: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("repository: invalid id %q: %w", m, err)
		}
		ids = append(ids, id)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	if len(ids) > 0 {
		_, err = r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, id := range ids {
				cmds[i] = pipe.HGetAll(ctx, r.recordKey(id))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("repository: failed to load addresses: %w", err)
		}
	}

	all := make([]models.Address, 0, len(ids))
	for i, id := range ids {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			continue
		}
		all = append(all, models.Address{ID: id, Record: keyFromHash(fields).Record()})
	}

	sortAddresses(all)
	page := paginate(all, limit, offset)

	out := make([]models.Address, 0, len(page))
	for _, a := range page {
		addr, err := models.NewAddress(a.ID, a.Key())
		if err != nil {
			return nil, fmt.Errorf("repository: %w", err)
		}
		out = append(out, *addr)
	}
	return out, nil
}

func (r *RedisRepository) load(ctx context.Context, id int64) (address.Key, error) {
	fields, err := r.rdb.HGetAll(ctx, r.recordKey(id)).Result()
	if err != nil {
		return address.Key{}, fmt.Errorf("repository: failed to get address: %w", err)
	}
	if len(fields) == 0 {
		return address.Key{}, fmt.Errorf("repository: %w", address.ErrNotFound)
	}
	return keyFromHash(fields), nil
}

func recordArgs(key address.Key) []interface{} {
	args := make([]interface{}, 0, 2*address.NumFields)
	for _, f := range address.Fields() {
		args = append(args, f.String(), key[f])
	}
	return args
}

func keyFromHash(fields map[string]string) address.Key {
	var key address.Key
	for _, f := range address.Fields() {
		key[f] = fields[f.String()]
	}
	return key
}
