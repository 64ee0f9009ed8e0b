package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"address-registry/internal/address"
	"address-registry/internal/models"
)

// MemoryRepository is an in-process address store. A single mutex serializes every write against the uniqueness index.
type MemoryRepository struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]address.Key
	byKey  map[address.Key]int64
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[int64]address.Key),
		byKey: make(map[address.Key]int64),
	}
}

// Insert stores a new address tuple and returns its id
func (r *MemoryRepository) Insert(_ context.Context, key address.Key) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[key]; ok {
		return 0, fmt.Errorf("repository: %w", address.ErrConflict)
	}
	r.nextID++
	r.byID[r.nextID] = key
	r.byKey[key] = r.nextID
	return r.nextID, nil
}

// Get loads the address with the given id
func (r *MemoryRepository) Get(_ context.Context, id int64) (*models.Address, error) {
	r.mu.Lock()
	key, ok := r.byID[id]
	r.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("repository: %w", address.ErrNotFound)
	}
	return models.NewAddress(id, key)
}

// Exists reports whether the exact tuple is already stored
func (r *MemoryRepository) Exists(_ context.Context, key address.Key) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.byKey[key]
	return ok, nil
}

// Replace overwrites every component of an existing address
func (r *MemoryRepository) Replace(_ context.Context, id int64, key address.Key) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("repository: %w", address.ErrNotFound)
	}
	if owner, taken := r.byKey[key]; taken && owner != id {
		return fmt.Errorf("repository: %w", address.ErrConflict)
	}
	delete(r.byKey, old)
	r.byID[id] = key
	r.byKey[key] = id
	return nil
}

// Delete removes an address, freeing its tuple
func (r *MemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("repository: %w", address.ErrNotFound)
	}
	delete(r.byID, id)
	delete(r.byKey, key)
	return nil
}

// List returns a page of addresses in listing order
func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]models.Address, error) {
	r.mu.Lock()
	all := make([]models.Address, 0, len(r.byID))
	for id, key := range r.byID {
		all = append(all, models.Address{ID: id, Record: key.Record()})
	}
	r.mu.Unlock()

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

// sortAddresses applies the listing order shared by every store
func sortAddresses(addrs []models.Address) {
	sort.Slice(addrs, func(i, j int) bool {
		a, b := addrs[i], addrs[j]
		for _, f := range []address.Field{address.PostalCode, address.StateCode, address.City, address.StreetName, address.HouseNumber} {
			if va, vb := a.Get(f), b.Get(f); va != vb {
				return va < vb
			}
		}
		return a.ID < b.ID
	})
}

func paginate(addrs []models.Address, limit, offset int) []models.Address {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(addrs) {
		return nil
	}
	end := len(addrs)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return addrs[offset:end]
}
