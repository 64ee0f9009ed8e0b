package service

import (
	"context"
	"errors"
	"fmt"

	"address-registry/internal/address"
	"address-registry/internal/models"
	"address-registry/internal/telemetry"

	"github.com/rs/zerolog"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

var (
	ErrInvalidID         = errors.New("invalid address id")
	ErrInvalidPagination = errors.New("limit and offset must not be negative")
)

// AddressService validates addresses and hands valid ones to the store
type AddressService struct {
	repo    AddressRepository
	metrics *telemetry.AddressMetrics
	log     zerolog.Logger
}

// AddressRepository is the store contract. Insert and Replace must return address.ErrConflict when the tuple is held by another record, and the store must serialize them so that only one of two identical concurrent inserts succeeds.
type AddressRepository interface {
	Insert(ctx context.Context, key address.Key) (int64, error)
	Get(ctx context.Context, id int64) (*models.Address, error)
	Exists(ctx context.Context, key address.Key) (bool, error)
	Replace(ctx context.Context, id int64, key address.Key) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, limit, offset int) ([]models.Address, error)
}

// NewAddressService creates a new address service
func NewAddressService(repo AddressRepository, metrics *telemetry.AddressMetrics, logger zerolog.Logger) *AddressService {
	return &AddressService{
		repo:    repo,
		metrics: metrics,
		log:     logger.With().Str("component", "address_service").Logger(),
	}
}

// Validate checks a record without touching the store
func (s *AddressService) Validate(rec address.Record) address.Validation {
	v := address.Validate(rec)

	kinds := make(map[string]string, len(v.Errors()))
	for _, fe := range v.Errors() {
		kinds[fe.Field.String()] = fe.Kind.Code()
	}
	s.metrics.ObserveValidation(v.Valid(), kinds)

	if !v.Valid() {
		s.log.Debug().Err(v.Err()).Msg("address rejected")
	}
	return v
}

// Create validates a record and stores it. Duplicates fail with address.ErrConflict and are not retried.
func (s *AddressService) Create(ctx context.Context, rec address.Record) (*models.Address, error) {
	v := s.Validate(rec)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	key, _ := v.Key()
	display, _ := v.CanonicalString()

	id, err := s.repo.Insert(ctx, key)
	if err != nil {
		if errors.Is(err, address.ErrConflict) {
			s.metrics.IncConflict()
			s.log.Info().Str("address", display).Msg("duplicate address")
			return nil, fmt.Errorf("service: %w", err)
		}
		return nil, fmt.Errorf("service: failed to store address: %w", err)
	}

	s.metrics.IncStored()
	s.log.Info().Int64("id", id).Str("address", display).Msg("address stored")

	return &models.Address{ID: id, Record: rec, Display: display}, nil
}

// Get returns the stored address with the given id
func (s *AddressService) Get(ctx context.Context, id int64) (*models.Address, error) {
	if id <= 0 {
		return nil, fmt.Errorf("service: %w: %d", ErrInvalidID, id)
	}

	addr, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get address: %w", err)
	}

	return addr, nil
}

// Replace re-validates a full record and swaps it in for the stored one
func (s *AddressService) Replace(ctx context.Context, id int64, rec address.Record) (*models.Address, error) {
	if id <= 0 {
		return nil, fmt.Errorf("service: %w: %d", ErrInvalidID, id)
	}

	v := s.Validate(rec)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	key, _ := v.Key()
	display, _ := v.CanonicalString()

	if err := s.repo.Replace(ctx, id, key); err != nil {
		if errors.Is(err, address.ErrConflict) {
			s.metrics.IncConflict()
			s.log.Info().Int64("id", id).Str("address", display).Msg("duplicate address")
			return nil, fmt.Errorf("service: %w", err)
		}
		return nil, fmt.Errorf("service: failed to replace address: %w", err)
	}

	s.metrics.IncReplaced()
	s.log.Info().Int64("id", id).Str("address", display).Msg("address replaced")

	return &models.Address{ID: id, Record: rec, Display: display}, nil
}

// Delete removes an address, freeing its tuple for reuse
func (s *AddressService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("service: %w: %d", ErrInvalidID, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete address: %w", err)
	}

	s.metrics.IncDeleted()
	s.log.Info().Int64("id", id).Msg("address deleted")

	return nil
}

// Exists reports whether a valid record is already stored
func (s *AddressService) Exists(ctx context.Context, rec address.Record) (bool, error) {
	v := s.Validate(rec)
	if err := v.Err(); err != nil {
		return false, fmt.Errorf("service: %w", err)
	}

	key, _ := v.Key()
	exists, err := s.repo.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("service: failed to check address: %w", err)
	}

	return exists, nil
}

// List returns a page of stored addresses. A zero limit selects DefaultListLimit and limits above MaxListLimit are capped.
func (s *AddressService) List(ctx context.Context, limit, offset int) ([]models.Address, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("service: %w", ErrInvalidPagination)
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	addresses, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list addresses: %w", err)
	}

	return addresses, nil
}
