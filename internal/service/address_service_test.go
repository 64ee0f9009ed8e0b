package service

import (
	"context"
	"fmt"
	"testing"

	"address-registry/internal/address"
	"address-registry/internal/models"
	"address-registry/internal/repository"
	"address-registry/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAddressRepository is a mock implementation of the AddressRepository interface
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) Insert(ctx context.Context, key address.Key) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAddressRepository) Get(ctx context.Context, id int64) (*models.Address, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.Address), args.Error(1)
}

func (m *MockAddressRepository) Exists(ctx context.Context, key address.Key) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockAddressRepository) Replace(ctx context.Context, id int64, key address.Key) error {
	args := m.Called(ctx, id, key)
	return args.Error(0)
}

func (m *MockAddressRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAddressRepository) List(ctx context.Context, limit, offset int) ([]models.Address, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Address), args.Error(1)
}

func springfield() address.Record {
	return address.Record{
		HouseNumber:     "1234",
		DirectionPrefix: "N",
		StreetName:      "Main",
		StreetType:      "St",
		City:            "Springfield",
		StateCode:       "IL",
		PostalCode:      "62704",
	}
}

func springfieldKey() address.Key {
	return address.Key{"1234", "N", "Main", "St", "", "", "Springfield", "IL", "62704", ""}
}

func newTestService(repo AddressRepository) (*AddressService, *telemetry.AddressMetrics) {
	metrics := telemetry.NewAddressMetrics(prometheus.NewRegistry(), "test")
	return NewAddressService(repo, metrics, zerolog.Nop()), metrics
}

func TestAddressService_Create(t *testing.T) {
	invalid := springfield()
	invalid.HouseNumber = "12AB"

	tests := []struct {
		name        string
		record      address.Record
		mockID      int64
		mockError   error
		callsRepo   bool
		expected    *models.Address
		expectError error
	}{
		{
			name:      "valid address",
			record:    springfield(),
			mockID:    1,
			callsRepo: true,
			expected: &models.Address{
				ID:      1,
				Record:  springfield(),
				Display: "1234 N Main St Springfield IL 62704",
			},
		},
		{
			name:        "invalid address never reaches the store",
			record:      invalid,
			expectError: address.ErrMalformedField,
		},
		{
			name:        "duplicate address",
			record:      springfield(),
			mockError:   fmt.Errorf("repository: %w", address.ErrConflict),
			callsRepo:   true,
			expectError: address.ErrConflict,
		},
		{
			name:        "repository error",
			record:      springfield(),
			mockError:   assert.AnError,
			callsRepo:   true,
			expectError: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockAddressRepository)
			service, _ := newTestService(mockRepo)

			if tt.callsRepo {
				mockRepo.On("Insert", mock.Anything, springfieldKey()).Return(tt.mockID, tt.mockError)
			}

			// Execute
			result, err := service.Create(context.Background(), tt.record)

			// Assert
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}

			mockRepo.AssertExpectations(t)
			if !tt.callsRepo {
				mockRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestAddressService_CreateRecordsMetrics(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service, metrics := newTestService(mockRepo)

	mockRepo.On("Insert", mock.Anything, springfieldKey()).Return(int64(0), address.ErrConflict).Once()

	_, err := service.Create(context.Background(), springfield())
	require.ErrorIs(t, err, address.ErrConflict)

	bad := springfield()
	bad.City = ""
	_, err = service.Create(context.Background(), bad)
	require.ErrorIs(t, err, address.ErrMissingRequiredField)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Conflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Validations.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Validations.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FieldErrors.WithLabelValues("city", "missing_required")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.Stored))
}

func TestAddressService_Get(t *testing.T) {
	stored := &models.Address{ID: 3, Record: springfield(), Display: "1234 N Main St Springfield IL 62704"}

	tests := []struct {
		name        string
		id          int64
		mockAddress *models.Address
		mockError   error
		expectError error
	}{
		{name: "found", id: 3, mockAddress: stored},
		{name: "not found", id: 4, mockAddress: nil, mockError: address.ErrNotFound, expectError: address.ErrNotFound},
		{name: "invalid id", id: 0, expectError: ErrInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAddressRepository)
			service, _ := newTestService(mockRepo)

			if tt.id > 0 {
				mockRepo.On("Get", mock.Anything, tt.id).Return(tt.mockAddress, tt.mockError)
			}

			result, err := service.Get(context.Background(), tt.id)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, stored, result)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAddressService_Replace(t *testing.T) {
	moved := springfield()
	moved.Unit = "Apt 2"
	movedKey := springfieldKey()
	movedKey[address.Unit] = "Apt 2"

	t.Run("replaces with re-validated record", func(t *testing.T) {
		mockRepo := new(MockAddressRepository)
		service, metrics := newTestService(mockRepo)
		mockRepo.On("Replace", mock.Anything, int64(5), movedKey).Return(nil)

		result, err := service.Replace(context.Background(), 5, moved)
		require.NoError(t, err)
		assert.Equal(t, "1234 N Main St Apt 2 Springfield IL 62704", result.Display)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Replaced))
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid record is rejected", func(t *testing.T) {
		mockRepo := new(MockAddressRepository)
		service, _ := newTestService(mockRepo)

		bad := moved
		bad.Unit = "Apt"
		_, err := service.Replace(context.Background(), 5, bad)
		assert.ErrorIs(t, err, address.ErrMalformedField)
		mockRepo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("conflict", func(t *testing.T) {
		mockRepo := new(MockAddressRepository)
		service, _ := newTestService(mockRepo)
		mockRepo.On("Replace", mock.Anything, int64(5), movedKey).Return(address.ErrConflict)

		_, err := service.Replace(context.Background(), 5, moved)
		assert.ErrorIs(t, err, address.ErrConflict)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockAddressRepository)
		service, _ := newTestService(mockRepo)
		mockRepo.On("Replace", mock.Anything, int64(6), movedKey).Return(address.ErrNotFound)

		_, err := service.Replace(context.Background(), 6, moved)
		assert.ErrorIs(t, err, address.ErrNotFound)
	})
}

func TestAddressService_Delete(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service, metrics := newTestService(mockRepo)

	mockRepo.On("Delete", mock.Anything, int64(1)).Return(nil)
	mockRepo.On("Delete", mock.Anything, int64(2)).Return(address.ErrNotFound)

	assert.NoError(t, service.Delete(context.Background(), 1))
	assert.ErrorIs(t, service.Delete(context.Background(), 2), address.ErrNotFound)
	assert.ErrorIs(t, service.Delete(context.Background(), -1), ErrInvalidID)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Deleted))
	mockRepo.AssertExpectations(t)
}

func TestAddressService_Exists(t *testing.T) {
	mockRepo := new(MockAddressRepository)
	service, _ := newTestService(mockRepo)

	mockRepo.On("Exists", mock.Anything, springfieldKey()).Return(true, nil)

	exists, err := service.Exists(context.Background(), springfield())
	require.NoError(t, err)
	assert.True(t, exists)

	bad := springfield()
	bad.StateCode = "il"
	_, err = service.Exists(context.Background(), bad)
	assert.ErrorIs(t, err, address.ErrMalformedField)

	mockRepo.AssertExpectations(t)
}

func TestAddressService_List(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		offset      int
		repoLimit   int
		expectError bool
	}{
		{name: "default limit", limit: 0, offset: 0, repoLimit: DefaultListLimit},
		{name: "explicit limit", limit: 10, offset: 20, repoLimit: 10},
		{name: "capped limit", limit: 10000, offset: 0, repoLimit: MaxListLimit},
		{name: "negative offset", limit: 10, offset: -1, expectError: true},
		{name: "negative limit", limit: -1, offset: 0, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAddressRepository)
			service, _ := newTestService(mockRepo)

			if !tt.expectError {
				mockRepo.On("List", mock.Anything, tt.repoLimit, tt.offset).Return([]models.Address{}, nil)
			}

			result, err := service.List(context.Background(), tt.limit, tt.offset)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidPagination)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, []models.Address{}, result)
			mockRepo.AssertExpectations(t)
		})
	}
}

// Two records differing in one field both fit in a real store; an identical
// third one is a conflict.
func TestAddressService_UniquenessWithMemoryStore(t *testing.T) {
	service, _ := newTestService(repository.NewMemoryRepository())
	ctx := context.Background()

	first, err := service.Create(ctx, springfield())
	require.NoError(t, err)

	next := springfield()
	next.HouseNumber = "1235"
	second, err := service.Create(ctx, next)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = service.Create(ctx, springfield())
	assert.ErrorIs(t, err, address.ErrConflict)

	require.NoError(t, service.Delete(ctx, first.ID))
	_, err = service.Create(ctx, springfield())
	assert.NoError(t, err)
}
