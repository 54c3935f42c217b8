// Package mocks holds testify mocks of the domain and service interfaces
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/repository"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
)

// MockStore mocks the repository.Store interface
type MockStore[T repository.Record] struct {
	mock.Mock
}

func (m *MockStore[T]) List(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) Insert(ctx context.Context, record T) (T, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockStore[T]) Update(ctx context.Context, key string, record T) (T, error) {
	args := m.Called(ctx, key, record)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockStore[T]) Delete(ctx context.Context, key string) (T, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(T), args.Error(1)
}

// MockInventoryRepository mocks the inventory store
type MockInventoryRepository = MockStore[entity.InventoryItem]

// MockTransactionRepository mocks the transaction store
type MockTransactionRepository = MockStore[entity.Transaction]

// MockRateProvider mocks the service.RateProvider interface
type MockRateProvider struct {
	mock.Mock
	Tag entity.Provenance
	Key bool
}

func (m *MockRateProvider) Code() entity.Provenance {
	return m.Tag
}

func (m *MockRateProvider) Name() string {
	return string(m.Tag)
}

// Configured reports whether the provider holds a usable key
func (m *MockRateProvider) Configured() bool {
	return m.Key
}

func (m *MockRateProvider) Fetch(ctx context.Context, base entity.CurrencyCode) (*entity.ProviderRates, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProviderRates), args.Error(1)
}

// MockRateFetcher mocks the rate acquisition pipeline
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) FetchRates(ctx context.Context, base entity.CurrencyCode) *entity.RateTable {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entity.RateTable)
}

// MockIdentityChecker mocks the service.IdentityChecker interface
type MockIdentityChecker struct {
	mock.Mock
}

func (m *MockIdentityChecker) Check(ctx context.Context, credential string) entity.Identity {
	args := m.Called(ctx, credential)
	return args.Get(0).(entity.Identity)
}

// MockLogger mocks the logger interface
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) Fatal(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *MockLogger) WithField(key string, value interface{}) logger.Logger {
	args := m.Called(key, value)
	return args.Get(0).(logger.Logger)
}

func (m *MockLogger) WithFields(fields map[string]interface{}) logger.Logger {
	args := m.Called(fields)
	return args.Get(0).(logger.Logger)
}
