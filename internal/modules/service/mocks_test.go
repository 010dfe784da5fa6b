package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tiendastsgt/agencia/internal/modules/model"
)

type MockClientRepo struct {
	mock.Mock
}

func (m *MockClientRepo) Create(ctx context.Context, c *model.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepo) GetByID(ctx context.Context, agencyID, id uuid.UUID) (*model.Client, error) {
	args := m.Called(ctx, agencyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Client), args.Error(1)
}

func (m *MockClientRepo) List(ctx context.Context, agencyID uuid.UUID, afterCreatedAt time.Time, afterID uuid.UUID, limit int) ([]*model.Client, error) {
	args := m.Called(ctx, agencyID, afterCreatedAt, afterID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Client), args.Error(1)
}

func (m *MockClientRepo) Update(ctx context.Context, c *model.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepo) Deactivate(ctx context.Context, agencyID, id uuid.UUID) error {
	args := m.Called(ctx, agencyID, id)
	return args.Error(0)
}

type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) Upsert(ctx context.Context, c *model.APICredential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCredentialRepo) Get(ctx context.Context, clientID uuid.UUID, platform string) (*model.APICredential, error) {
	args := m.Called(ctx, clientID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APICredential), args.Error(1)
}

func (m *MockCredentialRepo) GetActive(ctx context.Context, clientID uuid.UUID, platform string) (*model.APICredential, error) {
	args := m.Called(ctx, clientID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.APICredential), args.Error(1)
}

func (m *MockCredentialRepo) ListMeta(ctx context.Context, clientID uuid.UUID, platform string) ([]model.CredentialMeta, error) {
	args := m.Called(ctx, clientID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CredentialMeta), args.Error(1)
}

func (m *MockCredentialRepo) Delete(ctx context.Context, clientID uuid.UUID, platform string) error {
	args := m.Called(ctx, clientID, platform)
	return args.Error(0)
}

type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) InsertBatch(ctx context.Context, rows []model.AnalyticsMetric) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockAnalyticsRepo) ListByClient(ctx context.Context, clientID uuid.UUID, platform string, since time.Time, limit int) ([]model.AnalyticsMetric, error) {
	args := m.Called(ctx, clientID, platform, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AnalyticsMetric), args.Error(1)
}

type MockContentRepo struct {
	mock.Mock
}

func (m *MockContentRepo) Create(ctx context.Context, c *model.GeneratedContent) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContentRepo) ListByClient(ctx context.Context, clientID uuid.UUID, contentType string, limit int) ([]model.GeneratedContent, error) {
	args := m.Called(ctx, clientID, contentType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GeneratedContent), args.Error(1)
}
