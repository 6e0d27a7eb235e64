package services

import (
	"context"

	"velodrive/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.ProductRow, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductRow), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, f models.ProductFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) GetByArticle(ctx context.Context, article string) (*models.ProductRow, error) {
	args := m.Called(ctx, article)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductRow), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, article string) error {
	args := m.Called(ctx, article)
	return args.Error(0)
}

func (m *MockProductRepository) MaxArticleNumber(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) List(ctx context.Context, q models.OrderQuery) ([]models.OrderListItem, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderListItem), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, f models.OrderFilter) (int, error) {
	args := m.Called(ctx, f)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*models.OrderListItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderListItem), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) MaxID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Categories(ctx context.Context) ([]models.LookupItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) Suppliers(ctx context.Context) ([]models.LookupItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) Manufacturers(ctx context.Context) ([]models.LookupItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.LookupItem), args.Error(1)
}

func (m *MockLookupRepository) Statuses(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLookupRepository) PickupPoints(ctx context.Context) ([]models.PickupPointLookupItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PickupPointLookupItem), args.Error(1)
}

func (m *MockLookupRepository) Users(ctx context.Context) ([]models.UserLookupItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserLookupItem), args.Error(1)
}

type MockLookupService struct {
	mock.Mock
}

func (m *MockLookupService) ProductLookups(ctx context.Context) (*models.ProductLookups, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductLookups), args.Error(1)
}

func (m *MockLookupService) OrderLookups(ctx context.Context) (*models.OrderLookups, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderLookups), args.Error(1)
}

func (m *MockLookupService) InvalidateOrderLookups(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockLookupService) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func strPtr(s string) *string {
	return &s
}
