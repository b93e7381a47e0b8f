package catering_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vasiliy-maslov/catering-service/internal/notify"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) ListCustomers(ctx context.Context) ([]square.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]square.Customer), args.Error(1)
}

func (m *MockPlatform) CreateCustomer(ctx context.Context, in square.CreateCustomerRequest) (*square.Customer, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*square.Customer), args.Error(1)
}

func (m *MockPlatform) UpdateCustomer(ctx context.Context, id string, in square.UpdateCustomerRequest) (*square.Customer, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*square.Customer), args.Error(1)
}

func (m *MockPlatform) CreateOrder(ctx context.Context, in square.CreateOrderRequest) (*square.Order, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*square.Order), args.Error(1)
}

func (m *MockPlatform) CreateInvoice(ctx context.Context, in square.CreateInvoiceRequest) (*square.Invoice, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*square.Invoice), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyInvoiceCreated(ctx context.Context, in notify.InvoiceCreated) notify.Result {
	args := m.Called(ctx, in)
	return args.Get(0).(notify.Result)
}
