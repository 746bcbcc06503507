package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"debt-planner/domain"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) List(ctx context.Context, userID string) ([]domain.Debt, error) {
	args := m.Called(ctx, userID)
	debts, _ := args.Get(0).([]domain.Debt)
	return debts, args.Error(1)
}

func (m *MockDebtRepository) Get(ctx context.Context, userID, debtID string) (domain.Debt, error) {
	args := m.Called(ctx, userID, debtID)
	return args.Get(0).(domain.Debt), args.Error(1)
}

func (m *MockDebtRepository) Create(ctx context.Context, userID string, debt domain.Debt) error {
	args := m.Called(ctx, userID, debt)
	return args.Error(0)
}

func (m *MockDebtRepository) SetArchived(ctx context.Context, userID, debtID string, archived bool) error {
	args := m.Called(ctx, userID, debtID, archived)
	return args.Error(0)
}

// stubAdvisor records how often advice was requested.
type stubAdvisor struct {
	calls int
}

func (a *stubAdvisor) Advise(ctx context.Context, p domain.DebtProjection) string {
	a.calls++
	return "advice for " + string(p.Strategy)
}
