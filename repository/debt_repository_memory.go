package repository

import (
	"context"
	"sort"
	"sync"

	"debt-planner/domain"
)

// DebtRepositoryMemory is an in-memory implementation of DebtRepository.
type DebtRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]map[string]domain.Debt // userID -> debtID -> debt
}

// NewDebtRepositoryMemory creates a new in-memory debt repository.
func NewDebtRepositoryMemory() *DebtRepositoryMemory {
	return &DebtRepositoryMemory{
		data: make(map[string]map[string]domain.Debt),
	}
}

// List returns the user's debts ordered by creation time, then ID.
func (r *DebtRepositoryMemory) List(ctx context.Context, userID string) ([]domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Debt, 0, len(r.data[userID]))
	for _, d := range r.data[userID] {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *DebtRepositoryMemory) Get(ctx context.Context, userID, debtID string) (domain.Debt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.data[userID][debtID]
	if !ok {
		return domain.Debt{}, ErrNotFound
	}
	return d, nil
}

// Create stores the debt.
func (r *DebtRepositoryMemory) Create(ctx context.Context, userID string, debt domain.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	debts, ok := r.data[userID]
	if !ok {
		debts = make(map[string]domain.Debt)
		r.data[userID] = debts
	}
	if _, exists := debts[debt.ID]; exists {
		return ErrDuplicate
	}
	debts[debt.ID] = debt
	return nil
}

func (r *DebtRepositoryMemory) SetArchived(ctx context.Context, userID, debtID string, archived bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.data[userID][debtID]
	if !ok {
		return ErrNotFound
	}
	d.IsArchived = archived
	r.data[userID][debtID] = d
	return nil
}
