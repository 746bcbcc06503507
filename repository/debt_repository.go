package repository

import (
	"context"

	"github.com/pkg/errors"

	"debt-planner/domain"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// DebtRepository supplies the stored debts of a user.
type DebtRepository interface {
	List(ctx context.Context, userID string) ([]domain.Debt, error)
	Get(ctx context.Context, userID, debtID string) (domain.Debt, error)
	Create(ctx context.Context, userID string, debt domain.Debt) error
	SetArchived(ctx context.Context, userID, debtID string, archived bool) error
}
