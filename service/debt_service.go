package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"debt-planner/domain"
	"debt-planner/repository"
)

// DebtService manages the stored debts that feed ProjectForUser.
type DebtService struct {
	repo repository.DebtRepository
	now  func() time.Time
}

func NewDebtService(repo repository.DebtRepository) *DebtService {
	return &DebtService{repo: repo, now: time.Now}
}

// Create assigns an ID and creation time and stores the debt. A missing
// initial balance defaults to the current balance.
func (s *DebtService) Create(ctx context.Context, userID string, debt domain.Debt) (domain.Debt, error) {
	var errs ValidationErrors
	if userID == "" {
		errs.add("user_id", "usuario requerido")
	}
	if debt.Name == "" {
		errs.add("name", "nombre de deuda no puede estar vacío")
	}
	if !debt.CurrentBalance.IsPositive() {
		errs.add("current_balance", "monto de deuda inválido")
	}
	validateDebtAmounts(&errs, "debt", debt)
	if err := errs.err(); err != nil {
		return domain.Debt{}, err
	}

	if debt.ID == "" {
		debt.ID = uuid.NewString()
	}
	if debt.Kind == "" {
		debt.Kind = domain.KindOther
	}
	if !debt.InitialBalance.IsPositive() {
		debt.InitialBalance = debt.CurrentBalance
	}
	debt.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, userID, debt); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Debt{}, &ValidationError{Field: "id", Message: "id de deuda duplicado: " + debt.ID}
		}
		return domain.Debt{}, errors.Wrap(err, "creating debt")
	}
	return debt, nil
}

func (s *DebtService) List(ctx context.Context, userID string) ([]domain.Debt, error) {
	debts, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "listing debts")
	}
	return debts, nil
}

// Archive removes the debt from future projections without deleting it.
func (s *DebtService) Archive(ctx context.Context, userID, debtID string) error {
	err := s.repo.SetArchived(ctx, userID, debtID, true)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDebtNotFound
	}
	return errors.Wrap(err, "archiving debt")
}
