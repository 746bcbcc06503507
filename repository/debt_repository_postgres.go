package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"debt-planner/domain"
)

const uniqueViolation = "23505"

const debtSchema = `
CREATE TABLE IF NOT EXISTS debts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL DEFAULT 'other',
  initial_balance NUMERIC(16,2) NOT NULL CHECK (initial_balance >= 0),
  current_balance NUMERIC(16,2) NOT NULL CHECK (current_balance >= 0),
  interest_rate_annual NUMERIC(9,4) NOT NULL CHECK (interest_rate_annual >= 0),
  minimum_payment NUMERIC(16,2) NOT NULL CHECK (minimum_payment >= 0),
  is_archived BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS debts_user_id_idx ON debts(user_id);
`

const debtColumns = `id, name, kind, initial_balance, current_balance, interest_rate_annual, minimum_payment, is_archived, created_at`

// DebtRepositoryPostgres stores debts in PostgreSQL.
type DebtRepositoryPostgres struct {
	db *sql.DB
}

// OpenPostgres opens a connection pool with the pq driver.
func OpenPostgres(dsn string, maxOpen int) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	return db, nil
}

func NewDebtRepositoryPostgres(db *sql.DB) *DebtRepositoryPostgres {
	return &DebtRepositoryPostgres{db: db}
}

// Migrate creates the debts table when missing.
func (r *DebtRepositoryPostgres) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, debtSchema)
	return errors.Wrap(err, "migrate debts")
}

func (r *DebtRepositoryPostgres) List(ctx context.Context, userID string) ([]domain.Debt, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+debtColumns+`
FROM debts
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list debts")
	}
	defer rows.Close()

	out := make([]domain.Debt, 0)
	for rows.Next() {
		d, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, errors.Wrap(rows.Err(), "list debts")
}

func (r *DebtRepositoryPostgres) Get(ctx context.Context, userID, debtID string) (domain.Debt, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT `+debtColumns+`
FROM debts WHERE id = $1 AND user_id = $2`, debtID, userID)
	d, err := scanDebt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Debt{}, ErrNotFound
	}
	return d, err
}

func (r *DebtRepositoryPostgres) Create(ctx context.Context, userID string, d domain.Debt) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO debts (id, user_id, name, kind, initial_balance, current_balance, interest_rate_annual, minimum_payment, is_archived, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		d.ID, userID, d.Name, string(d.Kind), d.InitialBalance, d.CurrentBalance,
		d.InterestRateAnnual, d.MinimumPayment, d.IsArchived, d.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return errors.Wrap(err, "insert debt")
}

func (r *DebtRepositoryPostgres) SetArchived(ctx context.Context, userID, debtID string, archived bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE debts SET is_archived = $1 WHERE id = $2 AND user_id = $3`,
		archived, debtID, userID)
	if err != nil {
		return errors.Wrap(err, "archive debt")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "archive debt")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDebt(s rowScanner) (domain.Debt, error) {
	var d domain.Debt
	var kind string
	err := s.Scan(&d.ID, &d.Name, &kind, &d.InitialBalance, &d.CurrentBalance,
		&d.InterestRateAnnual, &d.MinimumPayment, &d.IsArchived, &d.CreatedAt)
	if err != nil {
		return domain.Debt{}, errors.WithStack(err)
	}
	d.Kind = domain.DebtKind(kind)
	return d, nil
}
