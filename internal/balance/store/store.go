package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/balance"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

// numericValueOutOfRange is raised when the credited balance no longer fits
// NUMERIC(12,2).
const numericValueOutOfRange = "22003"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type depositTx struct {
	tx *sql.Tx
}

func (s *Store) BeginDeposit(ctx context.Context) (balance.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("beginning deposit tx: %w", err)
	}

	return &depositTx{tx: dbTx}, nil
}

func (dtx *depositTx) Commit() error   { return dtx.tx.Commit() }
func (dtx *depositTx) Rollback() error { return dtx.tx.Rollback() }

func (dtx *depositTx) FindClient(ctx context.Context, clientID uuid.UUID) (*profile.Profile, error) {
	query := `
		SELECT id, first_name, last_name, profession, balance, role, created_at, updated_at
		FROM profiles
		WHERE id = $1 AND role = $2
		FOR UPDATE
	`

	var (
		p    profile.Profile
		role string
	)

	err := dtx.tx.QueryRowContext(ctx, query, clientID, profile.RoleClient).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Profession, &p.Balance, &role, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balance.ErrNotFound
		}

		return nil, fmt.Errorf("finding client: %w", err)
	}

	p.Role = profile.Role(role)

	return &p, nil
}

func (dtx *depositTx) SumUnpaidJobPrices(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(j.price), 0)
		FROM jobs j
		INNER JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = false AND c.client_id = $1
	`

	var total decimal.Decimal

	if err := dtx.tx.QueryRowContext(ctx, query, clientID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("summing unpaid jobs: %w", err)
	}

	return total, nil
}

func (dtx *depositTx) ApplyDeposit(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE profiles
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING balance
	`

	var newBalance decimal.Decimal

	if err := dtx.tx.QueryRowContext(ctx, query, clientID, amount).Scan(&newBalance); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == numericValueOutOfRange {
			return decimal.Zero, balance.ErrInvalidAmount
		}

		return decimal.Zero, fmt.Errorf("crediting client: %w", err)
	}

	return newBalance, nil
}
