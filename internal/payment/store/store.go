package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/payment"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type paymentTx struct {
	tx *sql.Tx
}

// BeginPayment opens a READ COMMITTED transaction. Serialisation of
// concurrent payments comes from the row locks taken by the reads.
func (s *Store) BeginPayment(ctx context.Context) (payment.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}

	return &paymentTx{tx: dbTx}, nil
}

func (ptx *paymentTx) Commit() error   { return ptx.tx.Commit() }
func (ptx *paymentTx) Rollback() error { return ptx.tx.Rollback() }

// FindPayableJob locks the job row. A concurrent payment for the same job
// waits here and, once the first commits, sees paid = true and gets no row.
func (ptx *paymentTx) FindPayableJob(ctx context.Context, jobID, clientID uuid.UUID) (*payment.PayableJob, error) {
	query := `
		SELECT j.id, j.contract_id, c.client_id, c.contractor_id, j.price
		FROM jobs j
		INNER JOIN contracts c ON c.id = j.contract_id
		WHERE j.id = $1 AND j.paid = false AND c.client_id = $2
		FOR UPDATE OF j
	`

	var j payment.PayableJob

	err := ptx.tx.QueryRowContext(ctx, query, jobID, clientID).Scan(
		&j.ID, &j.ContractID, &j.ClientID, &j.ContractorID, &j.Price,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrNotFound
		}

		return nil, fmt.Errorf("finding payable job: %w", err)
	}

	return &j, nil
}

func (ptx *paymentTx) GetProfileBalance(ctx context.Context, profileID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT balance FROM profiles WHERE id = $1 FOR UPDATE`

	var balance decimal.Decimal

	if err := ptx.tx.QueryRowContext(ctx, query, profileID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, profile.ErrNotFound
		}

		return decimal.Zero, fmt.Errorf("getting profile balance: %w", err)
	}

	return balance, nil
}

func (ptx *paymentTx) ApplyPayment(
	ctx context.Context,
	jobID, clientID, contractorID uuid.UUID,
	amount decimal.Decimal,
	paidAt time.Time,
) error {
	markPaid := `
		UPDATE jobs
		SET paid = true, payment_date = $2, updated_at = NOW()
		WHERE id = $1 AND paid = false
	`
	if err := execOne(ctx, ptx.tx, markPaid, jobID, paidAt); err != nil {
		return fmt.Errorf("marking job paid: %w", err)
	}

	debit := `
		UPDATE profiles
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND role = 'client'
	`
	if err := execOne(ctx, ptx.tx, debit, clientID, amount); err != nil {
		return fmt.Errorf("debiting client: %w", err)
	}

	credit := `
		UPDATE profiles
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1 AND role = 'contractor'
	`
	if err := execOne(ctx, ptx.tx, credit, contractorID, amount); err != nil {
		return fmt.Errorf("crediting contractor: %w", err)
	}

	return nil
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, tx *sql.Tx, query string, args ...any) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n != 1 {
		return fmt.Errorf("expected 1 row affected, got %d", n)
	}

	return nil
}
