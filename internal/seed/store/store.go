package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
	"github.com/MrJamesThe3rd/gigledger/internal/seed"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type loadTx struct {
	tx *sql.Tx
}

func (s *Store) BeginLoad(ctx context.Context) (seed.LoadTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning load tx: %w", err)
	}

	return &loadTx{tx: dbTx}, nil
}

func (ltx *loadTx) Commit() error   { return ltx.tx.Commit() }
func (ltx *loadTx) Rollback() error { return ltx.tx.Rollback() }

func (ltx *loadTx) Truncate(ctx context.Context) error {
	if _, err := ltx.tx.ExecContext(ctx, "TRUNCATE jobs, contracts, profiles"); err != nil {
		return fmt.Errorf("truncating tables: %w", err)
	}

	return nil
}

func (ltx *loadTx) InsertProfiles(ctx context.Context, profiles []*profile.Profile) error {
	query := `
		INSERT INTO profiles (id, first_name, last_name, profession, balance, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	for _, p := range profiles {
		err := ltx.tx.QueryRowContext(ctx, query,
			p.ID, p.FirstName, p.LastName, p.Profession, p.Balance, p.Role,
		).Scan(&p.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting profile %s: %w", p.ID, err)
		}
	}

	return nil
}

func (ltx *loadTx) InsertContracts(ctx context.Context, contracts []*contract.Contract) error {
	query := `
		INSERT INTO contracts (id, terms, status, client_id, contractor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	for _, c := range contracts {
		err := ltx.tx.QueryRowContext(ctx, query,
			c.ID, c.Terms, c.Status, c.ClientID, c.ContractorID,
		).Scan(&c.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting contract %s: %w", c.ID, err)
		}
	}

	return nil
}

func (ltx *loadTx) InsertJobs(ctx context.Context, jobs []*job.Job) error {
	query := `
		INSERT INTO jobs (id, contract_id, description, price, paid, payment_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	for _, j := range jobs {
		err := ltx.tx.QueryRowContext(ctx, query,
			j.ID, j.ContractID, j.Description, j.Price, j.Paid, j.PaymentDate,
		).Scan(&j.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting job %s: %w", j.ID, err)
		}
	}

	return nil
}
