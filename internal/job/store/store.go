package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListUnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]*job.Job, error) {
	query := `
		SELECT j.id, j.contract_id, j.description, j.price, j.paid, j.payment_date, j.created_at, j.updated_at
		FROM jobs j
		INNER JOIN contracts c ON c.id = j.contract_id
		WHERE j.paid = false
			AND c.status = $2
			AND (c.client_id = $1 OR c.contractor_id = $1)
		ORDER BY j.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, profileID, contract.StatusInProgress)
	if err != nil {
		return nil, fmt.Errorf("listing unpaid jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*job.Job

	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.ContractID, &j.Description, &j.Price, &j.Paid, &j.PaymentDate, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning job: %w", err)
		}

		jobs = append(jobs, &j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job rows: %w", err)
	}

	return jobs, nil
}
