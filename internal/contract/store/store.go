package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectContractColumns = `c.id, c.terms, c.status, c.client_id, c.contractor_id, c.created_at, c.updated_at`

func scanContract(s scanner) (*contract.Contract, error) {
	var (
		c      contract.Contract
		status string
	)

	if err := s.Scan(&c.ID, &c.Terms, &status, &c.ClientID, &c.ContractorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Status = contract.Status(status)

	return &c, nil
}

func (s *Store) GetContractForProfile(ctx context.Context, id, profileID uuid.UUID) (*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		WHERE c.id = $1 AND (c.client_id = $2 OR c.contractor_id = $2)`

	c, err := scanContract(s.db.QueryRowContext(ctx, query, id, profileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrNotFound
		}

		return nil, fmt.Errorf("getting contract: %w", err)
	}

	return c, nil
}

func (s *Store) ListContracts(ctx context.Context, filter contract.ListFilter) ([]*contract.Contract, error) {
	query := `SELECT ` + selectContractColumns + `
		FROM contracts c
		WHERE (c.client_id = $1 OR c.contractor_id = $1)`

	args := []any{filter.ProfileID}

	if len(filter.ExcludeStatuses) > 0 {
		excluded := make([]string, len(filter.ExcludeStatuses))
		for i, st := range filter.ExcludeStatuses {
			excluded[i] = string(st)
		}

		query += " AND NOT (c.status = ANY($2))"

		args = append(args, excluded)
	}

	query += " ORDER BY c.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*contract.Contract

	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract: %w", err)
		}

		contracts = append(contracts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contract rows: %w", err)
	}

	return contracts, nil
}
