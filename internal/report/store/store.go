package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/gigledger/internal/report"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) TopProfessions(ctx context.Context, r report.Range, limit int) ([]report.ProfessionEarnings, error) {
	query := `
		SELECT p.profession, SUM(j.price) AS paid
		FROM jobs j
		INNER JOIN contracts c ON c.id = j.contract_id
		INNER JOIN profiles p ON p.id = c.contractor_id
		WHERE j.paid = true AND j.payment_date >= $1 AND j.payment_date <= $2
		GROUP BY p.profession
		ORDER BY paid DESC, p.profession ASC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, r.Start, r.End, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top professions: %w", err)
	}
	defer rows.Close()

	var out []report.ProfessionEarnings

	for rows.Next() {
		var pe report.ProfessionEarnings
		if err := rows.Scan(&pe.Profession, &pe.Paid); err != nil {
			return nil, fmt.Errorf("scanning profession earnings: %w", err)
		}

		out = append(out, pe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profession rows: %w", err)
	}

	return out, nil
}

func (s *Store) TopClients(ctx context.Context, r report.Range, limit int) ([]report.ClientSpending, error) {
	query := `
		SELECT p.id, p.first_name || ' ' || p.last_name AS full_name, SUM(j.price) AS paid
		FROM jobs j
		INNER JOIN contracts c ON c.id = j.contract_id
		INNER JOIN profiles p ON p.id = c.client_id
		WHERE j.paid = true AND j.payment_date >= $1 AND j.payment_date <= $2
		GROUP BY p.id, p.first_name, p.last_name
		ORDER BY paid DESC, full_name ASC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, r.Start, r.End, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top clients: %w", err)
	}
	defer rows.Close()

	var out []report.ClientSpending

	for rows.Next() {
		var cs report.ClientSpending
		if err := rows.Scan(&cs.ClientID, &cs.FullName, &cs.Paid); err != nil {
			return nil, fmt.Errorf("scanning client spending: %w", err)
		}

		out = append(out, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client rows: %w", err)
	}

	return out, nil
}
