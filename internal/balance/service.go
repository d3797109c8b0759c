package balance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=balance
type Repository interface {
	BeginDeposit(ctx context.Context) (Tx, error)
}

// Tx is a single deposit transaction. FindClient locks the client row so
// deposits to the same client are applied one at a time.
type Tx interface {
	FindClient(ctx context.Context, clientID uuid.UUID) (*profile.Profile, error)
	SumUnpaidJobPrices(ctx context.Context, clientID uuid.UUID) (decimal.Decimal, error)
	ApplyDeposit(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Deposit credits amount to the client's balance and returns the new
// balance. The amount may not exceed a quarter of the client's unpaid job
// total at the time of the call.
func (s *Service) Deposit(ctx context.Context, clientID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}

	tx, err := s.repo.BeginDeposit(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("begin deposit: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.FindClient(ctx, clientID); err != nil {
		return decimal.Zero, fmt.Errorf("find client: %w", err)
	}

	total, err := tx.SumUnpaidJobPrices(ctx, clientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum unpaid jobs: %w", err)
	}

	if exceedsLimit(amount, total) {
		return decimal.Zero, ErrOverLimit
	}

	newBalance, err := tx.ApplyDeposit(ctx, clientID, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("apply deposit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, fmt.Errorf("commit deposit: %w", err)
	}

	return newBalance, nil
}
