package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=payment
type Repository interface {
	BeginPayment(ctx context.Context) (Tx, error)
}

// Tx is a single payment transaction. Reads lock the rows they return until
// Commit or Rollback.
type Tx interface {
	FindPayableJob(ctx context.Context, jobID, clientID uuid.UUID) (*PayableJob, error)
	GetProfileBalance(ctx context.Context, profileID uuid.UUID) (decimal.Decimal, error)
	ApplyPayment(ctx context.Context, jobID, clientID, contractorID uuid.UUID, amount decimal.Decimal, paidAt time.Time) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Receipt describes a completed transfer.
type Receipt struct {
	JobID        uuid.UUID
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Amount       decimal.Decimal
	PaidAt       time.Time
}

// Pay moves the job's price from the client's balance to the contractor's
// balance and marks the job paid, all in one transaction. It returns
// ErrNotFound when the client cannot pay this job and ErrInsufficientFunds
// when the balance does not cover the price; neither writes anything.
func (s *Service) Pay(ctx context.Context, jobID, clientID uuid.UUID) (*Receipt, error) {
	tx, err := s.repo.BeginPayment(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	j, err := tx.FindPayableJob(ctx, jobID, clientID)
	if err != nil {
		return nil, fmt.Errorf("find payable job: %w", err)
	}

	balance, err := tx.GetProfileBalance(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("get client balance: %w", err)
	}

	if j.Price.GreaterThan(balance) {
		return nil, ErrInsufficientFunds
	}

	paidAt := s.now().UTC()

	if err := tx.ApplyPayment(ctx, j.ID, clientID, j.ContractorID, j.Price, paidAt); err != nil {
		return nil, fmt.Errorf("apply payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return &Receipt{
		JobID:        j.ID,
		ClientID:     clientID,
		ContractorID: j.ContractorID,
		Amount:       j.Price,
		PaidAt:       paidAt,
	}, nil
}
