package payment

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound covers a missing job, an already paid job and a job whose
	// contract belongs to another client. Callers must not tell them apart.
	ErrNotFound          = errors.New("payable job not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// PayableJob is an unpaid job as seen from inside a payment transaction,
// with the contractor resolved from its contract in the same transaction.
type PayableJob struct {
	ID           uuid.UUID
	ContractID   uuid.UUID
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	Price        decimal.Decimal
}
