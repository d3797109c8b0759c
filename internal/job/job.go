package job

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Job is a billable unit of work under a contract. It moves from unpaid to
// paid exactly once; PaymentDate is set only for paid jobs.
type Job struct {
	ID          uuid.UUID
	ContractID  uuid.UUID
	Description string
	Price       decimal.Decimal
	Paid        bool
	PaymentDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
