package profile

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("profile not found")

// Role distinguishes the paying side of a contract from the working side.
type Role string

const (
	RoleClient     Role = "client"
	RoleContractor Role = "contractor"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleContractor
}

// Profile is a marketplace party holding a balance.
type Profile struct {
	ID         uuid.UUID
	FirstName  string
	LastName   string
	Profession string
	Balance    decimal.Decimal
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// FullName is the display name used by reports.
func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
