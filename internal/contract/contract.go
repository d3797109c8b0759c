package contract

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("contract not found")

// Status represents the lifecycle state of a contract.
type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in_progress"
	StatusTerminated Status = "terminated"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusTerminated:
		return true
	}

	return false
}

// Contract binds one client profile to one contractor profile.
type Contract struct {
	ID           uuid.UUID
	Terms        string
	Status       Status
	ClientID     uuid.UUID
	ContractorID uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Involves reports whether the profile is either party of the contract.
func (c *Contract) Involves(profileID uuid.UUID) bool {
	return c.ClientID == profileID || c.ContractorID == profileID
}
