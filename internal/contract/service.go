package contract

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=contract
type Repository interface {
	GetContractForProfile(ctx context.Context, id, profileID uuid.UUID) (*Contract, error)
	ListContracts(ctx context.Context, filter ListFilter) ([]*Contract, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListFilter narrows contracts to those involving ProfileID.
// Statuses in ExcludeStatuses are left out.
type ListFilter struct {
	ProfileID       uuid.UUID
	ExcludeStatuses []Status
}

// Get returns the contract only if the profile is a party to it. A contract
// owned by someone else yields ErrNotFound, same as a missing one.
func (s *Service) Get(ctx context.Context, id, profileID uuid.UUID) (*Contract, error) {
	return s.repo.GetContractForProfile(ctx, id, profileID)
}

// ListActive returns the profile's contracts that are not terminated.
func (s *Service) ListActive(ctx context.Context, profileID uuid.UUID) ([]*Contract, error) {
	return s.repo.ListContracts(ctx, ListFilter{
		ProfileID:       profileID,
		ExcludeStatuses: []Status{StatusTerminated},
	})
}
