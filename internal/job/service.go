package job

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=job
type Repository interface {
	ListUnpaidJobs(ctx context.Context, profileID uuid.UUID) ([]*Job, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListUnpaid returns the unpaid jobs of in-progress contracts where the
// profile is either the client or the contractor.
func (s *Service) ListUnpaid(ctx context.Context, profileID uuid.UUID) ([]*Job, error) {
	return s.repo.ListUnpaidJobs(ctx, profileID)
}
