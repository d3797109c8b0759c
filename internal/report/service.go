package report

import (
	"context"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	TopProfessions(ctx context.Context, r Range, limit int) ([]ProfessionEarnings, error)
	TopClients(ctx context.Context, r Range, limit int) ([]ClientSpending, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BestProfession returns the contractor profession that earned the most
// from jobs paid within the range.
func (s *Service) BestProfession(ctx context.Context, r Range) (*ProfessionEarnings, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	top, err := s.repo.TopProfessions(ctx, r, 1)
	if err != nil {
		return nil, err
	}

	if len(top) == 0 {
		return nil, ErrNoData
	}

	return &top[0], nil
}

// BestClients returns the clients that paid the most within the range.
// A zero limit selects DefaultClientLimit.
func (s *Service) BestClients(ctx context.Context, r Range, limit int) ([]ClientSpending, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	if limit == 0 {
		limit = DefaultClientLimit
	}

	if limit < 0 || limit > MaxClientLimit {
		return nil, ErrInvalidLimit
	}

	return s.repo.TopClients(ctx, r, limit)
}
