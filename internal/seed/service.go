package seed

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=seed
type Repository interface {
	BeginLoad(ctx context.Context) (LoadTx, error)
}

type LoadTx interface {
	Truncate(ctx context.Context) error
	InsertProfiles(ctx context.Context, profiles []*profile.Profile) error
	InsertContracts(ctx context.Context, contracts []*contract.Contract) error
	InsertJobs(ctx context.Context, jobs []*job.Job) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type LoadOptions struct {
	// Reset empties the ledger before loading.
	Reset bool
}

// Load writes the fixtures in one transaction; either everything lands or
// nothing does.
func (s *Service) Load(ctx context.Context, f *Fixtures, opts LoadOptions) error {
	if err := Validate(f); err != nil {
		return fmt.Errorf("validate fixtures: %w", err)
	}

	tx, err := s.repo.BeginLoad(ctx)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	if opts.Reset {
		if err := tx.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate: %w", err)
		}
	}

	if err := tx.InsertProfiles(ctx, f.Profiles); err != nil {
		return fmt.Errorf("insert profiles: %w", err)
	}

	if err := tx.InsertContracts(ctx, f.Contracts); err != nil {
		return fmt.Errorf("insert contracts: %w", err)
	}

	if err := tx.InsertJobs(ctx, f.Jobs); err != nil {
		return fmt.Errorf("insert jobs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}

	return nil
}
