package seed

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

// Validate checks the invariants the ledger relies on. All problems are
// reported together.
func Validate(f *Fixtures) error {
	var errs []error

	profiles := make(map[uuid.UUID]*profile.Profile, len(f.Profiles))

	for _, p := range f.Profiles {
		if _, dup := profiles[p.ID]; dup {
			errs = append(errs, fmt.Errorf("profile %s: duplicate id", p.ID))
		}

		profiles[p.ID] = p

		if !p.Role.Valid() {
			errs = append(errs, fmt.Errorf("profile %s: unknown role %q", p.ID, p.Role))
		}

		if p.Balance.IsNegative() {
			errs = append(errs, fmt.Errorf("profile %s: negative balance", p.ID))
		}
	}

	contracts := make(map[uuid.UUID]*contract.Contract, len(f.Contracts))

	for _, c := range f.Contracts {
		if _, dup := contracts[c.ID]; dup {
			errs = append(errs, fmt.Errorf("contract %s: duplicate id", c.ID))
		}

		contracts[c.ID] = c

		if !c.Status.Valid() {
			errs = append(errs, fmt.Errorf("contract %s: unknown status %q", c.ID, c.Status))
		}

		if c.ClientID == c.ContractorID {
			errs = append(errs, fmt.Errorf("contract %s: client and contractor are the same profile", c.ID))
		}

		if p, ok := profiles[c.ClientID]; !ok || p.Role != profile.RoleClient {
			errs = append(errs, fmt.Errorf("contract %s: client %s is not a client profile", c.ID, c.ClientID))
		}

		if p, ok := profiles[c.ContractorID]; !ok || p.Role != profile.RoleContractor {
			errs = append(errs, fmt.Errorf("contract %s: contractor %s is not a contractor profile", c.ID, c.ContractorID))
		}
	}

	seenJobs := make(map[uuid.UUID]struct{}, len(f.Jobs))

	for _, j := range f.Jobs {
		if _, dup := seenJobs[j.ID]; dup {
			errs = append(errs, fmt.Errorf("job %s: duplicate id", j.ID))
		}

		seenJobs[j.ID] = struct{}{}

		if _, ok := contracts[j.ContractID]; !ok {
			errs = append(errs, fmt.Errorf("job %s: unknown contract %s", j.ID, j.ContractID))
		}

		if !j.Price.IsPositive() {
			errs = append(errs, fmt.Errorf("job %s: price must be positive", j.ID))
		}

		if j.Paid != (j.PaymentDate != nil) {
			errs = append(errs, fmt.Errorf("job %s: payment date must be set exactly when paid", j.ID))
		}
	}

	return errors.Join(errs...)
}
