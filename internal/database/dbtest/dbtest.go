// Package dbtest opens a migrated, empty Postgres database for integration
// tests. Tests are skipped unless GIGLEDGER_TEST_DATABASE_URL is set.
package dbtest

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/database"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
	"github.com/MrJamesThe3rd/gigledger/internal/seed"
	seedStore "github.com/MrJamesThe3rd/gigledger/internal/seed/store"
)

const EnvURL = "GIGLEDGER_TEST_DATABASE_URL"

// LockKey is the session advisory lock Open holds for the life of a test.
const LockKey int64 = 0x6769676c7473

// Open connects, applies the schema and empties every table. The tables are
// shared by every package, so Open holds LockKey on a dedicated connection
// until the test ends; tests from different packages run one at a time.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(EnvURL)
	if url == "" {
		t.Skipf("%s not set", EnvURL)
	}

	db, err := database.New(url)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()

	lockConn, err := db.Conn(ctx)
	require.NoError(t, err)

	_, err = lockConn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", LockKey)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = lockConn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", LockKey)
		_ = lockConn.Close()
	})

	require.NoError(t, database.Migrate(ctx, db))
	require.NoError(t, database.Reset(ctx, db))

	return db
}

// Ledger is a minimal marketplace: one client, one contractor and an
// in-progress contract between them.
type Ledger struct {
	Client     *profile.Profile
	Contractor *profile.Profile
	Contract   *contract.Contract
}

// NewLedger inserts a client and a contractor with the given balances and a
// contract between them.
func NewLedger(t *testing.T, db *sql.DB, clientBalance, contractorBalance string) *Ledger {
	t.Helper()

	l := &Ledger{
		Client: &profile.Profile{
			ID:         uuid.New(),
			FirstName:  "Harry",
			LastName:   "Potter",
			Profession: "Wizard",
			Balance:    decimal.RequireFromString(clientBalance),
			Role:       profile.RoleClient,
		},
		Contractor: &profile.Profile{
			ID:         uuid.New(),
			FirstName:  "Linus",
			LastName:   "Torvalds",
			Profession: "Programmer",
			Balance:    decimal.RequireFromString(contractorBalance),
			Role:       profile.RoleContractor,
		},
	}

	l.Contract = &contract.Contract{
		ID:           uuid.New(),
		Terms:        "bla bla bla",
		Status:       contract.StatusInProgress,
		ClientID:     l.Client.ID,
		ContractorID: l.Contractor.ID,
	}

	Load(t, db, &seed.Fixtures{
		Profiles:  []*profile.Profile{l.Client, l.Contractor},
		Contracts: []*contract.Contract{l.Contract},
	})

	return l
}

// AddJob inserts a job under the ledger's contract.
func (l *Ledger) AddJob(t *testing.T, db *sql.DB, price string, paid bool) *job.Job {
	t.Helper()

	j := &job.Job{
		ID:          uuid.New(),
		ContractID:  l.Contract.ID,
		Description: "work",
		Price:       decimal.RequireFromString(price),
		Paid:        paid,
	}

	if paid {
		at := time.Now().UTC()
		j.PaymentDate = &at
	}

	Load(t, db, &seed.Fixtures{Jobs: []*job.Job{j}})

	return j
}

// Load inserts fixtures without validating cross-file references, so that
// rows can be added to an existing ledger.
func Load(t *testing.T, db *sql.DB, f *seed.Fixtures) {
	t.Helper()

	ctx := context.Background()

	tx, err := seedStore.New(db).BeginLoad(ctx)
	require.NoError(t, err)

	defer func() { _ = tx.Rollback() }()

	require.NoError(t, tx.InsertProfiles(ctx, f.Profiles))
	require.NoError(t, tx.InsertContracts(ctx, f.Contracts))
	require.NoError(t, tx.InsertJobs(ctx, f.Jobs))
	require.NoError(t, tx.Commit())
}

// Balance reads a profile's current balance.
func Balance(t *testing.T, db *sql.DB, id uuid.UUID) decimal.Decimal {
	t.Helper()

	var bal decimal.Decimal
	require.NoError(t, db.QueryRow(`SELECT balance FROM profiles WHERE id = $1`, id).Scan(&bal))

	return bal
}
