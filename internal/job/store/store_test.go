package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	"github.com/MrJamesThe3rd/gigledger/internal/database/dbtest"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/job/store"
	"github.com/MrJamesThe3rd/gigledger/internal/seed"
)

func TestListUnpaidJobs(t *testing.T) {
	db := dbtest.Open(t)
	l := dbtest.NewLedger(t, db, "0", "0")

	unpaid := l.AddJob(t, db, "10", false)
	l.AddJob(t, db, "20", true)

	newContract := &contract.Contract{
		ID:           uuid.New(),
		Terms:        "not started",
		Status:       contract.StatusNew,
		ClientID:     l.Client.ID,
		ContractorID: l.Contractor.ID,
	}
	dbtest.Load(t, db, &seed.Fixtures{
		Contracts: []*contract.Contract{newContract},
		Jobs: []*job.Job{{
			ID:          uuid.New(),
			ContractID:  newContract.ID,
			Description: "pending",
			Price:       unpaid.Price,
		}},
	})

	other := dbtest.NewLedger(t, db, "0", "0")
	other.AddJob(t, db, "30", false)

	svc := job.NewService(store.New(db))

	for _, id := range []uuid.UUID{l.Client.ID, l.Contractor.ID} {
		jobs, err := svc.ListUnpaid(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, unpaid.ID, jobs[0].ID)
		assert.False(t, jobs[0].Paid)
	}

	jobs, err := svc.ListUnpaid(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, jobs)
}
