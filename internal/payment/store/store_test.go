package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/gigledger/internal/database/dbtest"
	"github.com/MrJamesThe3rd/gigledger/internal/payment"
	"github.com/MrJamesThe3rd/gigledger/internal/payment/store"
)

func assertBalance(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestPay_MovesFunds(t *testing.T) {
	db := dbtest.Open(t)
	l := dbtest.NewLedger(t, db, "100", "0")
	j := l.AddJob(t, db, "60", false)

	svc := payment.NewService(store.New(db))

	receipt, err := svc.Pay(context.Background(), j.ID, l.Client.ID)
	require.NoError(t, err)
	assertBalance(t, "60", receipt.Amount)

	assertBalance(t, "40", dbtest.Balance(t, db, l.Client.ID))
	assertBalance(t, "60", dbtest.Balance(t, db, l.Contractor.ID))

	var paid bool
	require.NoError(t, db.QueryRow(`SELECT paid FROM jobs WHERE id = $1 AND payment_date IS NOT NULL`, j.ID).Scan(&paid))
	assert.True(t, paid)

	_, err = svc.Pay(context.Background(), j.ID, l.Client.ID)
	assert.ErrorIs(t, err, payment.ErrNotFound)
	assertBalance(t, "40", dbtest.Balance(t, db, l.Client.ID))
}

func TestPay_InsufficientFundsChangesNothing(t *testing.T) {
	db := dbtest.Open(t)
	l := dbtest.NewLedger(t, db, "50", "0")
	j := l.AddJob(t, db, "60", false)

	svc := payment.NewService(store.New(db))

	_, err := svc.Pay(context.Background(), j.ID, l.Client.ID)
	assert.ErrorIs(t, err, payment.ErrInsufficientFunds)

	assertBalance(t, "50", dbtest.Balance(t, db, l.Client.ID))
	assertBalance(t, "0", dbtest.Balance(t, db, l.Contractor.ID))
}

func TestPay_OnlyTheContractClientCanPay(t *testing.T) {
	db := dbtest.Open(t)
	l := dbtest.NewLedger(t, db, "100", "0")
	j := l.AddJob(t, db, "60", false)

	svc := payment.NewService(store.New(db))

	_, err := svc.Pay(context.Background(), j.ID, l.Contractor.ID)
	assert.ErrorIs(t, err, payment.ErrNotFound)

	_, err = svc.Pay(context.Background(), uuid.New(), l.Client.ID)
	assert.ErrorIs(t, err, payment.ErrNotFound)
}

func TestPay_ConcurrentPaymentsSettleOnce(t *testing.T) {
	db := dbtest.Open(t)
	l := dbtest.NewLedger(t, db, "1000", "0")
	j := l.AddJob(t, db, "60", false)

	svc := payment.NewService(store.New(db))

	const attempts = 10

	var succeeded, rejected atomic.Int32

	var g errgroup.Group
	for range attempts {
		g.Go(func() error {
			_, err := svc.Pay(context.Background(), j.ID, l.Client.ID)

			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, payment.ErrNotFound):
				rejected.Add(1)
			default:
				return err
			}

			return nil
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(attempts-1), rejected.Load())

	assertBalance(t, "940", dbtest.Balance(t, db, l.Client.ID))
	assertBalance(t, "60", dbtest.Balance(t, db, l.Contractor.ID))
}

func TestPay_ConcurrentJobsConserveMoney(t *testing.T) {
	db := dbtest.Open(t)
	l := dbtest.NewLedger(t, db, "100", "0")

	// Five jobs of 30 against a balance of 100: exactly three can be paid.
	jobIDs := make([]uuid.UUID, 5)
	for i := range jobIDs {
		jobIDs[i] = l.AddJob(t, db, "30", false).ID
	}

	svc := payment.NewService(store.New(db))

	var succeeded atomic.Int32

	var g errgroup.Group
	for _, id := range jobIDs {
		g.Go(func() error {
			_, err := svc.Pay(context.Background(), id, l.Client.ID)
			if err == nil {
				succeeded.Add(1)
				return nil
			}

			if errors.Is(err, payment.ErrInsufficientFunds) {
				return nil
			}

			return err
		})
	}

	require.NoError(t, g.Wait())
	assert.Equal(t, int32(3), succeeded.Load())

	client := dbtest.Balance(t, db, l.Client.ID)
	contractor := dbtest.Balance(t, db, l.Contractor.ID)

	assertBalance(t, "10", client)
	assertBalance(t, "90", contractor)
	assertBalance(t, "100", client.Add(contractor))
}
