package balance_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gigledger/internal/balance"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

func TestService_Deposit(t *testing.T) {
	clientID := uuid.New()
	client := &profile.Profile{ID: clientID, Role: profile.RoleClient, Balance: decimal.NewFromInt(10)}

	type testCase struct {
		name      string
		amount    string
		setupMock func(repo *balance.MockRepository, tx *balance.MockTx)
		wantErr   error
		wantAny   bool
	}

	// expectGuard wires the reads that precede the limit check.
	expectGuard := func(repo *balance.MockRepository, tx *balance.MockTx, unpaid string) {
		repo.EXPECT().BeginDeposit(gomock.Any()).Return(tx, nil)
		tx.EXPECT().FindClient(gomock.Any(), clientID).Return(client, nil)
		tx.EXPECT().SumUnpaidJobPrices(gomock.Any(), clientID).Return(decimal.RequireFromString(unpaid), nil)
		tx.EXPECT().Rollback().Return(nil)
	}

	tests := []testCase{
		{
			name:   "AtLimit",
			amount: "25",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "100")
				tx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).Return(decimal.NewFromInt(35), nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:   "OverLimit",
			amount: "26",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "100")
			},
			wantErr: balance.ErrOverLimit,
		},
		{
			name:   "OverLimitByOneCent",
			amount: "2.51",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "10")
			},
			wantErr: balance.ErrOverLimit,
		},
		{
			name:   "NoUnpaidJobsAcceptsAnyAmount",
			amount: "1000000",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "0")
				tx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).Return(decimal.NewFromInt(1000010), nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:      "ZeroAmount",
			amount:    "0",
			setupMock: func(_ *balance.MockRepository, _ *balance.MockTx) {},
			wantErr:   balance.ErrInvalidAmount,
		},
		{
			name:      "NegativeAmount",
			amount:    "-5",
			setupMock: func(_ *balance.MockRepository, _ *balance.MockTx) {},
			wantErr:   balance.ErrInvalidAmount,
		},
		{
			name:      "SubCentAmount",
			amount:    "10.005",
			setupMock: func(_ *balance.MockRepository, _ *balance.MockTx) {},
			wantErr:   balance.ErrInvalidAmount,
		},
		{
			name:      "BelowOneCent",
			amount:    "0.004",
			setupMock: func(_ *balance.MockRepository, _ *balance.MockTx) {},
			wantErr:   balance.ErrInvalidAmount,
		},
		{
			name:      "BeyondColumnRange",
			amount:    "1e12",
			setupMock: func(_ *balance.MockRepository, _ *balance.MockTx) {},
			wantErr:   balance.ErrInvalidAmount,
		},
		{
			name:   "TrailingZerosAccepted",
			amount: "2.5000",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "10")
				tx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).Return(decimal.RequireFromString("12.50"), nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:   "LargestStorableAmount",
			amount: "9999999999.99",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "0")
				tx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).Return(decimal.RequireFromString("9999999999.99"), nil)
				tx.EXPECT().Commit().Return(nil)
			},
		},
		{
			name:   "NotAClient",
			amount: "5",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				repo.EXPECT().BeginDeposit(gomock.Any()).Return(tx, nil)
				tx.EXPECT().FindClient(gomock.Any(), clientID).Return(nil, balance.ErrNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: balance.ErrNotFound,
		},
		{
			name:   "ApplyError",
			amount: "5",
			setupMock: func(repo *balance.MockRepository, tx *balance.MockTx) {
				expectGuard(repo, tx, "100")
				tx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).
					Return(decimal.Zero, errors.New("db error"))
			},
			wantAny: true,
		},
		{
			name:   "BeginError",
			amount: "5",
			setupMock: func(repo *balance.MockRepository, _ *balance.MockTx) {
				repo.EXPECT().BeginDeposit(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantAny: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := balance.NewMockRepository(ctrl)
			tx := balance.NewMockTx(ctrl)
			tt.setupMock(repo, tx)

			svc := balance.NewService(repo)
			got, err := svc.Deposit(context.Background(), clientID, decimal.RequireFromString(tt.amount))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			if tt.wantAny {
				require.Error(t, err)
				assert.NotErrorIs(t, err, balance.ErrOverLimit)

				return
			}

			require.NoError(t, err)
			assert.True(t, got.IsPositive())
		})
	}
}
