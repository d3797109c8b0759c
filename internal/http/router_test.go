package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gigledger/internal/balance"
	"github.com/MrJamesThe3rd/gigledger/internal/contract"
	ledgerHttp "github.com/MrJamesThe3rd/gigledger/internal/http"
	adminHandler "github.com/MrJamesThe3rd/gigledger/internal/http/admin"
	balanceHandler "github.com/MrJamesThe3rd/gigledger/internal/http/balance"
	contractHandler "github.com/MrJamesThe3rd/gigledger/internal/http/contract"
	jobHandler "github.com/MrJamesThe3rd/gigledger/internal/http/job"
	"github.com/MrJamesThe3rd/gigledger/internal/http/middleware"
	"github.com/MrJamesThe3rd/gigledger/internal/job"
	"github.com/MrJamesThe3rd/gigledger/internal/payment"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
	"github.com/MrJamesThe3rd/gigledger/internal/report"
)

type mocks struct {
	profiles  *profile.MockRepository
	contracts *contract.MockRepository
	jobs      *job.MockRepository
	payments  *payment.MockRepository
	paymentTx *payment.MockTx
	balances  *balance.MockRepository
	depositTx *balance.MockTx
	reports   *report.MockRepository
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func newRouter(t *testing.T) (http.Handler, *mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &mocks{
		profiles:  profile.NewMockRepository(ctrl),
		contracts: contract.NewMockRepository(ctrl),
		jobs:      job.NewMockRepository(ctrl),
		payments:  payment.NewMockRepository(ctrl),
		paymentTx: payment.NewMockTx(ctrl),
		balances:  balance.NewMockRepository(ctrl),
		depositTx: balance.NewMockTx(ctrl),
		reports:   report.NewMockRepository(ctrl),
	}

	router := ledgerHttp.New(
		ledgerHttp.Options{
			Timeout:        5 * time.Second,
			AllowedOrigins: []string{"*"},
			Health:         pingerFunc(func(context.Context) error { return nil }),
		},
		profile.NewService(m.profiles),
		contractHandler.NewHandler(contract.NewService(m.contracts)),
		jobHandler.NewHandler(job.NewService(m.jobs), payment.NewService(m.payments)),
		balanceHandler.NewHandler(balance.NewService(m.balances)),
		adminHandler.NewHandler(report.NewService(m.reports)),
	)

	return router, m
}

func serve(router http.Handler, method, target, profileID, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	if profileID != "" {
		req.Header.Set(middleware.ProfileHeader, profileID)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestPayJob(t *testing.T) {
	client := &profile.Profile{ID: uuid.New(), Role: profile.RoleClient, Balance: decimal.NewFromInt(100)}
	jobID := uuid.New()
	payable := &payment.PayableJob{
		ID:           jobID,
		ClientID:     client.ID,
		ContractorID: uuid.New(),
		Price:        decimal.NewFromInt(60),
	}

	tests := []struct {
		name       string
		target     string
		setupMock  func(m *mocks)
		wantStatus int
	}{
		{
			name:   "Paid",
			target: "/jobs/" + jobID.String() + "/pay",
			setupMock: func(m *mocks) {
				m.payments.EXPECT().BeginPayment(gomock.Any()).Return(m.paymentTx, nil)
				m.paymentTx.EXPECT().FindPayableJob(gomock.Any(), jobID, client.ID).Return(payable, nil)
				m.paymentTx.EXPECT().GetProfileBalance(gomock.Any(), client.ID).Return(decimal.NewFromInt(100), nil)
				m.paymentTx.EXPECT().
					ApplyPayment(gomock.Any(), jobID, client.ID, payable.ContractorID, payable.Price, gomock.Any()).
					Return(nil)
				m.paymentTx.EXPECT().Commit().Return(nil)
				m.paymentTx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "InsufficientFunds",
			target: "/jobs/" + jobID.String() + "/pay",
			setupMock: func(m *mocks) {
				m.payments.EXPECT().BeginPayment(gomock.Any()).Return(m.paymentTx, nil)
				m.paymentTx.EXPECT().FindPayableJob(gomock.Any(), jobID, client.ID).Return(payable, nil)
				m.paymentTx.EXPECT().GetProfileBalance(gomock.Any(), client.ID).Return(decimal.NewFromInt(50), nil)
				m.paymentTx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "AlreadyPaid",
			target: "/jobs/" + jobID.String() + "/pay",
			setupMock: func(m *mocks) {
				m.payments.EXPECT().BeginPayment(gomock.Any()).Return(m.paymentTx, nil)
				m.paymentTx.EXPECT().FindPayableJob(gomock.Any(), jobID, client.ID).Return(nil, payment.ErrNotFound)
				m.paymentTx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "MalformedID",
			target:     "/jobs/42/pay",
			setupMock:  func(_ *mocks) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "StoreFailure",
			target: "/jobs/" + jobID.String() + "/pay",
			setupMock: func(m *mocks) {
				m.payments.EXPECT().BeginPayment(gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter(t)
			m.profiles.EXPECT().GetProfile(gomock.Any(), client.ID).Return(client, nil)
			tt.setupMock(m)

			rec := serve(router, http.MethodPost, tt.target, client.ID.String(), "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, rec.Body.String())
		})
	}
}

func TestPayJob_Unauthenticated(t *testing.T) {
	router, _ := newRouter(t)

	rec := serve(router, http.MethodPost, "/jobs/"+uuid.NewString()+"/pay", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeposit(t *testing.T) {
	clientID := uuid.New()
	client := &profile.Profile{ID: clientID, Role: profile.RoleClient}

	tests := []struct {
		name       string
		body       string
		setupMock  func(m *mocks)
		wantStatus int
	}{
		{
			name: "WithinLimit",
			body: `{"amount": 25}`,
			setupMock: func(m *mocks) {
				m.balances.EXPECT().BeginDeposit(gomock.Any()).Return(m.depositTx, nil)
				m.depositTx.EXPECT().FindClient(gomock.Any(), clientID).Return(client, nil)
				m.depositTx.EXPECT().SumUnpaidJobPrices(gomock.Any(), clientID).Return(decimal.NewFromInt(100), nil)
				m.depositTx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).Return(decimal.NewFromInt(25), nil)
				m.depositTx.EXPECT().Commit().Return(nil)
				m.depositTx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "OverLimit",
			body: `{"amount": 26}`,
			setupMock: func(m *mocks) {
				m.balances.EXPECT().BeginDeposit(gomock.Any()).Return(m.depositTx, nil)
				m.depositTx.EXPECT().FindClient(gomock.Any(), clientID).Return(client, nil)
				m.depositTx.EXPECT().SumUnpaidJobPrices(gomock.Any(), clientID).Return(decimal.NewFromInt(100), nil)
				m.depositTx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "NotAClient",
			body: `{"amount": 5}`,
			setupMock: func(m *mocks) {
				m.balances.EXPECT().BeginDeposit(gomock.Any()).Return(m.depositTx, nil)
				m.depositTx.EXPECT().FindClient(gomock.Any(), clientID).Return(nil, balance.ErrNotFound)
				m.depositTx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "NegativeAmount",
			body:       `{"amount": -5}`,
			setupMock:  func(_ *mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "SubCentAmount",
			body:       `{"amount": 10.005}`,
			setupMock:  func(_ *mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "AmountBeyondColumnRange",
			body:       `{"amount": 1e12}`,
			setupMock:  func(_ *mocks) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MalformedBody",
			body:       `{"amount": "lots"}`,
			setupMock:  func(_ *mocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newRouter(t)
			tt.setupMock(m)

			rec := serve(router, http.MethodPost, "/balances/deposit/"+clientID.String(), "", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{}`, rec.Body.String())
			}
		})
	}
}

func TestDeposit_WithoutContentType(t *testing.T) {
	router, m := newRouter(t)

	clientID := uuid.New()
	m.balances.EXPECT().BeginDeposit(gomock.Any()).Return(m.depositTx, nil)
	m.depositTx.EXPECT().FindClient(gomock.Any(), clientID).Return(&profile.Profile{ID: clientID, Role: profile.RoleClient}, nil)
	m.depositTx.EXPECT().SumUnpaidJobPrices(gomock.Any(), clientID).Return(decimal.NewFromInt(100), nil)
	m.depositTx.EXPECT().ApplyDeposit(gomock.Any(), clientID, gomock.Any()).Return(decimal.NewFromInt(10), nil)
	m.depositTx.EXPECT().Commit().Return(nil)
	m.depositTx.EXPECT().Rollback().Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/balances/deposit/"+clientID.String(), strings.NewReader(`{"amount": 10}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPayJob_ProfileLookupFailure(t *testing.T) {
	router, m := newRouter(t)

	callerID := uuid.New()
	m.profiles.EXPECT().GetProfile(gomock.Any(), callerID).Return(nil, errors.New("connection refused"))

	rec := serve(router, http.MethodPost, "/jobs/"+uuid.NewString()+"/pay", callerID.String(), "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGetContract(t *testing.T) {
	router, m := newRouter(t)

	caller := &profile.Profile{ID: uuid.New(), Role: profile.RoleContractor}
	c := &contract.Contract{
		ID:           uuid.New(),
		Terms:        "bla bla bla",
		Status:       contract.StatusInProgress,
		ClientID:     uuid.New(),
		ContractorID: caller.ID,
	}

	m.profiles.EXPECT().GetProfile(gomock.Any(), caller.ID).Return(caller, nil).Times(2)
	m.contracts.EXPECT().GetContractForProfile(gomock.Any(), c.ID, caller.ID).Return(c, nil)

	other := uuid.New()
	m.contracts.EXPECT().GetContractForProfile(gomock.Any(), other, caller.ID).Return(nil, contract.ErrNotFound)

	rec := serve(router, http.MethodGet, "/contracts/"+c.ID.String(), caller.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, c.ID.String(), got["id"])
	assert.Equal(t, "in_progress", got["status"])

	rec = serve(router, http.MethodGet, "/contracts/"+other.String(), caller.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUnpaidJobs(t *testing.T) {
	router, m := newRouter(t)

	caller := &profile.Profile{ID: uuid.New(), Role: profile.RoleClient}
	m.profiles.EXPECT().GetProfile(gomock.Any(), caller.ID).Return(caller, nil)
	m.jobs.EXPECT().ListUnpaidJobs(gomock.Any(), caller.ID).Return([]*job.Job{
		{ID: uuid.New(), Description: "work", Price: decimal.NewFromInt(201)},
	}, nil)

	rec := serve(router, http.MethodGet, "/jobs/unpaid", caller.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "work", got[0]["description"])
}

func TestBestProfession(t *testing.T) {
	router, m := newRouter(t)

	m.reports.EXPECT().TopProfessions(gomock.Any(), gomock.Any(), 1).Return([]report.ProfessionEarnings{
		{Profession: "Programmer", Paid: decimal.NewFromInt(2683)},
	}, nil)

	rec := serve(router, http.MethodGet, "/admin/best-profession?start=2020-08-10&end=2020-08-20", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Profession string          `json:"profession"`
		Paid       decimal.Decimal `json:"paid"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Programmer", got.Profession)
	assert.True(t, decimal.NewFromInt(2683).Equal(got.Paid))

	rec = serve(router, http.MethodGet, "/admin/best-profession?start=2020-08-20&end=2020-08-10", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBestClients(t *testing.T) {
	router, m := newRouter(t)

	m.reports.EXPECT().TopClients(gomock.Any(), gomock.Any(), report.DefaultClientLimit).Return([]report.ClientSpending{
		{ClientID: uuid.New(), FullName: "Ash Kethcum", Paid: decimal.NewFromInt(2020)},
		{ClientID: uuid.New(), FullName: "Mr Robot", Paid: decimal.NewFromInt(442)},
	}, nil)

	rec := serve(router, http.MethodGet, "/admin/best-clients?start=2020-08-10&end=2020-08-20", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Ash Kethcum", got[0]["fullName"])

	rec = serve(router, http.MethodGet, "/admin/best-clients?start=2020-08-10&end=2020-08-20&limit=zero", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	router, _ := newRouter(t)

	rec := serve(router, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
