package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gigledger/internal/http/middleware"
	"github.com/MrJamesThe3rd/gigledger/internal/profile"
)

func TestProfile(t *testing.T) {
	known := &profile.Profile{ID: uuid.New(), FirstName: "Harry", LastName: "Potter", Role: profile.RoleClient}

	tests := []struct {
		name       string
		header     string
		setupMock  func(m *profile.MockRepository)
		wantStatus int
	}{
		{
			name:       "MissingHeader",
			header:     "",
			setupMock:  func(_ *profile.MockRepository) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "MalformedHeader",
			header:     "1",
			setupMock:  func(_ *profile.MockRepository) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "UnknownProfile",
			header: uuid.NewString(),
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, profile.ErrNotFound)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "StoreError",
			header: uuid.NewString(),
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "Known",
			header: known.ID.String(),
			setupMock: func(m *profile.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), known.ID).Return(known, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := profile.NewMockRepository(ctrl)
			tt.setupMock(repo)

			var got *profile.Profile

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = middleware.ProfileFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/contracts", nil)
			if tt.header != "" {
				req.Header.Set(middleware.ProfileHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			middleware.Profile(profile.NewService(repo))(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, got)
				assert.Equal(t, known.ID, got.ID)
			} else {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{name: "Missing", query: "", wantStatus: http.StatusBadRequest},
		{name: "MissingEnd", query: "start=2020-08-10", wantStatus: http.StatusBadRequest},
		{name: "Invalid", query: "start=yesterday&end=2020-08-10", wantStatus: http.StatusBadRequest},
		{name: "Reversed", query: "start=2020-08-20&end=2020-08-10", wantStatus: http.StatusBadRequest},
		{
			name:       "DateOnly",
			query:      "start=2020-08-10&end=2020-08-20",
			wantStatus: http.StatusOK,
			wantStart:  time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2020, 8, 20, 23, 59, 59, 999999999, time.UTC),
		},
		{
			name:       "RFC3339",
			query:      "start=2020-08-10T09:00:00Z&end=2020-08-10T17:00:00Z",
			wantStatus: http.StatusOK,
			wantStart:  time.Date(2020, 8, 10, 9, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2020, 8, 10, 17, 0, 0, 0, time.UTC),
		},
		{
			name:       "SameDay",
			query:      "start=2020-08-10&end=2020-08-10",
			wantStatus: http.StatusOK,
			wantStart:  time.Date(2020, 8, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:    time.Date(2020, 8, 10, 23, 59, 59, 999999999, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rng, ok := middleware.RangeFrom(r.Context())
				require.True(t, ok)
				assert.True(t, tt.wantStart.Equal(rng.Start), "start %s", rng.Start)
				assert.True(t, tt.wantEnd.Equal(rng.End), "end %s", rng.End)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/best-clients?"+tt.query, nil)
			rec := httptest.NewRecorder()
			middleware.DateRange(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
