package contract_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/gigledger/internal/contract"
)

func TestService_ListActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	profileID := uuid.New()
	repo := contract.NewMockRepository(ctrl)

	repo.EXPECT().
		ListContracts(gomock.Any(), contract.ListFilter{
			ProfileID:       profileID,
			ExcludeStatuses: []contract.Status{contract.StatusTerminated},
		}).
		Return([]*contract.Contract{{ID: uuid.New(), Status: contract.StatusInProgress}}, nil)

	got, err := contract.NewService(repo).ListActive(context.Background(), profileID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Get_NotOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id, profileID := uuid.New(), uuid.New()
	repo := contract.NewMockRepository(ctrl)
	repo.EXPECT().GetContractForProfile(gomock.Any(), id, profileID).Return(nil, contract.ErrNotFound)

	_, err := contract.NewService(repo).Get(context.Background(), id, profileID)
	assert.ErrorIs(t, err, contract.ErrNotFound)
}

func TestContract_Involves(t *testing.T) {
	c := &contract.Contract{ClientID: uuid.New(), ContractorID: uuid.New()}

	assert.True(t, c.Involves(c.ClientID))
	assert.True(t, c.Involves(c.ContractorID))
	assert.False(t, c.Involves(uuid.New()))
}
