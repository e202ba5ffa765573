package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/core/services"
	"github.com/SscSPs/stock_opname_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_GetDefaultsToEmpty(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := services.NewSettingsService(repo)

	repo.On("FindOfficials", mock.Anything, "unit-a").Return(nil, apperrors.ErrNotFound).Once()

	settings, err := svc.GetOfficialsSettings(context.Background(), unitA)
	require.NoError(t, err)
	assert.Equal(t, "unit-a", settings.PartitionKey)
	assert.Empty(t, settings.OfficeName)
	repo.AssertExpectations(t)
}

func TestSettingsService_GetStoreFailure(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := services.NewSettingsService(repo)

	repo.On("FindOfficials", mock.Anything, domain.AdminPartitionKey).
		Return(nil, apperrors.NewAppError(500, "query failed", nil)).Once()

	_, err := svc.GetOfficialsSettings(context.Background(), admin)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestSettingsService_UpdateIsPerPartition(t *testing.T) {
	repo := new(MockSettingsRepository)
	svc := services.NewSettingsService(repo)

	repo.On("UpsertOfficials", mock.Anything, mock.MatchedBy(func(s domain.OfficialsSettings) bool {
		return s.PartitionKey == domain.AdminPartitionKey &&
			s.HeadOfficialName == "drh. Budi" &&
			s.OfficeName == "Dinas Peternakan" &&
			s.LastUpdatedBy == "admin-1" &&
			!s.LastUpdatedAt.IsZero()
	})).Return(nil).Once()

	settings, err := svc.UpdateOfficialsSettings(context.Background(), dto.UpdateOfficialsRequest{
		HeadOfficialName: "  drh. Budi ",
		OfficeName:       "Dinas Peternakan",
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, "drh. Budi", settings.HeadOfficialName)
	repo.AssertExpectations(t)

	_, err = svc.UpdateOfficialsSettings(context.Background(), dto.UpdateOfficialsRequest{}, nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
