package services

import (
	"context"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/dto"
)

// SettingsSvc manages the report signatories of each partition.
type SettingsSvc interface {
	// GetOfficialsSettings returns the settings of the actor's partition, empty when unset.
	GetOfficialsSettings(ctx context.Context, actor *domain.ActingUser) (*domain.OfficialsSettings, error)

	// UpdateOfficialsSettings replaces the settings of the actor's partition.
	UpdateOfficialsSettings(ctx context.Context, req dto.UpdateOfficialsRequest, actor *domain.ActingUser) (*domain.OfficialsSettings, error)
}
