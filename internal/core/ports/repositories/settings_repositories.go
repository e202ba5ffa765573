package repositories

import (
	"context"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
)

// SettingsReader reads officials settings.
type SettingsReader interface {
	// FindOfficials retrieves the settings of a partition.
	FindOfficials(ctx context.Context, partitionKey string) (*domain.OfficialsSettings, error)
}

// SettingsWriter writes officials settings.
type SettingsWriter interface {
	// UpsertOfficials creates or replaces the settings of a partition.
	UpsertOfficials(ctx context.Context, settings domain.OfficialsSettings) error
}

// SettingsRepositoryFacade combines settings access.
type SettingsRepositoryFacade interface {
	SettingsReader
	SettingsWriter
}
