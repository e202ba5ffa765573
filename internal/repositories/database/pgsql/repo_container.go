package pgsql

import (
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		LedgerRepo:    ledgerRepo,
		ReportingRepo: reportingRepo,
		SettingsRepo:  settingsRepo,
	}
}
