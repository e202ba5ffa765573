package services

import (
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/stock_opname_app/internal/core/ports/services"
	"github.com/SscSPs/stock_opname_app/internal/platform/config"
)

// Infrastructure are the optional collaborators wired by main.
type Infrastructure struct {
	Locker      portssvc.KeyLocker
	Notifier    portssvc.ChangeNotifier
	Spreadsheet portssvc.ReportSpreadsheetWriter
	Document    portssvc.ReportDocumentRenderer
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, infra Infrastructure) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(
		repos.UserRepo,
		WithUnitDataRemover(repos.LedgerRepo),
		WithUserNotifier(infra.Notifier),
	)

	container.Ledger = NewLedgerService(
		repos.LedgerRepo,
		WithLotLocker(infra.Locker),
		WithLedgerNotifier(infra.Notifier),
	)

	container.Stats = NewStatsService(repos.LedgerRepo, WithStatsNotifier(infra.Notifier))

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportOfficials(repos.SettingsRepo),
		WithSpreadsheetWriter(infra.Spreadsheet),
		WithDocumentRenderer(infra.Document),
	)

	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.TokenService = NewTokenService(cfg, container.User, repos.UserRepo)

	return container
}
