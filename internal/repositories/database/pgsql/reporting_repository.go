package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindEntriesUpTo retrieves the entries of a scope reconciled no later than upTo.
func (r *reportingRepository) FindEntriesUpTo(ctx context.Context, scope domain.LedgerScope, upTo time.Time) ([]domain.LedgerEntry, error) {
	var b queryBuilder
	b.scope(scope)
	b.where("reconciliation_date <= " + b.arg(upTo))
	query := "SELECT " + ledgerColumns + " FROM ledger_entries " + b.clause() + " " + latestFirst
	return queryLedgerEntries(ctx, r.Pool, query, b.args, "query report entries")
}
