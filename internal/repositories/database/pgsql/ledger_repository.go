package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/stock_opname_app/internal/apperrors"
	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	portsrepo "github.com/SscSPs/stock_opname_app/internal/core/ports/repositories"
	"github.com/SscSPs/stock_opname_app/internal/models"
	"github.com/SscSPs/stock_opname_app/internal/utils/mapping"
	"github.com/SscSPs/stock_opname_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository stores ledger entries in the ledger_entries table.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// queryEntries runs a SELECT over ledger_entries and converts every row.
func (r *PgxLedgerRepository) queryEntries(ctx context.Context, b *queryBuilder, suffix string, action string) ([]domain.LedgerEntry, error) {
	query := fmt.Sprintf("SELECT %s FROM ledger_entries %s %s", ledgerColumns, b.clause(), suffix)
	return queryLedgerEntries(ctx, r.Pool, query, b.args, action)
}

func queryLedgerEntries(ctx context.Context, db *pgxpool.Pool, query string, args []any, action string) ([]domain.LedgerEntry, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, action)
	}
	modelEntries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerEntry])
	if err != nil {
		return nil, mapError(err, action)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, scope domain.LedgerScope, entryID string) (*domain.LedgerEntry, error) {
	var b queryBuilder
	b.scope(scope)
	b.where("entry_id = " + b.arg(entryID))
	entries, err := r.queryEntries(ctx, &b, "", "find ledger entry")
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &entries[0], nil
}

func (r *PgxLedgerRepository) FindEntriesByMedicine(ctx context.Context, scope domain.LedgerScope, medicineName string) ([]domain.LedgerEntry, error) {
	var b queryBuilder
	b.scope(scope)
	b.where("medicine_name = " + b.arg(medicineName))
	return r.queryEntries(ctx, &b, latestFirst, "find lot history")
}

func (r *PgxLedgerRepository) FindEntries(ctx context.Context, scope domain.LedgerScope) ([]domain.LedgerEntry, error) {
	var b queryBuilder
	b.scope(scope)
	return r.queryEntries(ctx, &b, latestFirst, "find ledger entries")
}

// ListEntries pages through the scope newest first. The next token encodes the
// sort key of the last row returned.
func (r *PgxLedgerRepository) ListEntries(ctx context.Context, scope domain.LedgerScope, filter portsrepo.LedgerListFilter) ([]domain.LedgerEntry, *string, error) {
	var b queryBuilder
	b.scope(scope)
	if filter.MedicineName != "" {
		b.where("medicine_name ILIKE " + b.arg("%"+filter.MedicineName+"%"))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursor, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("nextToken", "is invalid")
		}
		b.after(cursor)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	suffix := fmt.Sprintf("%s LIMIT %s", latestFirst, b.arg(limit+1))

	entries, err := r.queryEntries(ctx, &b, suffix, "list ledger entries")
	if err != nil {
		return nil, nil, err
	}
	if len(entries) <= limit {
		return entries, nil, nil
	}
	entries = entries[:limit]
	last := entries[limit-1]
	next := pagination.EncodeToken(pagination.Cursor{
		ReconciliationDate: last.ReconciliationDate,
		CreatedAt:          last.CreatedAt,
		EntryID:            last.EntryID,
	})
	return entries, &next, nil
}

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID, m.MedicineName, m.Category, m.UnitOfMeasure, m.OriginOfGoods,
		m.ReconciliationDate, m.ExpiryDate,
		m.PriorGood, m.PriorDamaged, m.PriorTotal,
		m.InGood, m.InDamaged, m.InTotal,
		m.OutGood, m.OutDamaged, m.OutTotal,
		m.EndingGood, m.EndingDamaged, m.EndingTotal,
		m.Notes, m.CreatedAt, m.UpdatedAt,
		m.OwnerUnitID, m.OwnerUnitName, m.OwnerUnitDisplayName, m.OwnerRole,
	)
	return mapError(err, "save ledger entry")
}

// UpdateEntry overwrites every column except the id and the owner.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, scope domain.LedgerScope, entry domain.LedgerEntry) error {
	m := mapping.ToModelLedgerEntry(entry)
	b := queryBuilder{args: []any{
		m.MedicineName, m.Category, m.UnitOfMeasure, m.OriginOfGoods,
		m.ReconciliationDate, m.ExpiryDate,
		m.PriorGood, m.PriorDamaged, m.PriorTotal,
		m.InGood, m.InDamaged, m.InTotal,
		m.OutGood, m.OutDamaged, m.OutTotal,
		m.EndingGood, m.EndingDamaged, m.EndingTotal,
		m.Notes, m.CreatedAt, m.UpdatedAt,
	}}
	b.scope(scope)
	b.where("entry_id = " + b.arg(m.EntryID))

	query := `
		UPDATE ledger_entries SET
			medicine_name = $1, category = $2, unit_of_measure = $3, origin_of_goods = $4,
			reconciliation_date = $5, expiry_date = $6,
			prior_good = $7, prior_damaged = $8, prior_total = $9,
			in_good = $10, in_damaged = $11, in_total = $12,
			out_good = $13, out_damaged = $14, out_total = $15,
			ending_good = $16, ending_damaged = $17, ending_total = $18,
			notes = $19, created_at = $20, updated_at = $21
		` + b.clause()
	cmdTag, err := r.Pool.Exec(ctx, query, b.args...)
	if err != nil {
		return mapError(err, "update ledger entry")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry %s not found: %w", m.EntryID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, scope domain.LedgerScope, entryID string) error {
	var b queryBuilder
	b.scope(scope)
	b.where("entry_id = " + b.arg(entryID))
	cmdTag, err := r.Pool.Exec(ctx, "DELETE FROM ledger_entries "+b.clause(), b.args...)
	if err != nil {
		return mapError(err, "delete ledger entry")
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("ledger entry %s not found: %w", entryID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteUnitData removes every ledger entry owned by unitID, whatever its
// owner role, and the unit's officials settings atomically.
func (r *PgxLedgerRepository) DeleteUnitData(ctx context.Context, unitID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	cmdTag, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE owner_unit_id = $1`, unitID)
	if err != nil {
		return 0, mapError(err, "delete owned ledger entries")
	}
	if _, err := tx.Exec(ctx, `DELETE FROM officials_settings WHERE partition_key = $1`, unitID); err != nil {
		return 0, mapError(err, "delete unit officials")
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}
