package pgsql

import (
	"fmt"
	"strings"

	"github.com/SscSPs/stock_opname_app/internal/core/domain"
	"github.com/SscSPs/stock_opname_app/internal/utils/pagination"
)

// ledgerColumns is the column list scanned into models.LedgerEntry.
const ledgerColumns = `entry_id, medicine_name, category, unit_of_measure, origin_of_goods,
	reconciliation_date, expiry_date,
	prior_good, prior_damaged, prior_total,
	in_good, in_damaged, in_total,
	out_good, out_damaged, out_total,
	ending_good, ending_damaged, ending_total,
	notes, created_at, updated_at,
	owner_unit_id, owner_unit_name, owner_unit_display_name, owner_role`

// latestFirst is the ledger total order.
const latestFirst = `ORDER BY reconciliation_date DESC, created_at DESC, entry_id ASC`

// queryBuilder accumulates WHERE conditions and their positional arguments.
type queryBuilder struct {
	conds []string
	args  []any
}

func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

// scope confines rows to the partition an actor may see.
func (b *queryBuilder) scope(s domain.LedgerScope) {
	b.where("owner_role = " + b.arg(string(s.OwnerRole)))
	if s.OwnerUnitID != "" {
		b.where("owner_unit_id = " + b.arg(s.OwnerUnitID))
	}
}

// after keeps rows strictly after the cursor in latestFirst order.
func (b *queryBuilder) after(c pagination.Cursor) {
	recon := b.arg(c.ReconciliationDate)
	created := b.arg(c.CreatedAt)
	id := b.arg(c.EntryID)
	b.where(fmt.Sprintf("(reconciliation_date < %[1]s OR (reconciliation_date = %[1]s AND (created_at < %[2]s OR (created_at = %[2]s AND entry_id > %[3]s))))",
		recon, created, id))
}

func (b *queryBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conds, " AND ")
}
