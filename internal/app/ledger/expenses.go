package ledger

import (
	"time"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Expense Ledger ─────────────────────────────────────────────────────────

// Expenses is the append-only cost log.
type Expenses struct {
	records []domain.ExpenseRecord
	ids     IDGen
}

// NewExpenses returns an empty expense ledger.
func NewExpenses() *Expenses {
	return &Expenses{}
}

// ExpensesFrom restores a ledger from persisted records, preserving order.
func ExpensesFrom(records []domain.ExpenseRecord) *Expenses {
	l := &Expenses{records: append([]domain.ExpenseRecord(nil), records...)}
	for _, r := range records {
		l.ids.Seed(r.ID)
	}
	return l
}

// Append validates and records a cost. Amount must be a positive integer;
// anything else is rejected before the ledger is touched.
func (l *Expenses) Append(category domain.ExpenseCategory, amount int64, note string, now time.Time) (domain.ExpenseRecord, error) {
	if amount <= 0 {
		return domain.ExpenseRecord{}, domain.ErrNonPositiveAmount
	}
	if !category.Valid() {
		return domain.ExpenseRecord{}, domain.ErrInvalidCategory
	}
	rec := domain.ExpenseRecord{
		ID:        l.ids.Next(now),
		Category:  category,
		Amount:    amount,
		Note:      note,
		CreatedAt: now,
		DateKey:   domain.DateKey(now),
	}
	l.records = append([]domain.ExpenseRecord{rec}, l.records...)
	return rec, nil
}

// Remove hard-deletes a record by id. ErrNotFound for unknown ids.
func (l *Expenses) Remove(id int64) error {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// SinceDateKey returns all records whose date key is >= startKey,
// newest first.
func (l *Expenses) SinceDateKey(startKey string) []domain.ExpenseRecord {
	var out []domain.ExpenseRecord
	for _, r := range l.records {
		if r.DateKey >= startKey {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of every record, newest first.
func (l *Expenses) All() []domain.ExpenseRecord {
	return append([]domain.ExpenseRecord(nil), l.records...)
}

// Len returns the record count.
func (l *Expenses) Len() int { return len(l.records) }
