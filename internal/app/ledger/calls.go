package ledger

import (
	"time"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Call Ledger ────────────────────────────────────────────────────────────

// Calls is the append-only accept/reject decision log.
type Calls struct {
	records []domain.CallRecord
	ids     IDGen
}

// NewCalls returns an empty call ledger.
func NewCalls() *Calls {
	return &Calls{}
}

// CallsFrom restores a ledger from persisted records, preserving order.
func CallsFrom(records []domain.CallRecord) *Calls {
	l := &Calls{records: append([]domain.CallRecord(nil), records...)}
	for _, r := range records {
		l.ids.Seed(r.ID)
	}
	return l
}

// Append validates and records a decision. The date key is derived once
// here and never recomputed. Returns the created record.
func (l *Calls) Append(offer domain.Offer, store string, accepted bool, now time.Time) (domain.CallRecord, error) {
	if offer.Price <= 0 {
		return domain.CallRecord{}, domain.ErrZeroPrice
	}
	if offer.DistanceKm < 0 {
		return domain.CallRecord{}, domain.ErrNegativeDistance
	}
	rec := domain.CallRecord{
		ID:         l.ids.Next(now),
		Price:      offer.Price,
		DistanceKm: offer.DistanceKm,
		Store:      store,
		Accepted:   accepted,
		CreatedAt:  now,
		DateKey:    domain.DateKey(now),
	}
	l.records = append([]domain.CallRecord{rec}, l.records...)
	return rec, nil
}

// Remove hard-deletes a record by id. ErrNotFound for unknown ids; the
// ledger is unchanged in that case.
func (l *Calls) Remove(id int64) error {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// SinceDateKey returns all records whose date key is >= startKey, in
// insertion (newest-first) order.
func (l *Calls) SinceDateKey(startKey string) []domain.CallRecord {
	var out []domain.CallRecord
	for _, r := range l.records {
		if r.DateKey >= startKey {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of every record, newest first.
func (l *Calls) All() []domain.CallRecord {
	return append([]domain.CallRecord(nil), l.records...)
}

// Len returns the record count.
func (l *Calls) Len() int { return len(l.records) }
