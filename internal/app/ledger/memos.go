package ledger

import (
	"strings"
	"time"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Memo Ledger ────────────────────────────────────────────────────────────
// Field memos carry no derived logic; the ledger only stores, deletes and
// searches them.

// Memos is the append-only field note log.
type Memos struct {
	records []domain.MemoRecord
	ids     IDGen
}

// NewMemos returns an empty memo ledger.
func NewMemos() *Memos {
	return &Memos{}
}

// MemosFrom restores a ledger from persisted records, preserving order.
func MemosFrom(records []domain.MemoRecord) *Memos {
	l := &Memos{records: append([]domain.MemoRecord(nil), records...)}
	for _, r := range records {
		l.ids.Seed(r.ID)
	}
	return l
}

// Append validates and stores a memo. Place and content are both required.
func (l *Memos) Append(place, content string, kind domain.MemoKind, now time.Time) (domain.MemoRecord, error) {
	place = strings.TrimSpace(place)
	content = strings.TrimSpace(content)
	if place == "" || content == "" {
		return domain.MemoRecord{}, domain.ErrEmptyMemo
	}
	if !kind.Valid() {
		return domain.MemoRecord{}, domain.ErrInvalidMemoKind
	}
	rec := domain.MemoRecord{
		ID:        l.ids.Next(now),
		Place:     place,
		Content:   content,
		Kind:      kind,
		CreatedAt: now,
	}
	l.records = append([]domain.MemoRecord{rec}, l.records...)
	return rec, nil
}

// Remove hard-deletes a memo by id. ErrNotFound for unknown ids.
func (l *Memos) Remove(id int64) error {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Search returns memos whose place or content contains the query,
// case-insensitive. An empty query returns everything.
func (l *Memos) Search(query string) []domain.MemoRecord {
	if query == "" {
		return l.All()
	}
	q := strings.ToLower(query)
	var out []domain.MemoRecord
	for _, r := range l.records {
		if strings.Contains(strings.ToLower(r.Place), q) ||
			strings.Contains(strings.ToLower(r.Content), q) {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of every memo, newest first.
func (l *Memos) All() []domain.MemoRecord {
	return append([]domain.MemoRecord(nil), l.records...)
}

// Len returns the memo count.
func (l *Memos) Len() int { return len(l.records) }
