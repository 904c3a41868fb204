// Package ledger implements the append-only decision and cost logs.
// Records are keyed by a creation-time monotonic token, inserted newest
// first so recent items surface without a sort, and never mutated in
// place — only appended or hard-deleted by id.
package ledger

import "time"

// IDGen issues timestamp-based monotonic record ids. Millisecond
// timestamps collide when two records land in the same instant, so the
// generator bumps past the last issued id.
type IDGen struct {
	last int64
}

// Next returns a unique id greater than any previously issued.
func (g *IDGen) Next(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Seed raises the generator floor, used when restoring persisted records.
func (g *IDGen) Seed(id int64) {
	if id > g.last {
		g.last = id
	}
}
