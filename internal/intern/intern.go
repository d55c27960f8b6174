// Package intern provides process-wide string deduplication, assigning each
// distinct string a stable 32-bit id (spec §2 row 4, §9 "String interning").
//
// The core pipeline is single-threaded per spec §5, but the table is guarded
// by a mutex so a future multi-component parallel driver (spec §5's "disjoint
// entity-id ranges and a thread-local string-intern cache flushed into the
// global table at component completion") can share one without a rewrite.
package intern

import "sync"

// ID 0 is reserved to mean "no string" (e.g. a structural token's Value).
const Empty uint32 = 0

type Table struct {
	mu      sync.Mutex
	byStr   map[string]uint32
	byID    []string
}

func New() *Table {
	t := &Table{byStr: make(map[string]uint32)}
	t.byID = append(t.byID, "") // id 0 == Empty
	return t
}

// Intern returns s's id, assigning a new one if s has not been seen.
func (t *Table) Intern(s string) uint32 {
	if s == "" {
		return Empty
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.byStr[s]; ok {
		return id
	}
	id := uint32(len(t.byID))
	t.byID = append(t.byID, s)
	t.byStr[s] = id
	return id
}

// String reverse-looks-up id. Returns "" for Empty or an unknown id.
func (t *Table) String(id uint32) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if int(id) >= len(t.byID) {
		return ""
	}
	return t.byID[id]
}

// Len reports how many distinct non-empty strings have been interned.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID) - 1
}
