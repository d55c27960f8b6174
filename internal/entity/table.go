package entity

// Table is the process-wide arena of every entity ever created (spec §3
// lifecycle invariant: "Each entity is created exactly once and never
// destroyed during a run; ids are never reused"). It hands out monotonic
// ids; internal/scope.Scope separately maps names to these ids within a
// lexical scope.
type Table struct {
	entities []Entity
}

func NewTable() *Table {
	// id 0 is a valid entity (the global root namespace); ids start at 1
	// so that None (^uint32(0)) and the zero value of an unset id field
	// are both unambiguous "absent" markers.
	return &Table{entities: make([]Entity, 1)}
}

// New allocates a fresh entity of the given kind and returns its id.
func (t *Table) New(kind Kind) uint32 {
	id := uint32(len(t.entities))
	e := Entity{ID: id, Kind: kind, BaseClass: None, ParentClass: None,
		Host: None, ParentOwner: None, ParentEnum: None, Group: None, Set: None,
		ScopeTable: None, Ordinal: -1}
	t.entities = append(t.entities, e)
	return id
}

// Get returns a pointer to the entity for in-place mutation during
// construction. Callers must not retain the pointer across further New
// calls, since the backing slice may be reallocated.
func (t *Table) Get(id uint32) *Entity {
	if id == None || int(id) >= len(t.entities) {
		return nil
	}
	return &t.entities[id]
}

// Len reports how many entities (including the reserved root at id 0) exist.
func (t *Table) Len() int { return len(t.entities) }

// All returns every entity, for export/serialization walks. The slice
// must be treated read-only by callers outside this package.
func (t *Table) All() []Entity { return t.entities }

// CountByKind tallies entities per Kind, the counts spec §8's structural
// round-trip property compares; nothing in this module performs that
// comparison.
func (t *Table) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for i, e := range t.entities {
		if i == 0 {
			continue // the reserved root namespace is not counted
		}
		counts[e.Kind]++
	}
	return counts
}
