// Package scope implements the entity table / Scope of spec §3/§4.8: a
// name→entity mapping keyed to a hosting frame, parent-chained for lookup,
// plus the lookup engine's scope-walk resolution order.
//
// Grounded on enforcer.h's class ceEntbl (hzMapS<hzString,ceEntity*> m_ents,
// m_parent).
package scope

import "github.com/oxhq/cppdoc/internal/entity"

// None is the sentinel scope id for "no parent"/"no such scope".
const None = ^uint32(0)

// Scope is a name→entity-id mapping for one hosting frame (namespace, file,
// class, or function body).
type Scope struct {
	ID     uint32
	Host   uint32 // entity id of the namespace/class/function this scope belongs to, entity.None if the root
	Parent uint32 // parent scope id, or None

	names map[string]uint32 // plain name -> entity id (most recent / representative)
	// overloads additionally tracks every function sharing a plain name,
	// keyed by ExtendedName (spec §3 "Insertion rejects duplicates unless
	// the existing entity is a function of the same extended name").
	overloads map[string][]uint32
}

// InsertResult reports what Insert actually did, so callers can turn a
// collision into the right diagnostic severity.
type InsertResult int

const (
	Inserted InsertResult = iota
	OverloadAdded                // same base name, distinct extended name: silent success with a warning
	DuplicateConflict            // same name, not a function-overload case: E_DUPLICATE
)

// Table owns every Scope, addressed by id (mirrors internal/entity.Table's
// arena style).
type Table struct {
	scopes []Scope
}

func NewTable() *Table {
	t := &Table{}
	root := Scope{ID: 0, Host: entity.None, Parent: None, names: map[string]uint32{}, overloads: map[string][]uint32{}}
	t.scopes = []Scope{root}
	return t
}

// RootID is the global root scope (spec §3 "The top-level scope is the root
// (the unnamed global namespace)").
const RootID uint32 = 0

func (t *Table) New(host, parent uint32) uint32 {
	id := uint32(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		ID: id, Host: host, Parent: parent,
		names: map[string]uint32{}, overloads: map[string][]uint32{},
	})
	return id
}

func (t *Table) Get(id uint32) *Scope {
	if id == None || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Insert adds name->id to scope sc, applying the overload-collision rule
// from spec §3. ents is the entity table, needed to read Kind/ExtendedName
// when resolving a potential collision.
func (t *Table) Insert(scID uint32, name string, id uint32, ents *entity.Table) InsertResult {
	sc := t.Get(scID)
	existing, had := sc.names[name]
	if !had {
		sc.names[name] = id
		if ents.Get(id).Kind == entity.KindFunction {
			sc.overloads[name] = append(sc.overloads[name], id)
		}
		return Inserted
	}

	existingEnt := ents.Get(existing)
	newEnt := ents.Get(id)
	if existingEnt.Kind == entity.KindFunction && newEnt.Kind == entity.KindFunction {
		for _, fid := range sc.overloads[name] {
			if ents.Get(fid).ExtendedName == newEnt.ExtendedName {
				return DuplicateConflict // identical mangled name: idempotent duplicate (spec §4.12), caller should not re-append
			}
		}
		sc.overloads[name] = append(sc.overloads[name], id)
		return OverloadAdded
	}
	return DuplicateConflict
}

// LookupLocal resolves name within scope scID only (no parent walk).
func (t *Table) LookupLocal(scID uint32, name string) (uint32, bool) {
	sc := t.Get(scID)
	if sc == nil {
		return 0, false
	}
	id, ok := sc.names[name]
	return id, ok
}

// Names returns every name bound directly in this scope, for export/walks.
func (sc *Scope) Names() map[string]uint32 { return sc.names }

// Overloads returns every function entity id bound to name in this scope,
// in insertion order.
func (sc *Scope) Overloads(name string) []uint32 { return sc.overloads[name] }
