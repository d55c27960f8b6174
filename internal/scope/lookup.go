package scope

import "github.com/oxhq/cppdoc/internal/entity"

// Resolver implements the lookup engine of spec §4.8: resolves a qualified
// name to an entity by walking scopes in a fixed order.
type Resolver struct {
	Scopes   *Table
	Entities *entity.Table
}

func (r *Resolver) LookupLocal(scID uint32, name string) (uint32, bool) {
	return r.Scopes.LookupLocal(scID, name)
}

func (r *Resolver) Get(scID uint32) *Scope { return r.Scopes.Get(scID) }

// Lookup implements `lookup(tokenSeries, hostClass?, funcScope?, start)` from
// spec §4.8, operating on a name already split into its "::"-separated
// components (the parser performs that split and operator-name assembly
// before calling in). usingSet is the project's currently-active
// using-imported namespace entity ids (spec §3 "Project hierarchy").
//
// Resolution order: function-local scope (walking its parent chain) → the
// file-static scope, if any → the host class (its own scope, then its
// parent-nesting class's scope, then its base class's scope) → each active
// using-imported namespace → the global root.
func (r *Resolver) Lookup(names []string, hostClass, funcScope, fileStatic uint32, usingSet []uint32) (uint32, bool) {
	if len(names) == 0 {
		return 0, false
	}
	head, rest := names[0], names[1:]

	if funcScope != None {
		if id, ok := r.walkParentChain(funcScope, head); ok {
			return r.descend(id, rest)
		}
	}
	if fileStatic != None {
		if id, ok := r.LookupLocal(fileStatic, head); ok {
			return r.descend(id, rest)
		}
	}
	if hostClass != entity.None {
		if id, ok := r.lookupInClassChain(hostClass, head); ok {
			return r.descend(id, rest)
		}
	}
	for _, ns := range usingSet {
		nsEnt := r.Entities.Get(ns)
		if nsEnt == nil || nsEnt.ScopeTable == None {
			continue
		}
		if id, ok := r.LookupLocal(nsEnt.ScopeTable, head); ok {
			return r.descend(id, rest)
		}
	}
	if id, ok := r.LookupLocal(RootID, head); ok {
		return r.descend(id, rest)
	}
	return 0, false
}

// LookupString implements `lookupString(nameWithScopeOps, hostClass?)`:
// splits on "::" and calls Lookup with no function/file-static scope.
func (r *Resolver) LookupString(qualified string, hostClass uint32, usingSet []uint32) (uint32, bool) {
	names := splitScope(qualified)
	return r.Lookup(names, hostClass, None, None, usingSet)
}

func splitScope(s string) []string {
	var out []string
	start := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == ':' && s[i+1] == ':' {
			out = append(out, s[start:i])
			start = i + 2
			i++
		}
	}
	out = append(out, s[start:])
	return out
}

// walkParentChain walks a scope's parent chain looking for name, stopping
// at the first hit (innermost-scope-wins, standard block-scoping).
func (r *Resolver) walkParentChain(scID uint32, name string) (uint32, bool) {
	for scID != None {
		if id, ok := r.LookupLocal(scID, name); ok {
			return id, true
		}
		sc := r.Get(scID)
		if sc == nil {
			break
		}
		scID = sc.Parent
	}
	return 0, false
}

// lookupInClassChain resolves name within hostClass's own scope, then its
// parent-nesting class, then its base class, per spec §4.8.
func (r *Resolver) lookupInClassChain(hostClass uint32, name string) (uint32, bool) {
	classID := hostClass
	for classID != entity.None {
		cls := r.Entities.Get(classID)
		if cls == nil {
			break
		}
		if cls.ScopeTable != None {
			if id, ok := r.LookupLocal(cls.ScopeTable, name); ok {
				return id, true
			}
		}
		if cls.ParentClass != entity.None {
			if id, ok := r.lookupInClassChain(cls.ParentClass, name); ok {
				return id, true
			}
		}
		classID = cls.BaseClass
	}
	return 0, false
}

// descend follows "::"-qualified continuation components into the scope
// owned by the entity just found (spec §4.8 "If the series contains :: after
// a found namespace or class entity, descend into that entity's scope").
func (r *Resolver) descend(id uint32, rest []string) (uint32, bool) {
	if len(rest) == 0 {
		return id, true
	}
	ent := r.Entities.Get(id)
	if ent == nil || ent.ScopeTable == None {
		return 0, false
	}
	head, tail := rest[0], rest[1:]
	next, ok := r.LookupLocal(ent.ScopeTable, head)
	if !ok {
		return 0, false
	}
	return r.descend(next, tail)
}

// AssembleOperatorName joins the tokens of an "operator <op>" or
// "operator[]"/"operator()" declaration into a single lookup name, per spec
// §4.8 ("An operator[] and operator<op> are assembled into a single name").
func AssembleOperatorName(opSpelling string) string {
	return "operator" + opSpelling
}
