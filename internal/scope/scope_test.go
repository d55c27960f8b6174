package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/entity"
)

func TestInsertAndLookupLocal(t *testing.T) {
	ents := entity.NewTable()
	scopes := NewTable()
	id := ents.New(entity.KindVariable)
	res := scopes.Insert(RootID, "x", id, ents)
	assert.Equal(t, Inserted, res)

	got, ok := scopes.LookupLocal(RootID, "x")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestOverloadInsertion(t *testing.T) {
	ents := entity.NewTable()
	scopes := NewTable()

	f1 := ents.New(entity.KindFunction)
	ents.Get(f1).ExtendedName = "foo(int)"
	scopes.Insert(RootID, "foo", f1, ents)

	f2 := ents.New(entity.KindFunction)
	ents.Get(f2).ExtendedName = "foo(double)"
	res := scopes.Insert(RootID, "foo", f2, ents)
	assert.Equal(t, OverloadAdded, res)

	sc := scopes.Get(RootID)
	assert.Len(t, sc.Overloads("foo"), 2)
}

func TestDuplicateConflictForNonFunction(t *testing.T) {
	ents := entity.NewTable()
	scopes := NewTable()
	v1 := ents.New(entity.KindVariable)
	scopes.Insert(RootID, "x", v1, ents)
	v2 := ents.New(entity.KindClass)
	res := scopes.Insert(RootID, "x", v2, ents)
	assert.Equal(t, DuplicateConflict, res)
}

func TestResolverWalksParentChainThenRoot(t *testing.T) {
	ents := entity.NewTable()
	scopes := NewTable()
	r := &Resolver{Scopes: scopes, Entities: ents}

	global := ents.New(entity.KindVariable)
	scopes.Insert(RootID, "g", global, ents)

	fn := scopes.New(entity.None, RootID)
	local := ents.New(entity.KindVariable)
	scopes.Insert(fn, "l", local, ents)

	id, ok := r.Lookup([]string{"l"}, entity.None, fn, None, nil)
	require.True(t, ok)
	assert.Equal(t, local, id)

	id, ok = r.Lookup([]string{"g"}, entity.None, fn, None, nil)
	require.True(t, ok)
	assert.Equal(t, global, id)

	_, ok = r.Lookup([]string{"nope"}, entity.None, fn, None, nil)
	assert.False(t, ok)
}

func TestResolverDescendsThroughScopeOperator(t *testing.T) {
	ents := entity.NewTable()
	scopes := NewTable()
	r := &Resolver{Scopes: scopes, Entities: ents}

	ns := ents.New(entity.KindNamespace)
	nsScope := scopes.New(ns, RootID)
	ents.Get(ns).ScopeTable = nsScope
	scopes.Insert(RootID, "ns", ns, ents)

	v := ents.New(entity.KindVariable)
	scopes.Insert(nsScope, "v", v, ents)

	id, ok := r.Lookup([]string{"ns", "v"}, entity.None, None, None, nil)
	require.True(t, ok)
	assert.Equal(t, v, id)
}

func TestSuggestFindsClosestName(t *testing.T) {
	ents := entity.NewTable()
	scopes := NewTable()
	id := ents.New(entity.KindVariable)
	scopes.Insert(RootID, "counter", id, ents)
	suggestions := Suggest([]*Scope{scopes.Get(RootID)}, "countr", 3)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "counter", suggestions[0])
}
