package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAllocatesMonotonicIds(t *testing.T) {
	tab := NewTable()
	a := tab.New(KindClass)
	b := tab.New(KindFunction)
	assert.NotEqual(t, a, b)
	assert.Greater(t, b, a)
	assert.Equal(t, 3, tab.Len()) // root + a + b
}

func TestGetMutatesInPlace(t *testing.T) {
	tab := NewTable()
	id := tab.New(KindVariable)
	e := tab.Get(id)
	require.NotNil(t, e)
	e.NameText = "x"
	assert.Equal(t, "x", tab.Get(id).NameText)
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, KindClass.IsType())
	assert.False(t, KindClass.IsReal())
	assert.True(t, KindFunction.IsReal())
	assert.False(t, KindFunction.IsType())
}

func TestCountByKindExcludesRoot(t *testing.T) {
	tab := NewTable()
	tab.New(KindClass)
	tab.New(KindClass)
	tab.New(KindFunction)
	counts := tab.CountByKind()
	assert.Equal(t, 2, counts[KindClass])
	assert.Equal(t, 1, counts[KindFunction])
}
