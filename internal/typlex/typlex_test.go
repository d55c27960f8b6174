package typlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSame(t *testing.T) {
	a := Typlex{BaseType: 5, Indir: Instance}
	b := Typlex{BaseType: 5, Indir: Instance}
	c := Typlex{BaseType: 5, Indir: 1}
	assert.True(t, a.Same(b))
	assert.False(t, a.Same(c))
}

func TestTestsetLiteralZeroToPointer(t *testing.T) {
	ptr := Typlex{BaseType: 9, Indir: 1}
	zero := Typlex{BaseType: 9, Indir: Instance, Attrs: AttrLiteral | AttrLiteralZero}
	assert.True(t, ptr.Testset(zero))
}

func TestIndirPredicates(t *testing.T) {
	ref := Typlex{BaseType: 1, Indir: Reference}
	assert.True(t, ref.IsReference())
	assert.False(t, ref.IsPointer())

	ptr := Typlex{BaseType: 1, Indir: 2}
	assert.True(t, ptr.IsPointer())
}

func TestMatchPrimitiveWords(t *testing.T) {
	basis, n, ok := MatchPrimitiveWords([]string{"unsigned", "long", "long", "int", "x"})
	require.True(t, ok)
	assert.Equal(t, BasisUint64, basis)
	assert.Equal(t, 4, n)

	_, _, ok = MatchPrimitiveWords([]string{"int"})
	assert.False(t, ok)
}
