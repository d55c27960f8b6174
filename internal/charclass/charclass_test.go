package charclass

import "testing"

import "github.com/stretchr/testify/assert"

func TestPredicates(t *testing.T) {
	assert.True(t, IsDigit('5'))
	assert.False(t, IsDigit('x'))
	assert.True(t, IsHex('a'))
	assert.True(t, IsHex('F'))
	assert.False(t, IsHex('g'))
	assert.True(t, IsAlpha('_'))
	assert.True(t, IsAlphanumeric('9'))
	assert.True(t, IsWhite(' '))
	assert.True(t, IsWhite('\t'))
	assert.False(t, IsWhite('a'))
	assert.True(t, IsOperatorChar('+'))
	assert.True(t, IsOperatorChar(':'))
	assert.False(t, IsOperatorChar('a'))
	assert.True(t, IsNumericChar('e'))
	assert.True(t, IsNumericChar('.'))
}

func TestTableImmutableAcrossLookups(t *testing.T) {
	m1 := Of('a')
	m2 := Of('a')
	assert.Equal(t, m1, m2)
}
