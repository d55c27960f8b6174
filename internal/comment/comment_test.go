package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/entity"
)

func TestParseFunctionArgumentsSingle(t *testing.T) {
	text := "Does a thing.\n\nArgument:\tn\tthe count\n\nReturns:\tNone"
	b := ParseFunction(text)
	require.Len(t, b.Args, 1)
	assert.Equal(t, "n", b.Args[0].Key)
	assert.Contains(t, b.Args[0].Text, "the count")
	assert.Empty(t, b.Returns)
}

func TestParseFunctionArgumentsMultiple(t *testing.T) {
	text := "Combine two values.\n\nArguments:\t1)\ta\tfirst value\n\t\t\t2)\tb\tsecond value\n\nReturns:\tNumber\tthe sum"
	b := ParseFunction(text)
	require.Len(t, b.Args, 2)
	assert.Equal(t, "a", b.Args[0].Key)
	assert.Equal(t, "b", b.Args[1].Key)
	require.Len(t, b.Returns, 1)
}

func TestParseClassCategory(t *testing.T) {
	text := "Represents a widget.\n\nCategory:\tUI"
	b := ParseClass(text)
	assert.Equal(t, "UI", b.Category)
	assert.Contains(t, b.Body, "Represents a widget")
}

func TestParseExternalFnSet(t *testing.T) {
	text := "FnSet: shared math helpers\nmax\nmin\n\nArguments:\t1)\ta\tfirst\n\t\t\t2)\tb\tsecond"
	b, err := ParseExternal(text)
	require.NoError(t, err)
	assert.Equal(t, SubjectFnSet, b.Subject)
}

func TestParseExternalFunctionSeparatesNameFromBody(t *testing.T) {
	text := "Function: foo\nCategory: util\n\nDoes the thing.\n\nReturns: None"
	b, err := ParseExternal(text)
	require.NoError(t, err)
	assert.Equal(t, SubjectFunction, b.Subject)
	assert.Equal(t, "foo", b.Name)
	assert.Contains(t, b.Body, "Does the thing")
	assert.Equal(t, "util", b.Category)
	assert.Empty(t, b.Returns)
}

func TestParseExternalRejectsUndirectedComment(t *testing.T) {
	_, err := ParseExternal("just some stray remark")
	assert.Error(t, err)
}

func TestAttachSetsDescAndArgDesc(t *testing.T) {
	e := &entity.Entity{Kind: entity.KindFunction}
	b := &Block{Body: "does a thing", Args: []entity.Description{{Key: "n", Text: "count"}}}
	Attach(e, b)
	assert.Equal(t, "does a thing", e.Desc)
	assert.Len(t, e.ArgDesc, 1)
}

func TestResolveFnSetDefaultsAppliesOnlyWhenMissing(t *testing.T) {
	f1 := &entity.Entity{Kind: entity.KindFunction, Desc: "already has one"}
	f2 := &entity.Entity{Kind: entity.KindFunction}
	b := &Block{Body: "default desc", Args: []entity.Description{{Key: "x"}}}
	ResolveFnSetDefaults([]*entity.Entity{f1, f2}, b)
	assert.Equal(t, "already has one", f1.Desc)
	assert.Equal(t, "default desc", f2.Desc)
	assert.Len(t, f2.ArgDesc, 1)
}
