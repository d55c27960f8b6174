package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/intern"
	"github.com/oxhq/cppdoc/internal/lexer"
	"github.com/oxhq/cppdoc/internal/parser"
	"github.com/oxhq/cppdoc/internal/scope"
)

func buildSample(t *testing.T, src string) (*entity.Table, *scope.Table) {
	t.Helper()
	lx := lexer.New(intern.New(), "test.cpp", 4)
	toks, err := lx.Lex([]byte(src))
	require.NoError(t, err)
	ents := entity.NewTable()
	scopes := scope.NewTable()
	p := parser.New(ents, scopes, "test.cpp", toks, 1)
	require.NoError(t, p.ParseFile(scope.RootID))
	return ents, scopes
}

func TestExportRendersFunctionAndVariable(t *testing.T) {
	ents, scopes := buildSample(t, "int counter; int add(int a, int b) { return a + b; }")

	var buf strings.Builder
	require.NoError(t, Export(&buf, ents, scopes, scope.RootID))

	out := buf.String()
	assert.Contains(t, out, `<Variable name="counter"`)
	assert.Contains(t, out, `<Function name="add"`)
	assert.Contains(t, out, `<Arg name="a"`)
}

func TestExportRendersNestedClass(t *testing.T) {
	ents, scopes := buildSample(t, "class Foo { public: int x; int getX(); };")

	var buf strings.Builder
	require.NoError(t, Export(&buf, ents, scopes, scope.RootID))

	out := buf.String()
	assert.Contains(t, out, `<Class name="Foo"`)
	assert.Contains(t, out, `<Variable name="x"`)
	assert.Contains(t, out, `<Function name="getX"`)
}

func TestExportRendersEnumValues(t *testing.T) {
	ents, scopes := buildSample(t, "enum Color { Red, Green, Blue = 5 };")

	var buf strings.Builder
	require.NoError(t, Export(&buf, ents, scopes, scope.RootID))

	out := buf.String()
	assert.Contains(t, out, `<Enum name="Color"`)
	assert.Contains(t, out, `<eVal name="Blue" value="5">`)
}
