package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/intern"
	"github.com/oxhq/cppdoc/internal/lexer"
	"github.com/oxhq/cppdoc/internal/scope"
	"github.com/oxhq/cppdoc/internal/typlex"
)

func newParser(t *testing.T, src string) (*Parser, *entity.Table, *scope.Table) {
	t.Helper()
	lx := lexer.New(intern.New(), "test.cpp", 4)
	toks, err := lx.Lex([]byte(src))
	require.NoError(t, err)
	ents := entity.NewTable()
	scopes := scope.NewTable()
	return New(ents, scopes, "test.cpp", toks, 1), ents, scopes
}

func TestParseClassWithMembers(t *testing.T) {
	p, ents, scopes := newParser(t, "class Foo { public: int x; int getX(); };")
	err := p.ParseFile(scope.RootID)
	require.NoError(t, err)

	id, ok := scopes.LookupLocal(scope.RootID, "Foo")
	require.True(t, ok)
	e := ents.Get(id)
	assert.Equal(t, entity.KindClass, e.Kind)
	assert.Len(t, e.Members, 2)
}

func TestParseClassMemberBodyDeferredThenFlushed(t *testing.T) {
	p, ents, scopes := newParser(t, "class Foo { public: int getX() { return 1; } };")
	err := p.ParseFile(scope.RootID)
	require.NoError(t, err)
	assert.Empty(t, p.Deferred)

	classID, ok := scopes.LookupLocal(scope.RootID, "Foo")
	require.True(t, ok)
	class := ents.Get(classID)
	require.Len(t, class.Members, 1)

	fn := ents.Get(class.Members[0])
	require.Len(t, fn.Statements, 1)
	assert.Equal(t, entity.StmtReturn, fn.Statements[0].Kind)
}

func TestParseOutOfClassMemberDefinitionAttachesToDeclaration(t *testing.T) {
	p, ents, scopes := newParser(t,
		"class A { public: int f(int a); }; int A::f(int a) { return a + 1; }")
	err := p.ParseFile(scope.RootID)
	require.NoError(t, err)

	classID, ok := scopes.LookupLocal(scope.RootID, "A")
	require.True(t, ok)
	class := ents.Get(classID)
	require.Len(t, class.Members, 1, "the out-of-class definition must attach to the existing declaration, not add a second member")

	fn := ents.Get(class.Members[0])
	assert.Equal(t, "f", fn.NameText)
	assert.Equal(t, "test.cpp", fn.DeclFile)
	assert.Equal(t, "test.cpp", fn.DefFile)
	require.Len(t, fn.Statements, 1)
	assert.Equal(t, entity.StmtReturn, fn.Statements[0].Kind)
}

func TestParseEnumValues(t *testing.T) {
	p, ents, scopes := newParser(t, "enum Color { Red, Green, Blue = 5 };")
	err := p.ParseFile(scope.RootID)
	require.NoError(t, err)

	id, ok := scopes.LookupLocal(scope.RootID, "Color")
	require.True(t, ok)
	e := ents.Get(id)
	assert.Len(t, e.OrderedVals, 3)
	blueID := e.ValuesByName["Blue"]
	assert.Equal(t, int32(5), ents.Get(blueID).NumVal)
}

func TestParseFunctionDefinitionBody(t *testing.T) {
	p, ents, scopes := newParser(t, "int add(int a, int b) { return a + b; }")
	err := p.ParseFile(scope.RootID)
	require.NoError(t, err)

	id, ok := scopes.LookupLocal(scope.RootID, "add")
	require.True(t, ok)
	e := ents.Get(id)
	assert.Len(t, e.Args, 2)
	require.Len(t, e.Statements, 1)
	assert.Equal(t, entity.StmtReturn, e.Statements[0].Kind)
	assert.True(t, e.Statements[0].IsReturn)
}

func TestOverloadExtendedNameDistinguishesArity(t *testing.T) {
	p, ents, scopes := newParser(t, "void f(int a); void f(int a, int b);")
	err := p.ParseFile(scope.RootID)
	require.NoError(t, err)

	overloads := scopes.Get(scope.RootID).Overloads("f")
	require.Len(t, overloads, 2)
	assert.NotEqual(t, ents.Get(overloads[0]).ExtendedName, ents.Get(overloads[1]).ExtendedName)
}

func TestScoreArgExactMatch(t *testing.T) {
	tp := typlex.Typlex{BaseType: 7}
	assert.Equal(t, 5, ScoreArg(tp, tp))
}

func TestScoreArgNoMatch(t *testing.T) {
	a := typlex.Typlex{BaseType: 7}
	b := typlex.Typlex{BaseType: 8}
	assert.Equal(t, 0, ScoreArg(a, b))
}

func TestResolveOverloadPicksHigherScore(t *testing.T) {
	ents := entity.NewTable()
	intType := ents.New(entity.KindStandardType)
	f1 := ents.New(entity.KindFunction)
	a1 := ents.New(entity.KindVariable)
	ents.Get(a1).Typ = typlex.Typlex{BaseType: intType, Indir: 1}
	ents.Get(f1).Args = []uint32{a1}
	ents.Get(f1).MinArgs = 1

	id, ok := ResolveOverload(ents, []uint32{f1}, []typlex.Typlex{{BaseType: intType, Indir: 1}}, "test.cpp", 1, nil)
	require.True(t, ok)
	assert.Equal(t, f1, id)
}

func TestAssessExprFindsOutermostOperator(t *testing.T) {
	p, _, _ := newParser(t, "a + b * c;")
	idx := AssessExpr(p.Toks, 0, 5)
	assert.Equal(t, 1, idx) // the '+' at index 1 binds loosest
}
