package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/intern"
	"github.com/oxhq/cppdoc/internal/lexer"
	"github.com/oxhq/cppdoc/internal/scope"
	"github.com/oxhq/cppdoc/internal/token"
)

func newPreproc() (*Preprocessor, *entity.Table, *scope.Table) {
	ents := entity.NewTable()
	scopes := scope.NewTable()
	p := New(ents, scopes, nil, scope.RootID)
	return p, ents, scopes
}

func lexSrc(t *testing.T, src string) []token.Token {
	t.Helper()
	lx := lexer.New(intern.New(), "test.cpp", 4)
	toks, err := lx.Lex([]byte(src))
	require.NoError(t, err)
	return toks
}

func TestDefineLiteralExpansion(t *testing.T) {
	p, _, _ := newPreproc()
	raw := lexSrc(t, "#define BLKSIZE 4096\nint x = BLKSIZE;")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	var words []string
	for _, tk := range active {
		words = append(words, tk.Text)
	}
	assert.Contains(t, words, "4096")
	assert.NotContains(t, words, "BLKSIZE")
}

func TestIfZeroExcludesBlock(t *testing.T) {
	p, _, _ := newPreproc()
	raw := lexSrc(t, "a; #if 0\nb;\n#endif\nc;")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	var words []string
	for _, tk := range active {
		if tk.Text != "" {
			words = append(words, tk.Text)
		}
	}
	assert.NotContains(t, words, "b")
	assert.Contains(t, words, "a")
	assert.Contains(t, words, "c")
}

func TestIfdefUndefinedExcludes(t *testing.T) {
	p, _, _ := newPreproc()
	raw := lexSrc(t, "#ifdef NOPE\nx;\n#else\ny;\n#endif\n")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	var words []string
	for _, tk := range active {
		words = append(words, tk.Text)
	}
	assert.Contains(t, words, "y")
	assert.NotContains(t, words, "x")
}

func TestMacroExpansion(t *testing.T) {
	p, _, _ := newPreproc()
	raw := lexSrc(t, "#define MAX(a,b) a>b?a:b\nhi = MAX(hi,curr);")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	var words []string
	for _, tk := range active {
		words = append(words, tk.Text)
	}
	assert.Contains(t, words, "hi")
	assert.Contains(t, words, "curr")
}

func TestDefineWithParensButNoFormalReferenceDemotesToPlainDefine(t *testing.T) {
	p, ents, scopes := newPreproc()
	raw := lexSrc(t, "#define F(x) 42\nint y = F(q);")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	id, ok := scopes.LookupLocal(scope.RootID, "F")
	require.True(t, ok)
	assert.Equal(t, entity.KindDefine, ents.Get(id).Kind)

	var words []string
	for _, tk := range active {
		words = append(words, tk.Text)
	}
	// F expands to its literal "(x) 42" text verbatim, then the call's own
	// "(q)" remains untouched since F is not a macro.
	assert.Contains(t, words, "42")
	assert.Contains(t, words, "q")
}

func TestMacroCallWithNestedMacroInActualIsExpandedBeforeSubstitution(t *testing.T) {
	p, _, _ := newPreproc()
	raw := lexSrc(t, "#define SQ(a) a*a\n#define DOUBLE(x) x+x\nint y = SQ(DOUBLE(v));")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	var words []string
	for _, tk := range active {
		words = append(words, tk.Text)
	}
	assert.NotContains(t, words, "DOUBLE")
	assert.Contains(t, words, "v")
	assert.Contains(t, words, "+")
}

func TestSelfReferentialMacroDoesNotLoop(t *testing.T) {
	p, _, _ := newPreproc()
	raw := lexSrc(t, "#define LOOP(a) LOOP(a)\nint y = LOOP(v);")
	active, err := p.Run("test.cpp", raw, 0)
	require.NoError(t, err)

	var words []string
	for _, tk := range active {
		words = append(words, tk.Text)
	}
	assert.Contains(t, words, "LOOP")
	assert.Contains(t, words, "v")
}
