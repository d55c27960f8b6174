package lexer

import "github.com/oxhq/cppdoc/internal/token"

// operatorTable lists every legal operator spelling, longest first, used to
// greedily split a run of operator characters into the longest-legal
// prefix sequence (spec §4.4: "ambiguous runs... are split into the longest-
// legal prefix sequence"). A run matching no prefix at all is a syntax
// error.
var operatorTable = []struct {
	text string
	kind token.Kind
}{
	{"->*", token.OpArrowStar},
	{"::~", token.OpScopeDtor},
	{"<<=", token.OpLShiftEq},
	{">>=", token.OpRShiftEq},
	{"...", token.Ellipsis},

	{"::", token.OpScope},
	{"->", token.OpArrow},
	{"++", token.OpIncr},
	{"--", token.OpDecr},
	{"+=", token.OpPlusEq},
	{"-=", token.OpMinusEq},
	{"*=", token.OpMultEq},
	{"/=", token.OpDivEq},
	{"%=", token.OpRemEq},
	{"<<", token.OpLShift},
	{">>", token.OpRShift},
	{"<=", token.OpLessEq},
	{">=", token.OpMoreEq},
	{"==", token.OpTestEq},
	{"!=", token.OpNotEq},
	{"&&", token.OpCondAnd},
	{"||", token.OpCondOr},
	{"&=", token.OpAndEq},
	{"|=", token.OpOrEq},
	{"^=", token.OpXorEq},
	{".*", token.OpMembPtr},

	{"+", token.OpPlus},
	{"-", token.OpMinus},
	{"*", token.OpMult},
	{"/", token.OpDiv},
	{"%", token.OpRem},
	{"<", token.OpLess},
	{">", token.OpMore},
	{"=", token.OpEq},
	{"!", token.OpNot},
	{"~", token.OpInvert},
	{"&", token.OpAnd},
	{"|", token.OpOr},
	{"^", token.OpXor},
	{".", token.OpPeriod},
	{"?", token.OpQuery},
	{":", token.OpColon},
}

// splitOperatorRun consumes the longest legal operator prefix of run and
// returns its Kind, text, and how many bytes were consumed. ok is false if
// no prefix matches (illegal operator sequence, spec §7 lex error).
func splitOperatorRun(run string) (kind token.Kind, text string, n int, ok bool) {
	for _, e := range operatorTable {
		if len(e.text) <= len(run) && run[:len(e.text)] == e.text {
			return e.kind, e.text, len(e.text), true
		}
	}
	return 0, "", 0, false
}
