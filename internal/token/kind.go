// Package token defines the closed lexical-kind enumeration and the Token
// value the lexer, preprocessor and parser pass around.
//
// Kind reproduces the category-mask-in-high-bits scheme of the original
// C++ tool's CppLex enum: each category occupies its own high bit so that
// membership testing is a single mask-and-compare, and the low 16 bits
// distinguish members within a category.
package token

// Kind is a closed lexical category. The high bits (bit 16 and up) encode
// the category mask; the low bits enumerate members within it.
type Kind uint32

const (
	catStructural       Kind = 0
	catLiteral          Kind = 1 << 16
	catComment          Kind = 1 << 17
	catDirective        Kind = 1 << 18
	catKeyword          Kind = 1 << 19
	catValueType        Kind = 1 << 20
	catStructOp         Kind = 1 << 21
	catCommand          Kind = 1 << 22
	catUnaryOp          Kind = 1 << 23
	catAssignOp         Kind = 1 << 24
	catConditionOp      Kind = 1 << 25
	catAdditiveOp       Kind = 1 << 26
	catMultiplicativeOp Kind = 1 << 27
	catLogicalOp        Kind = 1 << 28
)

const catMask = catLiteral | catComment | catDirective | catKeyword | catValueType |
	catStructOp | catCommand | catUnaryOp | catAssignOp | catConditionOp |
	catAdditiveOp | catMultiplicativeOp | catLogicalOp

// Structural / punctuation (no category bit set).
const (
	Unknown Kind = catStructural | iota
	Word
	SquareOpen
	SquareClose
	RoundOpen
	RoundClose
	CurlyOpen
	CurlyClose
	Sep       // ,
	End       // ;
	Escape    // backslash
	Ellipsis  // ...
	Backtick  // unused placeholder, kept for table symmetry with the original
)

// Literals.
const (
	Quote   Kind = catLiteral | iota // "..."
	SChar                           // '...'
	Number                          // decimal integer
	StdNum                          // standard-form / double
	OctNum                          // octal integer
	HexNum                          // hexadecimal integer
	Boolean                         // true/false
)

// Comments.
const (
	Comment Kind = catComment | iota
)

// Directives.
const (
	DirIf Kind = catDirective | iota
	DirElse
	DirElseif
	DirEndif
	DirIfdef
	DirIfndef
	DirDefine
	DirUndef
	DirInclude
)

// Structural keywords.
const (
	KwClass Kind = catKeyword | iota
	KwStruct
	KwUnion
	KwEnum
	KwTypedef
	KwTemplate
	KwNamespace
	KwUsing
	KwInline
	KwStatic
	KwExtern
	KwFriend
	KwRegister
	KwVirtual
	KwMutable
	KwConst
	KwPublic
	KwPrivate
	KwProtected
	KwOperator
)

// Value-type keywords.
const (
	VtVoid Kind = catValueType | iota
	VtChar
	VtShort
	VtInt
	VtLong
	VtUnsigned
	VtBool
	VtDouble
	VtFloat
)

// Commands.
const (
	CmdIf Kind = catCommand | iota
	CmdElse
	CmdSwitch
	CmdCase
	CmdDefault
	CmdFor
	CmdDo
	CmdWhile
	CmdBreak
	CmdContinue
	CmdGoto
	CmdReturn
	CmdNew
	CmdDelete
)

// Structural operators.
const (
	OpScope Kind = catStructOp | iota // ::
	OpScopeDtor                      // ::~
	OpArrow                          // ->
	OpArrowStar                      // ->*
	OpPeriod                         // .
	OpQuery                          // ?
	OpColon                          // :
	OpThis                           // this
	OpSizeof                         // sizeof
	OpDynCast                        // dynamic_cast
	OpMembPtr                        // .*
)

// Unary operators.
const (
	OpIncr Kind = catUnaryOp | iota // ++
	OpDecr                         // --
	OpNot                          // !
	OpInvert                       // ~
)

// Assignment operators.
const (
	OpEq Kind = catAssignOp | iota // =
	OpPlusEq
	OpMinusEq
	OpMultEq
	OpDivEq
	OpRemEq
	OpAndEq
	OpOrEq
	OpXorEq
	OpLShiftEq
	OpRShiftEq
)

// Condition operators.
const (
	OpLessEq Kind = catConditionOp | iota
	OpLess
	OpMoreEq
	OpMore
	OpTestEq
	OpNotEq
	OpCondAnd
	OpCondOr
)

// Additive (unary-or-binary) operators.
const (
	OpPlus Kind = catAdditiveOp | iota
	OpMinus
)

// Multiplicative operators.
const (
	OpMult Kind = catMultiplicativeOp | iota
	OpDiv
	OpLShift
	OpRShift
	OpRem
)

// Logical (bitwise) operators.
const (
	OpAnd Kind = catLogicalOp | iota // &
	OpOr                            // |
	OpXor                            // ^
)

func (k Kind) category() Kind { return k & catMask }

func (k Kind) IsLiteral() bool     { return k.category() == catLiteral }
func (k Kind) IsComment() bool     { return k.category() == catComment }
func (k Kind) IsDirective() bool   { return k.category() == catDirective }
func (k Kind) IsStructKw() bool    { return k.category() == catKeyword }
func (k Kind) IsVtype() bool       { return k.category() == catValueType }
func (k Kind) IsCommand() bool     { return k.category() == catCommand }
func (k Kind) IsOpStruct() bool    { return k.category() == catStructOp }
func (k Kind) IsOpUnary() bool     { return k.category() == catUnaryOp }
func (k Kind) IsOpAssign() bool    { return k.category() == catAssignOp }
func (k Kind) IsOpCond() bool      { return k.category() == catConditionOp }
func (k Kind) IsOpAddSub() bool    { return k.category() == catAdditiveOp }
func (k Kind) IsOpMultDiv() bool   { return k.category() == catMultiplicativeOp }
func (k Kind) IsOpLogical() bool   { return k.category() == catLogicalOp }

// IsKeyword reports whether k is any reserved word (structural keyword,
// value-type keyword or command), as opposed to a plain identifier.
func (k Kind) IsKeyword() bool {
	return k.IsStructKw() || k.IsVtype() || k.IsCommand()
}

// IsOperator reports whether k belongs to any operator category.
func (k Kind) IsOperator() bool {
	switch k.category() {
	case catStructOp, catUnaryOp, catAssignOp, catConditionOp,
		catAdditiveOp, catMultiplicativeOp, catLogicalOp:
		return true
	default:
		return false
	}
}

// keywords maps the reserved-word spelling to its Kind, used by the lexer
// after scanning a plain Word to reclassify it.
var keywords = map[string]Kind{
	"class": KwClass, "struct": KwStruct, "union": KwUnion, "enum": KwEnum,
	"typedef": KwTypedef, "template": KwTemplate, "namespace": KwNamespace,
	"using": KwUsing, "inline": KwInline, "static": KwStatic, "extern": KwExtern,
	"friend": KwFriend, "register": KwRegister, "virtual": KwVirtual,
	"mutable": KwMutable, "const": KwConst, "public": KwPublic,
	"private": KwPrivate, "protected": KwProtected, "operator": KwOperator,

	"void": VtVoid, "char": VtChar, "short": VtShort, "int": VtInt,
	"long": VtLong, "unsigned": VtUnsigned, "bool": VtBool, "double": VtDouble,
	"float": VtFloat,

	"if": CmdIf, "else": CmdElse, "switch": CmdSwitch, "case": CmdCase,
	"default": CmdDefault, "for": CmdFor, "do": CmdDo, "while": CmdWhile,
	"break": CmdBreak, "continue": CmdContinue, "goto": CmdGoto,
	"return": CmdReturn, "new": CmdNew, "delete": CmdDelete,

	"this": OpThis, "sizeof": OpSizeof, "dynamic_cast": OpDynCast,

	"true": Boolean, "false": Boolean,
}

// LookupKeyword returns the Kind for a reserved word, and ok=false if s is
// a plain identifier.
func LookupKeyword(s string) (Kind, bool) {
	k, ok := keywords[s]
	return k, ok
}

// directives maps a preprocessor directive spelling (without the '#') to its Kind.
var directives = map[string]Kind{
	"if": DirIf, "else": DirElse, "elseif": DirElseif, "endif": DirEndif,
	"ifdef": DirIfdef, "ifndef": DirIfndef, "define": DirDefine,
	"undef": DirUndef, "include": DirInclude,
}

func LookupDirective(s string) (Kind, bool) {
	k, ok := directives[s]
	return k, ok
}

// String returns a human-readable name for k, used in diagnostics.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var names = func() map[Kind]string {
	m := map[Kind]string{
		Unknown: "UNKNOWN", Word: "WORD", SquareOpen: "[", SquareClose: "]",
		RoundOpen: "(", RoundClose: ")", CurlyOpen: "{", CurlyClose: "}",
		Sep: ",", End: ";", Escape: "\\", Ellipsis: "...",
		Quote: "STRING", SChar: "CHAR", Number: "INT", StdNum: "DOUBLE",
		OctNum: "OCT", HexNum: "HEX", Boolean: "BOOL", Comment: "COMMENT",
		DirIf: "#if", DirElse: "#else", DirElseif: "#elseif", DirEndif: "#endif",
		DirIfdef: "#ifdef", DirIfndef: "#ifndef", DirDefine: "#define",
		DirUndef: "#undef", DirInclude: "#include",
	}
	for s, k := range keywords {
		if _, exists := m[k]; !exists {
			m[k] = s
		}
	}
	ops := map[Kind]string{
		OpScope: "::", OpScopeDtor: "::~", OpArrow: "->", OpArrowStar: "->*",
		OpPeriod: ".", OpQuery: "?", OpColon: ":", OpMembPtr: ".*",
		OpIncr: "++", OpDecr: "--", OpNot: "!", OpInvert: "~",
		OpEq: "=", OpPlusEq: "+=", OpMinusEq: "-=", OpMultEq: "*=",
		OpDivEq: "/=", OpRemEq: "%=", OpAndEq: "&=", OpOrEq: "|=",
		OpXorEq: "^=", OpLShiftEq: "<<=", OpRShiftEq: ">>=",
		OpLessEq: "<=", OpLess: "<", OpMoreEq: ">=", OpMore: ">",
		OpTestEq: "==", OpNotEq: "!=", OpCondAnd: "&&", OpCondOr: "||",
		OpPlus: "+", OpMinus: "-", OpMult: "*", OpDiv: "/", OpLShift: "<<",
		OpRShift: ">>", OpRem: "%", OpAnd: "&", OpOr: "|", OpXor: "^",
	}
	for k, s := range ops {
		m[k] = s
	}
	return m
}()
