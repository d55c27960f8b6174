// Package typlex implements the fully-qualified C++ type expression described
// in spec §3/§4.7/§3 "Typlex": base-type handle + indirection + array extent
// + attribute bits + optional template arguments.
//
// Grounded on enforcer.h's class ceTyplex / enum DAttr / enum ceBasis. The
// base type is referenced by the data-type entity's 32-bit id (see
// internal/entity), not a pointer, per the redesign note in spec §9 — this
// also keeps this package free of a dependency on internal/entity.
package typlex

// Basis is the base-kind tag a data-type entity carries (spec §3 "Data-type").
type Basis int

const (
	BasisVoid Basis = iota
	BasisBool
	BasisEnum
	BasisString // "char*"-as-string convenience basis used by literal typing
	BasisDouble
	BasisFloat
	BasisInt8
	BasisInt16
	BasisInt32
	BasisInt64
	BasisUint8
	BasisUint16
	BasisUint32
	BasisUint64
	BasisClass
	BasisUnion
	BasisTemplateArg
	BasisVararg
)

// Attr holds the Typlex attribute bitset from spec §3.
type Attr uint16

const (
	AttrTemplate Attr = 1 << iota
	AttrTemplateArg
	AttrVararg
	AttrStatic
	AttrConst
	AttrSystem
	AttrLiteral
	AttrLiteralZero // usable as any numeric or pointer value
	AttrLValue
	AttrReference
	AttrFnPointer
)

// NoType is the sentinel BaseType meaning "unresolved" (used while a typlex
// is under construction, or for error recovery).
const NoType = ^uint32(0)

// Indir encodes indirection level: 0 = instance, negative = reference-to
// (canonically -1), positive = pointer depth (spec §3).
type Indir int32

const (
	Instance  Indir = 0
	Reference Indir = -1
)

// Typlex is the fully-qualified type expression.
type Typlex struct {
	BaseType  uint32 // entity id of the data-type entity, or NoType
	Basis     Basis  // base kind: set directly for primitives (BaseType NoType), copied from the data-type entity otherwise
	Indir     Indir
	Elements  int // array extent, 0 if not an array
	Attrs     Attr
	Args      []Typlex // template-argument sub-typlexes, or function-pointer arg types when AttrFnPointer is set
}

func (t Typlex) has(a Attr) bool { return t.Attrs&a != 0 }

func (t Typlex) IsTemplate() bool    { return t.has(AttrTemplate) }
func (t Typlex) IsTemplateArg() bool { return t.has(AttrTemplateArg) }
func (t Typlex) IsVararg() bool      { return t.has(AttrVararg) }
func (t Typlex) IsStatic() bool      { return t.has(AttrStatic) }
func (t Typlex) IsConst() bool       { return t.has(AttrConst) }
func (t Typlex) IsSystem() bool      { return t.has(AttrSystem) }
func (t Typlex) IsLiteral() bool     { return t.has(AttrLiteral) }
func (t Typlex) IsLiteralZero() bool { return t.has(AttrLiteralZero) }
func (t Typlex) IsLValue() bool      { return t.has(AttrLValue) }
func (t Typlex) IsReference() bool   { return t.Indir == Reference || t.has(AttrReference) }
func (t Typlex) IsFnPointer() bool   { return t.has(AttrFnPointer) }
func (t Typlex) IsPointer() bool     { return t.Indir > 0 }
func (t Typlex) IsArray() bool       { return t.Elements > 0 }

// Same reports structural equality used for overload-key comparison and
// exact-match scoring (spec §4.11 "exact type match = 5").
func (t Typlex) Same(o Typlex) bool {
	if t.BaseType != o.BaseType || t.Indir != o.Indir || t.Elements != o.Elements {
		return false
	}
	if len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Same(o.Args[i]) {
			return false
		}
	}
	return true
}

// Testset reports whether an actual of typlex o may be passed where t is
// formally expected via an implicit conversion the original's testset rule
// accepts: a literal-zero actual to any pointer formal, or any actual whose
// BaseType equals the formal's when the formal is an instance or a
// reference (the actual's indirection is not compared). Anything stronger
// requires a user cast operator, scored separately by the
// overload-resolution engine.
func (t Typlex) Testset(o Typlex) bool {
	if t.Same(o) {
		return true
	}
	if t.IsPointer() && o.IsLiteralZero() {
		return true
	}
	if (t.Indir == Instance || t.IsReference()) && o.BaseType == t.BaseType {
		return true
	}
	return false
}

// primitiveWordSequence is a multi-word primitive spelling recognized inline
// before identifier lookup (spec §4.8; enriched per SPEC_FULL.md §C.1 from
// enforcer.h's TOK_VTYPE_* family).
type primitiveWordSequence struct {
	words []string
	basis Basis
}

var primitiveWordSequences = []primitiveWordSequence{
	{[]string{"unsigned", "long", "long", "int"}, BasisUint64},
	{[]string{"unsigned", "long", "long"}, BasisUint64},
	{[]string{"long", "long", "int"}, BasisInt64},
	{[]string{"long", "long"}, BasisInt64},
	{[]string{"unsigned", "long", "int"}, BasisUint32},
	{[]string{"unsigned", "long"}, BasisUint32},
	{[]string{"long", "int"}, BasisInt32},
	{[]string{"unsigned", "short", "int"}, BasisUint16},
	{[]string{"unsigned", "short"}, BasisUint16},
	{[]string{"short", "int"}, BasisInt16},
	{[]string{"unsigned", "int"}, BasisUint32},
	{[]string{"unsigned", "char"}, BasisUint8},
	{[]string{"signed", "char"}, BasisInt8},
}

// MatchPrimitiveWords greedily matches the longest known multi-word
// primitive spelling starting at words[0]; returns (basis, wordsConsumed, ok).
func MatchPrimitiveWords(words []string) (Basis, int, bool) {
	for _, seq := range primitiveWordSequences {
		if len(seq.words) > len(words) {
			continue
		}
		match := true
		for i, w := range seq.words {
			if words[i] != w {
				match = false
				break
			}
		}
		if match {
			return seq.basis, len(seq.words), true
		}
	}
	return 0, 0, false
}
