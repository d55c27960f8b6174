// Package entity implements the tagged-variant entity model of spec §3:
// every declared C++ thing (namespace, class, union, enum, variable,
// function, macro, #define, ...) is an Entity, addressed by a stable 32-bit
// id rather than a pointer (spec §9 "arena-allocated entities addressed by
// stable 32-bit ids; cross-references are id fields, not pointers").
//
// Grounded on enforcer.h's ceEntity / ceDatatype / ceReal hierarchy
// (ceNamsp, ceClass, ceUnion->ceKlass, ceEnum, ceEnumval, ceTarg, ceCStd,
// ceVar, ceFunc, ceFngrp, ceFnset, and the #define/Macro/Literal variants),
// redesigned per spec §9 as one flat struct with a Kind discriminant instead
// of a polymorphic class hierarchy with dynamic_cast.
package entity

import (
	"github.com/oxhq/cppdoc/internal/token"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// None is the sentinel id meaning "no entity" for optional id fields
// (BaseClass, ParentClass, Group, Set, Host, ...).
const None = ^uint32(0)

// Kind discriminates the entity variants of spec §3.
type Kind int

const (
	KindNamespace Kind = iota
	KindClass          // also covers struct; see Attr.Struct
	KindUnion
	KindEnum
	KindEnumValue
	KindTemplateArg
	KindStandardType
	KindTypedef
	KindVariable
	KindFunction
	KindFunctionGroup
	KindFunctionSet
	KindMacro
	KindDefine
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "Namespace"
	case KindClass:
		return "Class"
	case KindUnion:
		return "Union"
	case KindEnum:
		return "Enum"
	case KindEnumValue:
		return "EnumValue"
	case KindTemplateArg:
		return "TemplateArg"
	case KindStandardType:
		return "StandardType"
	case KindTypedef:
		return "Typedef"
	case KindVariable:
		return "Variable"
	case KindFunction:
		return "Function"
	case KindFunctionGroup:
		return "FunctionGroup"
	case KindFunctionSet:
		return "FunctionSet"
	case KindMacro:
		return "Macro"
	case KindDefine:
		return "Define"
	case KindLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// IsType reports whether Kind is one of the data-type variants (spec §3
// "Data-type (abstract)"); replaces the original's virtual IsType().
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindUnion, KindEnum, KindTemplateArg, KindStandardType, KindTypedef:
		return true
	default:
		return false
	}
}

// IsReal reports whether Kind is one of the "real" (valued) variants (spec
// §3 "Real (abstract)"); replaces the original's virtual IsReal().
func (k Kind) IsReal() bool {
	switch k {
	case KindVariable, KindEnumValue, KindFunction:
		return true
	default:
		return false
	}
}

// Scope is the scope classifier carried by every entity (spec §3).
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeFileStatic
	ScopeFunctionLocal
	ScopePrivate
	ScopeProtected
	ScopePublic
)

// Attr is the entity attribute bitset (spec §3).
type Attr uint32

const (
	AttrConstructor Attr = 1 << iota
	AttrDestructor
	AttrOperator
	AttrTemplate
	AttrFriend
	AttrInline
	AttrStatic
	AttrVirtual
	AttrConst
	AttrPrintable // eligible for documentation output
	AttrPrintDone // already-emitted marker; nothing in this module sets or reads it (SPEC_FULL.md §C.3)
	AttrInternal  // identifiers with leading underscore, or declared in a system-include
	AttrAbstract
	AttrStruct // struct vs class (CL_ATTR_STRUCT in the original)
	AttrGlobalFn
	AttrStdFunc
	AttrVariadic
	AttrPureVirtual
	AttrDeclaredInSystem // SPEC_FULL.md §C.5: forward-declared while systemMask was set
)

func (a Attr) Has(f Attr) bool { return a&f != 0 }

// Description is one argument or return-value description line recovered
// from a structured comment (spec §4.13 item 2).
type Description struct {
	Key  string // argument name, or a returns-block keyword like "True"/"Pointer"
	Text string
}

// StmtKind is the closed statement-kind enumeration (spec §4.11), grounded
// on enforcer.h's enum SType.
type StmtKind int

const (
	StmtLabel StmtKind = iota
	StmtBreak
	StmtContinue
	StmtGoto
	StmtReturn
	StmtDelete
	StmtIf
	StmtSwitch
	StmtCase
	StmtDefault
	StmtFor
	StmtWhile
	StmtDoWhile
	StmtBlock
	StmtExpr // assignment, increment/decrement, call, or other bare expression
)

// Statement is one parsed function-body statement (spec §4.11: "kind,
// source line, token span, and code-nesting level").
type Statement struct {
	Kind       StmtKind
	Line       int
	Start, End uint32 // token span, indices into the active stream
	Level      uint32 // code nesting level at the statement's start
	IsReturn   bool   // counts toward the return-point validator
}

// Entity is the single flat representation of every spec §3 variant. Only
// the fields relevant to Kind are meaningful; unused fields stay zero. This
// plays the role the redesign note in spec §9 assigns to "a tagged variant
// (sum type) whose kind() discriminant selects the variant data" — a single
// addressable struct rather than a class hierarchy, since cross-references
// here are ids into an Entities table (see table.go), not pointers.
type Entity struct {
	ID        uint32
	Kind      Kind
	Name      uint32 // interned identifier
	NameText  string // denormalized for diagnostics/export
	FQName    string
	Scope     Scope
	Component uint32 // owning component id
	Attrs     Attr
	Desc      string

	// --- Data-type common (Class, Union, Enum, TemplateArg, StandardType, Typedef) ---
	Basis     typlex.Basis
	Operators []uint32 // operator-function entity ids

	// --- Namespace / Class / Union (owned scope) ---
	ScopeTable uint32 // id of this entity's owned scope.Scope (see internal/scope)

	// --- Class ---
	BaseClass    uint32 // None if no base
	ParentClass  uint32 // None if not nested
	Members      []uint32 // member variable and member function entity ids, declaration order
	TemplateArgs []uint32
	FileDef      uint32
	BodyStart    uint32
	BodyEnd      uint32
	Friends      []uint32

	// --- Union ---
	Host uint32 // None if anonymous/free-standing

	// --- Enum ---
	ValuesByName map[string]uint32
	ValuesByNum  map[int32]uint32
	OrderedVals  []uint32

	// --- TemplateArg ---
	Ordinal int

	// --- Typedef ---
	Resolution typlex.Typlex

	// --- Variable / EnumValue / Function (Real) ---
	Typ typlex.Typlex

	// --- Variable ---
	ParentOwner uint32 // owning class, None for free variables
	FileDecl    uint32
	Literal     *LiteralValue

	// --- EnumValue ---
	ParentEnum uint32
	NumVal     int32
	TextVal    string

	// --- Function ---
	Args         []uint32 // Variable entity ids, declaration order
	ArgDesc      []Description
	RetDesc      []Description
	Statements   []Statement
	Group        uint32 // None if standalone
	Set          uint32 // None if not in a function set
	MinArgs      int
	ExtendedName string // "name(typlex1,typlex2,...)" overload key
	DeclFile     string // file the declaration was first seen in (spec §4.9 S2)
	DefFile      string // file the body was parsed from; "" if undefined

	// --- FunctionGroup / FunctionSet ---
	GroupMembers []uint32
	GroupDesc    string

	// --- Macro / Define ---
	FormalArgs []string
	Ersatz     []ErsatzToken

	// --- Literal (promoted #define, or inline literal) ---
	LitValue *LiteralValue
}

// LiteralValue carries a statically-derivable constant (spec §3 "Literal";
// §3 "Variable: ... optional literal value for extern constants and
// defaults").
type LiteralValue struct {
	Basis typlex.Basis
	Text  string
}

// ErsatzToken is one token of a macro/#define's replacement sequence,
// tagged with the formal-argument ordinal it stands for (-1 if none) per
// spec §3 "Macro" and §4.5.
type ErsatzToken struct {
	Kind       token.Kind
	Text       string
	ArgOrdinal int
}
