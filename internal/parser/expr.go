package parser

import (
	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/token"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// precedence gives each binary/unary operator kind its C++ binding
// strength for a simple precedence-climbing expression scan (spec §4.12
// "assessExpr"), highest number binds tightest. Operators absent from
// this table are treated as expression boundaries (commas, assignment
// chains are handled separately at the statement level).
var precedence = map[token.Kind]int{
	token.OpCondOr:  1,
	token.OpCondAnd: 2,
	token.OpOr:      3,
	token.OpXor:     4,
	token.OpAnd:     5,
	token.OpTestEq:  6,
	token.OpNotEq:   6,
	token.OpLess:    7,
	token.OpLessEq:  7,
	token.OpMore:    7,
	token.OpMoreEq:  7,
	token.OpLShift:  8,
	token.OpRShift:  8,
	token.OpPlus:    9,
	token.OpMinus:   9,
	token.OpMult:    10,
	token.OpDiv:     10,
	token.OpRem:     10,
}

// AssessExpr scans a flat token run [start,end) for its outermost binary
// operator structure (spec §4.12: "expression assessment"); neither the
// parser nor ResolveOverload calls it. It returns the index of
// the lowest-precedence (outermost) operator at paren-depth 0, or -1 if
// the run contains none — i.e. it is a single operand.
func AssessExpr(toks []token.Token, start, end int) int {
	depth := 0
	best := -1
	bestPrec := 1 << 30
	for i := start; i < end; i++ {
		switch toks[i].Kind {
		case token.RoundOpen, token.SquareOpen:
			depth++
		case token.RoundClose, token.SquareClose:
			depth--
		default:
			if depth != 0 {
				continue
			}
			if prec, ok := precedence[toks[i].Kind]; ok && prec <= bestPrec {
				bestPrec = prec
				best = i
			}
		}
	}
	return best
}

// ScoreArg scores how well an actual-argument typlex satisfies a formal
// parameter typlex, per spec §4.11's overload-resolution weights: 5 for
// an exact type match, 4 for an accepted implicit conversion, 1 for a
// vararg/void* catch-all, 0 for no match at all.
func ScoreArg(formal, actual typlex.Typlex) int {
	if formal.Same(actual) {
		return 5
	}
	if formal.Testset(actual) {
		return 4
	}
	if formal.IsVararg() {
		return 1
	}
	if formal.IsPointer() && formal.BaseType == typlex.NoType {
		return 1 // void* accepts anything
	}
	return 0
}

// ScoreCall scores a candidate function against a supplied actual-argument
// typlex list: the sum of each position's ScoreArg, or -1 if the call is
// inadmissible (wrong arity for a non-variadic function, or any position
// scores 0).
func ScoreCall(ents *entity.Table, fn *entity.Entity, actuals []typlex.Typlex) int {
	if len(actuals) < fn.MinArgs {
		return -1
	}
	variadic := len(fn.Args) > 0 && ents.Get(fn.Args[len(fn.Args)-1]).Typ.IsVararg()
	if !variadic && len(actuals) > len(fn.Args) {
		return -1
	}

	total := 0
	for i, actual := range actuals {
		if i >= len(fn.Args) {
			total += 1 // extra args matched by the trailing vararg
			continue
		}
		formal := ents.Get(fn.Args[i]).Typ
		s := ScoreArg(formal, actual)
		if s == 0 {
			return -1
		}
		total += s
	}
	return total
}

// ResolveOverload picks the best-scoring candidate from a function-group's
// overload set for a call site's actual-argument types (spec §4.11:
// "ambiguous if two or more candidates tie for the best score"). ok is
// false if no candidate is admissible; chain receives a WARNING on a tie.
func ResolveOverload(ents *entity.Table, candidates []uint32, actuals []typlex.Typlex, file string, line int, chain *diag.Chain) (uint32, bool) {
	best := entity.None
	bestScore := -1
	tie := false
	for _, id := range candidates {
		fn := ents.Get(id)
		s := ScoreCall(ents, fn, actuals)
		if s < 0 {
			continue
		}
		if s > bestScore {
			bestScore = s
			best = id
			tie = false
		} else if s == bestScore {
			tie = true
		}
	}
	if best == entity.None {
		return entity.None, false
	}
	if tie && chain != nil {
		chain.Append(diag.New(diag.Warning, diag.EAmbiguous, "ResolveOverload", file, line, 0,
			"ambiguous call: multiple overloads score %d, picking first match", bestScore))
	}
	return best, true
}
