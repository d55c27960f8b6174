package parser

import (
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/token"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// vtypeWords maps a VtXxx keyword token to its spelling, used to collect a
// run of value-type keywords for multi-word primitive matching (spec
// §4.7, grounded on enforcer.h's TOK_VTYPE_* scan in getTyplex).
var vtypeWords = map[token.Kind]string{
	token.VtVoid: "void", token.VtChar: "char", token.VtShort: "short",
	token.VtInt: "int", token.VtLong: "long", token.VtUnsigned: "unsigned",
	token.VtBool: "bool", token.VtDouble: "double", token.VtFloat: "float",
}

var singleWordBasis = map[string]typlex.Basis{
	"void": typlex.BasisVoid, "bool": typlex.BasisBool, "double": typlex.BasisDouble,
	"float": typlex.BasisFloat, "char": typlex.BasisInt8, "int": typlex.BasisInt32,
	"short": typlex.BasisInt16, "long": typlex.BasisInt64, "unsigned": typlex.BasisUint32,
}

// GetTyplex implements spec §4.7: parses a fully-qualified type expression
// starting at pos — const/static qualifiers, a base type (multi-word
// primitive, or a named class/enum/typedef/template-arg resolved through
// scopeID), and pointer/reference indirection — and returns the Typlex
// plus the index just past it. An array extent follows the declarator
// name and is read separately by getArrayExtent.
func GetTyplex(p *Parser, scopeID uint32, pos int) (typlex.Typlex, int, error) {
	var t typlex.Typlex
	t.BaseType = typlex.NoType

	for pos < len(p.Toks) {
		switch p.Toks[pos].Kind {
		case token.KwConst:
			t.Attrs |= typlex.AttrConst
			pos++
			continue
		case token.KwStatic:
			t.Attrs |= typlex.AttrStatic
			pos++
			continue
		}
		break
	}

	if pos >= len(p.Toks) {
		return t, pos, p.errf(pos, "expected a type")
	}

	if word, ok := vtypeWords[p.Toks[pos].Kind]; ok {
		var words []string
		start := pos
		for pos < len(p.Toks) {
			w, ok := vtypeWords[p.Toks[pos].Kind]
			if !ok {
				break
			}
			words = append(words, w)
			pos++
		}
		if basis, n, ok := typlex.MatchPrimitiveWords(words); ok {
			t.Basis = basis
			pos = start + n
		} else {
			t.Basis = singleWordBasis[word]
			pos = start + 1
		}
	} else if p.Toks[pos].Kind == token.Word {
		names, next := collectQualifiedName(p.Toks, pos)
		id, ok := p.Resolver.LookupString(joinQualified(names), entity.None, p.Using)
		if !ok {
			return t, pos, p.errf(pos, "unknown type %s", joinQualified(names))
		}
		t.BaseType = id
		pos = next
		e := p.Entities.Get(id)
		if e.Kind == entity.KindTypedef {
			t.Basis = e.Resolution.Basis
		} else if e.Kind.IsType() {
			t.Basis = e.Basis
		}

		// Template arguments: Name<arg1, arg2>
		if pos < len(p.Toks) && p.Toks[pos].Kind == token.OpLess {
			t.Attrs |= typlex.AttrTemplate
			pos++
			for {
				argT, nextPos, err := GetTyplex(p, scopeID, pos)
				if err != nil {
					break
				}
				t.Args = append(t.Args, argT)
				pos = nextPos
				if pos < len(p.Toks) && p.Toks[pos].Kind == token.Sep {
					pos++
					continue
				}
				break
			}
			if pos < len(p.Toks) && p.Toks[pos].Kind == token.OpMore {
				pos++
			}
		}
	} else {
		return t, pos, p.errf(pos, "expected a type")
	}

	for pos < len(p.Toks) && p.Toks[pos].Kind == token.OpMult {
		t.Indir++
		pos++
	}
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.OpAnd {
		t.Indir = typlex.Reference
		t.Attrs |= typlex.AttrReference
		pos++
	}

	return t, pos, nil
}

// getArrayExtent parses an optional "[N]" suffix following a declarator
// name, returning the element count (0 if absent) and the index past it.
func getArrayExtent(toks []token.Token, pos int) (int, int) {
	if pos >= len(toks) || toks[pos].Kind != token.SquareOpen {
		return 0, pos
	}
	close := pos
	if toks[pos].HasPartner() {
		close = int(toks[pos].Partner)
	}
	n := 0
	if pos+1 < close && toks[pos+1].Kind == token.Number {
		for _, c := range toks[pos+1].Text {
			n = n*10 + int(c-'0')
		}
	}
	return n, close + 1
}
