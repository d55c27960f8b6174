package lexer

import (
	"fmt"
	"strings"

	"github.com/oxhq/cppdoc/internal/token"
)

// MatchDelimiters runs the bracket/brace/paren/?: partner-matching passes
// over a fully-scanned token stream (spec §4.4: "a matcher pass walks the
// token array... pairing every opening delimiter with its closing
// partner"). Each pass is a simple stack walk; an unbalanced delimiter is
// a lex error, but an unmatched OpColon is not (it may be a label,
// access-specifier, case, or default colon) and is left with Partner=None.
func MatchDelimiters(toks []token.Token) error {
	if err := matchPairs(toks, token.CurlyOpen, token.CurlyClose); err != nil {
		return err
	}
	if err := matchPairs(toks, token.RoundOpen, token.RoundClose); err != nil {
		return err
	}
	if err := matchPairs(toks, token.SquareOpen, token.SquareClose); err != nil {
		return err
	}
	matchTernary(toks)
	return nil
}

func matchPairs(toks []token.Token, open, close token.Kind) error {
	var stack []int
	for i := range toks {
		switch toks[i].Kind {
		case open:
			stack = append(stack, i)
		case close:
			if len(stack) == 0 {
				return fmt.Errorf("line %d col %d: unmatched %q", toks[i].Line, toks[i].Col, open.String())
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			toks[top].Partner = uint32(i)
			toks[i].Partner = uint32(top)
		}
	}
	if len(stack) != 0 {
		unclosed := toks[stack[len(stack)-1]]
		return fmt.Errorf("line %d col %d: unmatched %q", unclosed.Line, unclosed.Col, open.String())
	}
	return nil
}

// matchTernary pairs each OpColon with the nearest preceding unpaired
// OpQuery (spec §4.4: "? pushes, : pops only if the stack is non-empty;
// otherwise the colon is a label/access-specifier/case/default colon and
// stays unmatched").
func matchTernary(toks []token.Token) {
	var stack []int
	for i := range toks {
		switch toks[i].Kind {
		case token.OpQuery:
			stack = append(stack, i)
		case token.OpColon:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			toks[top].Partner = uint32(i)
			toks[i].Partner = uint32(top)
		}
	}
}

// AssignCodeLevels runs the fifth matcher pass: each token's CodeLevel is
// the count of enclosing {} pairs it sits inside (spec §4.4: "a fifth pass
// assigns each token a code nesting level").
func AssignCodeLevels(toks []token.Token) {
	depth := uint32(0)
	for i := range toks {
		if toks[i].Kind == token.CurlyClose {
			if depth > 0 {
				depth--
			}
		}
		toks[i].CodeLevel = depth
		if toks[i].Kind == token.CurlyOpen {
			depth++
		}
	}
}

// joinCommentLines stitches consecutive "//" comment lines into one
// comment token's text, separated by newlines, so a run of line comments
// is treated as a single comment for association purposes (spec §4.6).
func joinCommentLines(lines []string, marker string) string {
	trimmed := make([]string, len(lines))
	for i, l := range lines {
		trimmed[i] = strings.TrimPrefix(strings.TrimSpace(l), marker)
		trimmed[i] = strings.TrimPrefix(trimmed[i], " ")
	}
	return strings.Join(trimmed, "\n")
}

// stripBlockContinuations removes a leading run of '*' (and surrounding
// space) from each interior line of a /* ... */ comment body, the common
// continuation-line decoration the comment processors should not see as
// content (spec §4.6).
func stripBlockContinuations(body string) string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		t := strings.TrimLeft(l, " \t")
		if strings.HasPrefix(t, "*") {
			t = strings.TrimLeft(t, "*")
			t = strings.TrimPrefix(t, " ")
		}
		lines[i] = t
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
