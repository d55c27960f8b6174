// Package lexer implements spec §4.4: the byte stream → ordered token
// stream transformation, with brace/bracket/paren/?: matching and code
// nesting level assignment.
//
// Grounded on ceToken.cpp (greedy operator disambiguation, string/char
// escaping, number classification) and spec §4.2-§4.4.
package lexer

import (
	"fmt"

	"github.com/oxhq/cppdoc/internal/charclass"
	"github.com/oxhq/cppdoc/internal/intern"
	"github.com/oxhq/cppdoc/internal/token"
)

// DefaultTabWidth is used when the project configuration does not specify
// one (spec §4.2: "default 4; allowed values 4 and 8").
const DefaultTabWidth = 4

// Lexer turns one file's source bytes into its raw token array P.
type Lexer struct {
	TabWidth int
	Intern   *intern.Table
	File     string
}

// New builds a Lexer sharing the project's string-intern table.
func New(interned *intern.Table, file string, tabWidth int) *Lexer {
	if tabWidth == 0 {
		tabWidth = DefaultTabWidth
	}
	return &Lexer{TabWidth: tabWidth, Intern: interned, File: file}
}

// scanState threads position/line/col through the recursive-descent style
// token scanners without a struct-field cursor, so Lex itself stays a plain
// loop over scanOne's return values.
type scanState struct {
	src  []byte
	pos  int
	line int
	col  int
}

// Lex tokenizes src (already UTF-8/ASCII bytes as read from disk) into the
// raw token array P. Tab expansion (spec §4.2) is applied first.
func (lx *Lexer) Lex(src []byte) ([]token.Token, error) {
	expanded := TabExpand(src, lx.TabWidth)
	s := &scanState{src: expanded, line: 1, col: 1}

	var out []token.Token
	elideDepth := -1 // -1 = not eliding; else the directive-nesting depth at which a "#if 0" elision began
	nestDepth := 0

	for {
		lx.skipWhitespace(s)
		if s.pos >= len(s.src) {
			break
		}
		startLine, startCol := s.line, s.col
		tok, err := lx.scanOne(s)
		if err != nil {
			return nil, err
		}
		tok.Line, tok.Col = startLine, startCol

		if elideDepth >= 0 {
			switch tok.Kind {
			case token.DirIf, token.DirIfdef, token.DirIfndef:
				nestDepth++
			case token.DirEndif:
				nestDepth--
				if nestDepth == elideDepth {
					elideDepth = -1
				}
			}
			continue // discard every token inside an elided #if 0 block (spec §4.3)
		}

		if tok.Kind == token.DirIf {
			if peek, ok := lx.peekIfZero(s); ok {
				elideDepth = 0
				nestDepth = 1
				s.pos, s.line, s.col = peek.pos, peek.line, peek.col
				continue // discard the "#if" and "0" tokens themselves too
			}
		}

		tok.Index = uint32(len(out))
		out = append(out, tok)
	}
	if err := MatchDelimiters(out); err != nil {
		return nil, err
	}
	AssignCodeLevels(out)
	return out, nil
}

// peekIfZero looks ahead past whitespace for a Number token with text "0"
// immediately following a #if directive, without committing the lexer
// state unless it matches.
func (lx *Lexer) peekIfZero(s *scanState) (scanState, bool) {
	tmp := *s
	lx.skipWhitespace(&tmp)
	if tmp.pos >= len(tmp.src) {
		return tmp, false
	}
	save := tmp
	tok, err := lx.scanOne(&tmp)
	if err != nil || tok.Kind != token.Number || tok.Text != "0" {
		return save, false
	}
	return tmp, true
}

func (lx *Lexer) skipWhitespace(s *scanState) {
	for s.pos < len(s.src) {
		b := s.src[s.pos]
		if b == '\n' {
			s.pos++
			s.line++
			s.col = 1
			continue
		}
		if charclass.IsWhite(b) {
			s.pos++
			s.col++
			continue
		}
		break
	}
}

func (lx *Lexer) advance(s *scanState, n int) {
	for i := 0; i < n; i++ {
		if s.pos >= len(s.src) {
			return
		}
		if s.src[s.pos] == '\n' {
			s.line++
			s.col = 1
		} else {
			s.col++
		}
		s.pos++
	}
}

func (lx *Lexer) scanOne(s *scanState) (token.Token, error) {
	b := s.src[s.pos]
	switch {
	case b == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
		return lx.scanLineComment(s)
	case b == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
		return lx.scanBlockComment(s)
	case b == '"':
		return lx.scanString(s)
	case b == '\'':
		return lx.scanChar(s)
	case b == '#':
		return lx.scanDirective(s)
	case charclass.IsDigit(b):
		return lx.scanNumber(s)
	case charclass.IsAlpha(b):
		return lx.scanWord(s)
	case b == '{':
		lx.advance(s, 1)
		return token.NewStructural(token.CurlyOpen, 0, 0), nil
	case b == '}':
		lx.advance(s, 1)
		return token.NewStructural(token.CurlyClose, 0, 0), nil
	case b == '(':
		lx.advance(s, 1)
		return token.NewStructural(token.RoundOpen, 0, 0), nil
	case b == ')':
		lx.advance(s, 1)
		return token.NewStructural(token.RoundClose, 0, 0), nil
	case b == '[':
		lx.advance(s, 1)
		return token.NewStructural(token.SquareOpen, 0, 0), nil
	case b == ']':
		lx.advance(s, 1)
		return token.NewStructural(token.SquareClose, 0, 0), nil
	case b == ',':
		lx.advance(s, 1)
		return token.NewStructural(token.Sep, 0, 0), nil
	case b == ';':
		lx.advance(s, 1)
		return token.NewStructural(token.End, 0, 0), nil
	case b == '\\':
		lx.advance(s, 1)
		return token.NewStructural(token.Escape, 0, 0), nil
	case charclass.IsOperatorChar(b):
		return lx.scanOperator(s)
	default:
		return token.Token{}, fmt.Errorf("%s line %d col %d: illegal character %q", lx.File, s.line, s.col, b)
	}
}

func (lx *Lexer) scanWord(s *scanState) (token.Token, error) {
	start := s.pos
	for s.pos < len(s.src) && charclass.IsAlphanumeric(s.src[s.pos]) {
		lx.advance(s, 1)
	}
	text := string(s.src[start:s.pos])
	kind, isKeyword := token.LookupKeyword(text)
	if !isKeyword {
		kind = token.Word
	}
	tok := token.NewStructural(kind, 0, 0)
	tok.Text = text
	tok.Value = lx.Intern.Intern(text)
	return tok, nil
}

func (lx *Lexer) scanNumber(s *scanState) (token.Token, error) {
	start := s.pos
	if s.src[s.pos] == '0' && s.pos+1 < len(s.src) && (s.src[s.pos+1] == 'x' || s.src[s.pos+1] == 'X') {
		lx.advance(s, 2)
		for s.pos < len(s.src) && charclass.IsHex(s.src[s.pos]) {
			lx.advance(s, 1)
		}
		return lx.numberToken(s, start, token.HexNum), nil
	}
	if s.src[s.pos] == '0' && s.pos+1 < len(s.src) && s.src[s.pos+1] >= '0' && s.src[s.pos+1] <= '7' {
		lx.advance(s, 1)
		for s.pos < len(s.src) && s.src[s.pos] >= '0' && s.src[s.pos] <= '7' {
			lx.advance(s, 1)
		}
		return lx.numberToken(s, start, token.OctNum), nil
	}
	for s.pos < len(s.src) && charclass.IsDigit(s.src[s.pos]) {
		lx.advance(s, 1)
	}
	isStd := false
	if s.pos+1 < len(s.src) && s.src[s.pos] == '.' && charclass.IsDigit(s.src[s.pos+1]) {
		isStd = true
		lx.advance(s, 1)
		for s.pos < len(s.src) && charclass.IsDigit(s.src[s.pos]) {
			lx.advance(s, 1)
		}
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		save := *s
		lx.advance(s, 1)
		if s.pos < len(s.src) && (s.src[s.pos] == '+' || s.src[s.pos] == '-') {
			lx.advance(s, 1)
		}
		if s.pos < len(s.src) && charclass.IsDigit(s.src[s.pos]) {
			isStd = true
			for s.pos < len(s.src) && charclass.IsDigit(s.src[s.pos]) {
				lx.advance(s, 1)
			}
		} else {
			*s = save
		}
	}
	if isStd {
		return lx.numberToken(s, start, token.StdNum), nil
	}
	return lx.numberToken(s, start, token.Number), nil
}

func (lx *Lexer) numberToken(s *scanState, start int, kind token.Kind) token.Token {
	text := string(s.src[start:s.pos])
	tok := token.NewStructural(kind, 0, 0)
	tok.Text = text
	tok.Value = lx.Intern.Intern(text)
	return tok
}

func (lx *Lexer) scanString(s *scanState) (token.Token, error) {
	var text []byte
	for {
		if s.src[s.pos] != '"' {
			return token.Token{}, fmt.Errorf("%s line %d col %d: expected '\"'", lx.File, s.line, s.col)
		}
		lx.advance(s, 1) // opening quote
		for {
			if s.pos >= len(s.src) {
				return token.Token{}, fmt.Errorf("%s line %d col %d: unterminated string literal", lx.File, s.line, s.col)
			}
			b := s.src[s.pos]
			if b == '"' {
				lx.advance(s, 1)
				break
			}
			if b == '\\' && s.pos+1 < len(s.src) {
				text = append(text, s.src[s.pos], s.src[s.pos+1])
				lx.advance(s, 2)
				continue
			}
			text = append(text, b)
			lx.advance(s, 1)
		}
		// adjacent string literal concatenation (spec §4.4)
		save := *s
		lx.skipWhitespace(s)
		if s.pos < len(s.src) && s.src[s.pos] == '"' {
			continue
		}
		*s = save
		break
	}
	tok := token.NewStructural(token.Quote, 0, 0)
	tok.Text = string(text)
	tok.Value = lx.Intern.Intern(tok.Text)
	return tok, nil
}

func (lx *Lexer) scanChar(s *scanState) (token.Token, error) {
	lx.advance(s, 1) // opening quote
	var text []byte
	for {
		if s.pos >= len(s.src) {
			return token.Token{}, fmt.Errorf("%s line %d col %d: unterminated character literal", lx.File, s.line, s.col)
		}
		b := s.src[s.pos]
		if b == '\'' {
			lx.advance(s, 1)
			break
		}
		if b == '\\' && s.pos+1 < len(s.src) {
			text = append(text, s.src[s.pos], s.src[s.pos+1])
			lx.advance(s, 2)
			continue
		}
		text = append(text, b)
		lx.advance(s, 1)
	}
	tok := token.NewStructural(token.SChar, 0, 0)
	tok.Text = string(text)
	tok.Value = lx.Intern.Intern(tok.Text)
	return tok, nil
}

func (lx *Lexer) scanOperator(s *scanState) (token.Token, error) {
	start := s.pos
	for s.pos < len(s.src) && charclass.IsOperatorChar(s.src[s.pos]) {
		s.pos++
	}
	run := string(s.src[start:s.pos])
	// roll back to scanState-consistent line/col by re-walking advance
	s.pos = start
	kind, text, n, ok := splitOperatorRun(run)
	if !ok {
		return token.Token{}, fmt.Errorf("%s line %d col %d: illegal operator sequence %q", lx.File, s.line, s.col, run)
	}
	lx.advance(s, n)
	tok := token.NewStructural(kind, 0, 0)
	tok.Text = text
	return tok, nil
}

func (lx *Lexer) scanLineComment(s *scanState) (token.Token, error) {
	var lines []string
	for {
		start := s.pos
		for s.pos < len(s.src) && s.src[s.pos] != '\n' {
			lx.advance(s, 1)
		}
		lines = append(lines, string(s.src[start:s.pos]))
		save := *s
		lx.skipBlankLines(s)
		if s.pos+1 < len(s.src) && s.src[s.pos] == '/' && s.src[s.pos+1] == '/' {
			continue
		}
		*s = save
		break
	}
	tok := token.NewStructural(token.Comment, 0, 0)
	tok.Flags |= token.FlagCommentLine
	tok.Text = joinCommentLines(lines, "//")
	return tok, nil
}

func (lx *Lexer) skipBlankLines(s *scanState) {
	for s.pos < len(s.src) {
		b := s.src[s.pos]
		if b == '\n' || charclass.IsWhite(b) {
			lx.advance(s, 1)
			continue
		}
		break
	}
}

func (lx *Lexer) scanBlockComment(s *scanState) (token.Token, error) {
	lx.advance(s, 2) // "/*"
	start := s.pos
	for {
		if s.pos+1 >= len(s.src) {
			return token.Token{}, fmt.Errorf("%s line %d col %d: unterminated block comment", lx.File, s.line, s.col)
		}
		if s.src[s.pos] == '*' && s.src[s.pos+1] == '/' {
			break
		}
		lx.advance(s, 1)
	}
	body := string(s.src[start:s.pos])
	lx.advance(s, 2) // "*/"
	tok := token.NewStructural(token.Comment, 0, 0)
	tok.Text = stripBlockContinuations(body)
	return tok, nil
}

func (lx *Lexer) scanDirective(s *scanState) (token.Token, error) {
	lx.advance(s, 1) // '#'
	for s.pos < len(s.src) && charclass.IsWhite(s.src[s.pos]) && s.src[s.pos] != '\n' {
		lx.advance(s, 1)
	}
	start := s.pos
	for s.pos < len(s.src) && charclass.IsAlphanumeric(s.src[s.pos]) {
		lx.advance(s, 1)
	}
	name := string(s.src[start:s.pos])
	kind, ok := token.LookupDirective(name)
	if !ok {
		return token.Token{}, fmt.Errorf("%s line %d col %d: unrecognized directive #%s", lx.File, s.line, s.col, name)
	}
	tok := token.NewStructural(kind, 0, 0)
	tok.Text = "#" + name
	return tok, nil
}
