// Package preprocess implements spec §4.5: the compiler-directive pass
// that turns a file's raw token array into its active stream, expanding
// #define literals and macros and excluding #if/#ifdef/#ifndef-false
// regions, without yet knowing anything about C++ declarations beyond
// what #define has introduced.
//
// Grounded on cePreproc.cpp's ceFile::Preproc/TryMacro.
package preprocess

import (
	"fmt"

	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/scope"
	"github.com/oxhq/cppdoc/internal/token"
)

// maxIncludeDepth bounds #include recursion (spec §4.5: "a depth-10 cap").
const maxIncludeDepth = 10

// FileSet resolves an #include's quoted filename to the raw token stream
// it should be preprocessed from. Run preprocesses that stream again at
// every #include of the file; nothing records which files have already
// been preprocessed.
type FileSet interface {
	// Tokens returns the raw (lexed, not preprocessed) token stream for
	// the named file.
	Tokens(name string) ([]token.Token, error)
}

// Preprocessor applies spec §4.5 to one file's raw token stream.
type Preprocessor struct {
	Entities *entity.Table
	Scopes   *scope.Table
	Resolver *scope.Resolver
	Files    FileSet

	// RootScope is where #define entities are inserted and looked up; the
	// original keeps one process-wide define/macro/literal table regardless
	// of file scoping, and this is reproduced as a single flat scope. The
	// project passes its own root scope here, so #define names share that
	// scope with top-level C++ declarations.
	RootScope uint32
}

// New builds a Preprocessor sharing the project's entity/scope tables.
func New(ents *entity.Table, scopes *scope.Table, files FileSet, rootScope uint32) *Preprocessor {
	return &Preprocessor{
		Entities:  ents,
		Scopes:    scopes,
		Resolver:  &scope.Resolver{Scopes: scopes, Entities: ents},
		Files:     files,
		RootScope: rootScope,
	}
}

// directiveFrame tracks one level of #if/#ifdef/#ifndef nesting: whether
// the code at this level is currently excluded, and whether any branch of
// this conditional has already been taken (so a later #else/#elseif at the
// same level is skipped even if its own test would pass).
type directiveFrame struct {
	excluded bool
	taken    bool
}

// Run preprocesses raw into the active stream X, per spec §4.5. depth is
// the #include recursion depth (0 for the top-level file); callers
// recursing into an #include pass depth+1.
func (p *Preprocessor) Run(file string, raw []token.Token, depth int) ([]token.Token, error) {
	if depth > maxIncludeDepth {
		return nil, fmt.Errorf("%s: #include recursion limit reached", file)
	}

	var stack []directiveFrame
	excluded := func() bool {
		for _, f := range stack {
			if f.excluded {
				return true
			}
		}
		return false
	}

	var active []token.Token
	rawOf := make([]uint32, 0, len(raw)) // active[i] came from raw[rawOf[i]]

	ct := 0
	for ct < len(raw) {
		tok := raw[ct]

		if tok.Kind.IsComment() {
			ct++
			continue
		}

		if tok.Kind.IsDirective() {
			consumed, err := p.directive(file, raw, ct, &stack, excluded, &active, &rawOf, depth)
			if err != nil {
				return nil, err
			}
			ct = consumed
			continue
		}

		if excluded() {
			ct++
			continue
		}

		expanded, next, err := p.expandIfDefine(file, raw, ct, map[string]bool{})
		if err != nil {
			return nil, err
		}
		if expanded != nil {
			active = append(active, expanded...)
			for range expanded {
				rawOf = append(rawOf, uint32(ct))
			}
			ct = next
			continue
		}

		active = append(active, tok)
		rawOf = append(rawOf, uint32(ct))
		ct++
	}

	for i := range active {
		active[i].Index = uint32(i)
		active[i].Raw = rawOf[i]
	}
	linkComments(raw, active, rawOf)

	return active, nil
}

// directive dispatches one compiler directive at raw[ct], mutating stack
// and active/rawOf as needed, and returns the index to resume scanning
// from.
func (p *Preprocessor) directive(file string, raw []token.Token, ct int, stack *[]directiveFrame, excluded func() bool, active *[]token.Token, rawOf *[]uint32, depth int) (int, error) {
	tok := raw[ct]
	line := tok.Line
	lineEnd := ct + 1
	for lineEnd < len(raw) && raw[lineEnd].Line == line && !raw[lineEnd].Kind.IsComment() {
		lineEnd++
	}

	switch tok.Kind {
	case token.DirIfdef, token.DirIfndef:
		if ct+1 >= len(raw) || raw[ct+1].Kind != token.Word {
			return 0, fmt.Errorf("%s line %d: %s must be followed by a word", file, tok.Line, tok.Kind)
		}
		name := raw[ct+1].Text
		_, defined := p.Resolver.LookupLocal(p.RootScope, name)
		want := tok.Kind == token.DirIfdef
		met := defined == want
		*stack = append(*stack, directiveFrame{excluded: !met, taken: met})
		return lineEnd, nil

	case token.DirIf:
		if ct+1 >= len(raw) {
			return 0, fmt.Errorf("%s line %d: #if must be followed by an expression", file, tok.Line)
		}
		zero := raw[ct+1].Kind == token.Number && raw[ct+1].Text == "0"
		*stack = append(*stack, directiveFrame{excluded: zero, taken: !zero})
		return lineEnd, nil

	case token.DirElse:
		if len(*stack) == 0 {
			return 0, fmt.Errorf("%s line %d: #else with no matching #if", file, tok.Line)
		}
		top := &(*stack)[len(*stack)-1]
		if top.taken {
			top.excluded = true
		} else {
			top.excluded = false
			top.taken = true
		}
		return ct + 1, nil

	case token.DirElseif:
		if len(*stack) == 0 {
			return 0, fmt.Errorf("%s line %d: #elseif with no matching #if", file, tok.Line)
		}
		top := &(*stack)[len(*stack)-1]
		if top.taken {
			top.excluded = true
		} else {
			top.excluded = false
			top.taken = true
		}
		return lineEnd, nil

	case token.DirEndif:
		if len(*stack) == 0 {
			return 0, fmt.Errorf("%s line %d: #endif with no matching #if", file, tok.Line)
		}
		*stack = (*stack)[:len(*stack)-1]
		return ct + 1, nil

	case token.DirInclude:
		if excluded() {
			return lineEnd, nil
		}
		if ct+1 < len(raw) && raw[ct+1].Kind == token.Quote {
			name := raw[ct+1].Text
			if p.Files != nil {
				incRaw, err := p.Files.Tokens(name)
				if err != nil {
					return 0, fmt.Errorf("%s line %d: %w", file, tok.Line, err)
				}
				incActive, err := p.Run(name, incRaw, depth+1)
				if err != nil {
					return 0, err
				}
				*active = append(*active, incActive...)
				for range incActive {
					*rawOf = append(*rawOf, uint32(ct))
				}
			}
		}
		return lineEnd, nil

	case token.DirUndef:
		return lineEnd, nil

	case token.DirDefine:
		if excluded() {
			return lineEnd, nil
		}
		return p.define(file, raw, ct, lineEnd)

	default:
		return lineEnd, nil
	}
}

// define handles #define in its three forms: bare identifier, literal
// value, and macro-with-args (spec §4.5, grounded on TryMacro).
func (p *Preprocessor) define(file string, raw []token.Token, ct, lineEnd int) (int, error) {
	nameIdx := ct + 1
	if nameIdx >= lineEnd {
		return 0, fmt.Errorf("%s line %d: #define must name an identifier", file, raw[ct].Line)
	}
	nameTok := raw[nameIdx]
	if nameTok.Kind != token.Word && !nameTok.Kind.IsKeyword() {
		return 0, fmt.Errorf("%s line %d: #define must be followed by an identifier", file, raw[ct].Line)
	}
	name := nameTok.Text

	bodyStart := nameIdx + 1
	if bodyStart >= lineEnd {
		p.insertDefine(name, nil)
		return lineEnd, nil
	}

	// #define NAME(args) body — macro form, only when the ( immediately
	// follows the name with at least one arg, AND at least one ersatz
	// token actually references a formal by ordinal; a "NAME(args) body"
	// proposal whose body never uses any of its formals is demoted to a
	// plain #define instead (spec §4.5), since the original's TryMacro only
	// promotes a call-requiring Macro entity when substitution would do
	// something.
	if raw[bodyStart].Kind == token.RoundOpen && bodyStart+1 < lineEnd && raw[bodyStart+1].Kind != token.RoundClose {
		argsEnd, formals, ok := scanMacroFormals(raw, bodyStart, lineEnd)
		if ok {
			ersatz := make([]entity.ErsatzToken, 0, lineEnd-argsEnd)
			referencesFormal := false
			for i := argsEnd; i < lineEnd; i++ {
				ord := -1
				for fi, f := range formals {
					if raw[i].Text == f {
						ord = fi + 1
						break
					}
				}
				if ord != -1 {
					referencesFormal = true
				}
				ersatz = append(ersatz, entity.ErsatzToken{Kind: raw[i].Kind, Text: raw[i].Text, ArgOrdinal: ord})
			}
			if referencesFormal {
				id := p.Entities.New(entity.KindMacro)
				e := p.Entities.Get(id)
				e.NameText = name
				e.FormalArgs = formals
				e.Ersatz = ersatz
				p.Scopes.Insert(p.RootScope, name, id, p.Entities)
				return lineEnd, nil
			}
			// Demoted: none of the formals are actually used, so this is
			// just a plain #define whose whole remaining line — including
			// the "(args)" text, now just literal tokens rather than a
			// formal-argument list — becomes the replacement sequence.
			plain := make([]entity.ErsatzToken, 0, lineEnd-bodyStart)
			for i := bodyStart; i < lineEnd; i++ {
				plain = append(plain, entity.ErsatzToken{Kind: raw[i].Kind, Text: raw[i].Text, ArgOrdinal: -1})
			}
			p.insertDefine(name, plain)
			return lineEnd, nil
		}
	}

	// Single-token literal.
	if bodyStart == lineEnd-1 && raw[bodyStart].Kind.IsLiteral() {
		id := p.Entities.New(entity.KindLiteral)
		e := p.Entities.Get(id)
		e.NameText = name
		e.LitValue = &entity.LiteralValue{Text: raw[bodyStart].Text}
		e.Ersatz = []entity.ErsatzToken{{Kind: raw[bodyStart].Kind, Text: raw[bodyStart].Text, ArgOrdinal: -1}}
		p.Scopes.Insert(p.RootScope, name, id, p.Entities)
		return lineEnd, nil
	}

	// General token-sequence #define.
	ersatz := make([]entity.ErsatzToken, 0, lineEnd-bodyStart)
	for i := bodyStart; i < lineEnd; i++ {
		ersatz = append(ersatz, entity.ErsatzToken{Kind: raw[i].Kind, Text: raw[i].Text, ArgOrdinal: -1})
	}
	p.insertDefine(name, ersatz)
	return lineEnd, nil
}

func (p *Preprocessor) insertDefine(name string, ersatz []entity.ErsatzToken) {
	id := p.Entities.New(entity.KindDefine)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Ersatz = ersatz
	p.Scopes.Insert(p.RootScope, name, id, p.Entities)
}

// scanMacroFormals reads the "(a,b,c)" formal-argument list starting at
// open (a RoundOpen token) and returns the index just past the matching
// RoundClose, the formal names in order, and whether it parsed cleanly.
func scanMacroFormals(raw []token.Token, open, limit int) (next int, formals []string, ok bool) {
	i := open + 1
	for i < limit {
		if raw[i].Kind != token.Word {
			return 0, nil, false
		}
		formals = append(formals, raw[i].Text)
		i++
		if i < limit && raw[i].Kind == token.RoundClose {
			return i + 1, formals, len(formals) > 0
		}
		if i >= limit || raw[i].Kind != token.Sep {
			return 0, nil, false
		}
		i++
	}
	return 0, nil, false
}

// expandIfDefine checks whether raw[ct] names a previously #defined
// literal, plain #define, or macro call and, if so, returns the expansion
// tokens and the index to resume from; expanded is nil if raw[ct] is not
// a macro/#define reference. seen guards against a name expanding into
// itself, directly or through a chain of other names, within this one
// top-level expansion (spec §4.5: "done recursively, guarded by a
// per-expansion seen-set").
func (p *Preprocessor) expandIfDefine(file string, raw []token.Token, ct int, seen map[string]bool) (expanded []token.Token, next int, err error) {
	if raw[ct].Kind != token.Word {
		return nil, 0, nil
	}
	name := raw[ct].Text
	if seen[name] {
		return nil, 0, nil
	}
	id, ok := p.Resolver.LookupLocal(p.RootScope, name)
	if !ok {
		return nil, 0, nil
	}
	e := p.Entities.Get(id)
	switch e.Kind {
	case entity.KindDefine, entity.KindLiteral:
		toks := make([]token.Token, len(e.Ersatz))
		for i, er := range e.Ersatz {
			toks[i] = token.Token{Kind: er.Kind, Text: er.Text, Line: raw[ct].Line, Partner: token.None, Raw: token.None, ComPre: token.None, ComPost: token.None, ArgOrdinal: -1, Flags: token.FlagGenerated}
		}
		seen[name] = true
		rescanned, err := p.rescan(file, toks, seen)
		delete(seen, name)
		if err != nil {
			return nil, 0, err
		}
		return rescanned, ct + 1, nil

	case entity.KindMacro:
		return p.expandMacroCall(file, raw, ct, e, seen)

	default:
		return nil, 0, nil
	}
}

// rescan re-scans an already-substituted token sequence for further
// define/macro references, the "rescanning" half of recursive expansion
// (spec §4.5).
func (p *Preprocessor) rescan(file string, toks []token.Token, seen map[string]bool) ([]token.Token, error) {
	var out []token.Token
	for i := 0; i < len(toks); i++ {
		expanded, next, err := p.expandIfDefine(file, toks, i, seen)
		if err != nil {
			return nil, err
		}
		if expanded != nil {
			out = append(out, expanded...)
			i = next - 1
			continue
		}
		out = append(out, toks[i])
	}
	return out, nil
}

// expandMacroCall gathers a macro invocation's actual arguments and
// substitutes them into the macro's ersatz token sequence, per TryMacro's
// companion expansion logic in ceFile::Preproc. Each actual argument and
// the substituted result are themselves recursively expanded (spec §4.5),
// guarded by seen plus the macro's own name so a self-referential macro
// terminates instead of looping.
func (p *Preprocessor) expandMacroCall(file string, raw []token.Token, ct int, macro *entity.Entity, seen map[string]bool) ([]token.Token, int, error) {
	i := ct + 1
	if i >= len(raw) || raw[i].Kind != token.RoundOpen {
		return nil, 0, fmt.Errorf("%s line %d: expected '(' after macro %s", file, raw[ct].Line, macro.NameText)
	}
	i++
	nest := 1
	args := [][]token.Token{{}}
	for nest > 0 {
		if i >= len(raw) {
			return nil, 0, fmt.Errorf("%s line %d: unterminated macro call to %s", file, raw[ct].Line, macro.NameText)
		}
		switch raw[i].Kind {
		case token.RoundOpen:
			nest++
			args[len(args)-1] = append(args[len(args)-1], raw[i])
		case token.RoundClose:
			nest--
			if nest > 0 {
				args[len(args)-1] = append(args[len(args)-1], raw[i])
			}
		case token.Sep:
			if nest == 1 {
				args = append(args, []token.Token{})
			} else {
				args[len(args)-1] = append(args[len(args)-1], raw[i])
			}
		default:
			args[len(args)-1] = append(args[len(args)-1], raw[i])
		}
		i++
	}

	for k, a := range args {
		expandedArg, err := p.rescan(file, a, seen)
		if err != nil {
			return nil, 0, err
		}
		args[k] = expandedArg
	}

	var out []token.Token
	for _, er := range macro.Ersatz {
		if er.ArgOrdinal < 1 || er.ArgOrdinal > len(args) {
			out = append(out, token.Token{Kind: er.Kind, Text: er.Text, Line: raw[ct].Line, Partner: token.None, Raw: token.None, ComPre: token.None, ComPost: token.None, ArgOrdinal: -1, Flags: token.FlagGenerated})
			continue
		}
		for _, a := range args[er.ArgOrdinal-1] {
			t := a
			t.Line = raw[ct].Line
			t.Partner, t.Raw, t.ComPre, t.ComPost = token.None, token.None, token.None, token.None
			t.ArgOrdinal = -1
			t.Flags |= token.FlagGenerated
			out = append(out, t)
		}
	}

	seen[macro.NameText] = true
	rescanned, err := p.rescan(file, out, seen)
	delete(seen, macro.NameText)
	if err != nil {
		return nil, 0, err
	}
	return rescanned, i, nil
}

// linkComments runs the post-preprocess comment association pass: an
// active token adjacent (in the raw stream) to an unconsumed comment gets
// its ComPre/ComPost set, mirroring ceFile::Preproc's tail loop (spec
// §4.6: "one comment attaches to at most one token").
func linkComments(raw []token.Token, active []token.Token, rawOf []uint32) {
	for i := range active {
		if active[i].IsGenerated() {
			continue // macro-expansion tokens have no raw position to look around
		}
		xt := rawOf[i]
		if int(xt)+1 < len(raw) && raw[xt+1].Kind.IsComment() {
			active[i].ComPost = xt + 1
			raw[xt+1].ComPost = xt
		}
		if xt > 0 && raw[xt-1].Kind.IsComment() && raw[xt-1].ComPost == token.None {
			active[i].ComPre = xt - 1
			raw[xt-1].ComPre = xt
		}
	}
}
