// Package parser implements spec §4.9-§4.12: turning a file's active
// token stream into entities (classes, functions, variables, enums,
// typedefs, namespaces) installed into the shared entity/scope tables,
// and function bodies into statement sequences.
//
// Grounded on ceParse.cpp's ceFile::ProcStatement/ProcStructStmt dispatch
// and its ProcClass/ProcUnion/ProcEnum/ProcFuncDef/ProcCodeBody family.
package parser

import (
	"fmt"

	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/scope"
	"github.com/oxhq/cppdoc/internal/token"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// Parser walks one file's active token stream, installing entities into
// the shared tables as it goes.
type Parser struct {
	Entities *entity.Table
	Scopes   *scope.Table
	Resolver *scope.Resolver
	File     string
	Toks     []token.Token
	Using    []uint32 // active using-namespace set (spec §4.8)

	// Raw is the file's unpreprocessed token stream, the one ComPre/ComPost
	// indices (set by the preprocessor's comment associator, spec §4.6)
	// actually address. Nil in tests that parse an already-lexed stream
	// directly without a preprocess pass; commentText degrades to "" then,
	// same as an absent comment.
	Raw []token.Token

	// Chain receives WARNING diagnostics raised while parsing (e.g. the
	// return-description rule-table validator, spec §4.13 item 2). Nil is a
	// valid "don't report" value.
	Chain *diag.Chain

	Component uint32

	// Deferred holds member-function bodies recorded but not yet parsed
	// (spec §4.10: "Function definitions inside a class body are parsed
	// only to the extent of recording their token span and declaration;
	// their bodies are appended to a project-wide deferred list and
	// parsed after the class is complete"). ParseFile flushes the whole
	// queue once the file's top-level declarations are all installed.
	Deferred []DeferredBody
}

// DeferredBody is one pending member-function body: the function's
// entity id, the scope its locals were already installed into, and the
// token span of its `{ ... }`.
type DeferredBody struct {
	FuncID    uint32
	FuncScope uint32
	HostClass uint32
	Open      int
	Close     int
}

// New builds a Parser over one file's already-preprocessed active stream.
func New(ents *entity.Table, scopes *scope.Table, file string, toks []token.Token, component uint32) *Parser {
	return &Parser{
		Entities:  ents,
		Scopes:    scopes,
		Resolver:  &scope.Resolver{Scopes: scopes, Entities: ents},
		File:      file,
		Toks:      toks,
		Component: component,
	}
}

func (p *Parser) errf(pos int, format string, args ...interface{}) error {
	line, col := 0, 0
	if pos < len(p.Toks) {
		line, col = p.Toks[pos].Line, p.Toks[pos].Col
	}
	return fmt.Errorf("%s line %d col %d: %s", p.File, line, col, fmt.Sprintf(format, args...))
}

// ParseFile parses the whole active stream, installing every top-level
// declaration into hostScope (a static keyword is recorded on the typlex
// only), then flushes the deferred member-function bodies.
func (p *Parser) ParseFile(hostScope uint32) error {
	pos := 0
	for pos < len(p.Toks) {
		next, err := p.parseTopLevel(hostScope, pos)
		if err != nil {
			return err
		}
		if next <= pos {
			next = pos + 1 // never loop forever on an unrecognized token
		}
		pos = next
	}
	p.FlushDeferred()
	return nil
}

// FlushDeferred parses every queued member-function body in FIFO order
// (spec §4.10), clearing the queue. Safe to call with an empty queue.
func (p *Parser) FlushDeferred() {
	for len(p.Deferred) > 0 {
		d := p.Deferred[0]
		p.Deferred = p.Deferred[1:]

		stmts, err := p.parseCodeBody(d.FuncScope, d.HostClass, d.Open+1, d.Close)
		if err != nil {
			continue
		}
		p.Entities.Get(d.FuncID).Statements = stmts
	}
}

// parseTopLevel dispatches one top-level statement at pos, grounded on
// ceFile::ProcStatement's leading-keyword dispatch, and returns the index
// to resume from.
func (p *Parser) parseTopLevel(hostScope uint32, pos int) (int, error) {
	tok := p.Toks[pos]

	switch tok.Kind {
	case token.KwNamespace:
		return p.parseNamespace(hostScope, pos)
	case token.KwClass, token.KwStruct:
		return p.parseClass(hostScope, entity.None, pos)
	case token.KwUnion:
		return p.parseUnion(hostScope, entity.None, pos)
	case token.KwEnum:
		return p.parseEnum(hostScope, pos)
	case token.KwTypedef:
		return p.parseTypedef(hostScope, pos)
	case token.KwUsing:
		return p.parseUsing(hostScope, pos)
	}

	// Otherwise this is a variable or function declaration/definition:
	// parse a typlex, a name, then decide by what follows the name.
	typ, after, err := GetTyplex(p, hostScope, pos)
	if err != nil {
		// Not a recognizable declaration start (e.g. a stray token); skip it.
		return pos + 1, nil
	}
	if after >= len(p.Toks) || p.Toks[after].Kind != token.Word {
		return after, nil
	}
	name := p.Toks[after].Text
	nameIdx := after
	next := after + 1

	// Out-of-class member definition: "[keywords] <typlex> Class::name(arglist) …"
	// (spec §4.9, scenario S2). Detected by a "::" immediately following the
	// first word; everything else (free function/variable) has a plain word.
	if next < len(p.Toks) && p.Toks[next].Kind == token.OpScope {
		return p.parseOutOfClassMember(hostScope, typ, nameIdx)
	}

	if next < len(p.Toks) && p.Toks[next].Kind == token.RoundOpen {
		return p.parseFuncDecl(hostScope, entity.None, typ, name, nameIdx, next)
	}

	return p.parseVariable(hostScope, entity.None, typ, name, nameIdx)
}

// parseOutOfClassMember implements spec §4.9's "Class::name(arglist) …"
// form: the qualified head resolves an already-parsed class, and the
// definition attaches to that class's existing member declaration instead
// of installing a new entity (spec §4.12 "the function is inserted into a
// function-group... duplicate function insertion... is treated as
// idempotent" — here the declaration already exists, from the class body).
func (p *Parser) parseOutOfClassMember(hostScope uint32, ret typlex.Typlex, start int) (int, error) {
	names, after := collectQualifiedName(p.Toks, start)
	if len(names) < 2 || after >= len(p.Toks) || p.Toks[after].Kind != token.RoundOpen {
		return skipStatement(p.Toks, start), p.errf(start, "malformed out-of-class definition")
	}

	className := joinQualified(names[:len(names)-1])
	fnName := names[len(names)-1]

	classID, ok := p.Resolver.LookupString(className, entity.None, p.Using)
	if !ok {
		return skipStatement(p.Toks, after), p.errf(start, "undefined class %q in out-of-class definition", className)
	}
	hostClass := p.Entities.Get(classID)
	if hostClass == nil || hostClass.Kind != entity.KindClass {
		return skipStatement(p.Toks, after), p.errf(start, "%q is not a class", className)
	}

	args, argsEnd, err := p.parseFuncArgs(hostClass.ScopeTable, after)
	if err != nil {
		return skipStatement(p.Toks, after), err
	}
	key := extendedName(p.Entities, fnName, args)

	id := entity.None
	for _, memberID := range hostClass.Members {
		m := p.Entities.Get(memberID)
		if m != nil && m.Kind == entity.KindFunction && m.ExtendedName == key {
			id = memberID
			break
		}
	}
	if id == entity.None {
		return skipStatement(p.Toks, argsEnd-1), p.errf(start, "no matching declaration for %s::%s", className, fnName)
	}

	e := p.Entities.Get(id)
	e.Typ = ret
	e.DefFile = p.File

	pos := argsEnd
	for pos < len(p.Toks) {
		switch p.Toks[pos].Kind {
		case token.KwConst, token.KwVirtual:
			pos++
			continue
		}
		break
	}
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.End {
		return pos + 1, nil // redundant out-of-class re-declaration, no body
	}
	if pos >= len(p.Toks) || p.Toks[pos].Kind != token.CurlyOpen {
		return skipStatement(p.Toks, pos), nil
	}

	open := pos
	close := open
	if p.Toks[open].HasPartner() {
		close = int(p.Toks[open].Partner)
	}

	funcScope := p.Scopes.New(id, hostScope)
	for _, argID := range e.Args {
		arg := p.Entities.Get(argID)
		p.Scopes.Insert(funcScope, arg.NameText, argID, p.Entities)
	}

	stmts, err := p.parseCodeBody(funcScope, classID, open+1, close)
	if err != nil {
		return close + 1, err
	}
	e.Statements = stmts

	return close + 1, nil
}

func (p *Parser) parseNamespace(hostScope uint32, pos int) (int, error) {
	pos++ // "namespace"
	name := ""
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.Word {
		name = p.Toks[pos].Text
		pos++
	}
	if pos >= len(p.Toks) || p.Toks[pos].Kind != token.CurlyOpen {
		return pos, p.errf(pos, "expected '{' after namespace")
	}
	open := pos
	close := int(p.Toks[open].Partner)

	id := p.Entities.New(entity.KindNamespace)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	ns := p.Scopes.New(id, hostScope)
	e.ScopeTable = ns
	if name != "" {
		p.Scopes.Insert(hostScope, name, id, p.Entities)
	}

	inner := open + 1
	for inner < close {
		next, err := p.parseTopLevel(ns, inner)
		if err != nil {
			return inner, err
		}
		if next <= inner {
			next = inner + 1
		}
		inner = next
	}
	return close + 1, nil
}

func (p *Parser) parseUsing(hostScope uint32, pos int) (int, error) {
	pos++ // "using"
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.KwNamespace {
		pos++
		names, next := collectQualifiedName(p.Toks, pos)
		if id, ok := p.Resolver.LookupString(joinQualified(names), entity.None, p.Using); ok {
			p.Using = append(p.Using, id)
		}
		pos = next
	}
	for pos < len(p.Toks) && p.Toks[pos].Kind != token.End {
		pos++
	}
	return pos + 1, nil
}

func (p *Parser) parseTypedef(hostScope uint32, pos int) (int, error) {
	pos++ // "typedef"
	typ, after, err := GetTyplex(p, hostScope, pos)
	if err != nil {
		return skipStatement(p.Toks, pos), nil
	}
	if after >= len(p.Toks) || p.Toks[after].Kind != token.Word {
		return skipStatement(p.Toks, pos), nil
	}
	name := p.Toks[after].Text

	id := p.Entities.New(entity.KindTypedef)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	e.Resolution = typ
	p.Scopes.Insert(hostScope, name, id, p.Entities)

	return skipStatement(p.Toks, after), nil
}

// collectQualifiedName reads a "a::b::c" sequence of Word tokens
// separated by OpScope, returning the parts and the index just past it.
func collectQualifiedName(toks []token.Token, pos int) ([]string, int) {
	var names []string
	for pos < len(toks) && toks[pos].Kind == token.Word {
		names = append(names, toks[pos].Text)
		pos++
		if pos < len(toks) && toks[pos].Kind == token.OpScope {
			pos++
			continue
		}
		break
	}
	return names, pos
}

func joinQualified(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "::"
		}
		out += p
	}
	return out
}

// skipStatement advances past the next End (;) token, or to the matching
// CurlyClose+1 if a brace block is encountered first (covers inline
// function bodies attached to a skipped declaration).
func skipStatement(toks []token.Token, pos int) int {
	for pos < len(toks) {
		switch toks[pos].Kind {
		case token.End:
			return pos + 1
		case token.CurlyOpen:
			if toks[pos].HasPartner() {
				return int(toks[pos].Partner) + 1
			}
			return pos + 1
		}
		pos++
	}
	return pos
}

// commentText returns the text of the comment at raw index idx (a token's
// ComPre/ComPost), or "" for None, resolved through raw (the file's
// unpreprocessed stream, for Text lookups); intern lookups are avoided
// since comment text is carried verbatim on the raw token already.
func commentText(raw []token.Token, idx uint32) string {
	if idx == token.None || int(idx) >= len(raw) {
		return ""
	}
	return raw[idx].Text
}

// markCommentProcessed sets the raw comment token's processed flag (spec
// §4.6: "the comment's processed flag ... is set to true only when a
// comment processor actually consumes it"), so the post-parse
// external-comment pass (internal/project) does not re-offer it.
func markCommentProcessed(raw []token.Token, idx uint32) {
	if idx != token.None && int(idx) < len(raw) {
		raw[idx].Flags |= token.FlagCommentProcessed
	}
}
