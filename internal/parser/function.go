package parser

import (
	"github.com/oxhq/cppdoc/internal/comment"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/token"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// parseFuncDecl parses a free (non-member) function declaration or
// definition (spec §4.10, grounded on ceFile::ProcFuncDef).
func (p *Parser) parseFuncDecl(hostScope, hostClass uint32, ret typlex.Typlex, name string, nameIdx, argOpen int) (int, error) {
	next, _, err := p.parseFunc(hostScope, hostClass, ret, name, nameIdx, argOpen, entity.ScopeGlobal)
	return next, err
}

// parseFuncDeclMember parses a member function declaration/definition,
// threading the class's default access specifier through, and returns
// the new Function entity's id so the caller can record it among the
// class's Members.
func (p *Parser) parseFuncDeclMember(hostScope, hostClass uint32, ret typlex.Typlex, name string, nameIdx, argOpen int, access entity.Scope) (int, uint32, error) {
	return p.parseFunc(hostScope, hostClass, ret, name, nameIdx, argOpen, access)
}

func (p *Parser) parseFunc(hostScope, hostClass uint32, ret typlex.Typlex, name string, nameIdx, argOpen int, access entity.Scope) (int, uint32, error) {
	args, argsEnd, err := p.parseFuncArgs(hostScope, argOpen)
	if err != nil {
		return skipStatement(p.Toks, argOpen), entity.None, err
	}

	id := p.Entities.New(entity.KindFunction)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	e.Typ = ret
	e.Args = args
	e.ParentOwner = hostClass
	e.Scope = access
	e.MinArgs = countMinArgs(p.Entities, args)
	e.ExtendedName = extendedName(p.Entities, name, args)
	e.DeclFile = p.File
	if hostClass == entity.None {
		e.Attrs |= entity.AttrGlobalFn
	}

	p.Scopes.Insert(hostScope, name, id, p.Entities)

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
		return pos + 1, id, nil // pure declaration/prototype
	}
	if pos >= len(p.Toks) || p.Toks[pos].Kind != token.CurlyOpen {
		return skipStatement(p.Toks, pos), id, nil
	}

	open := pos
	close := open
	if p.Toks[open].HasPartner() {
		close = int(p.Toks[open].Partner)
	}

	if comTok := p.Toks[open]; comTok.ComPost != token.None {
		b := comment.ParseFunction(commentText(p.Raw, comTok.ComPost))
		comment.Attach(e, b)
		markCommentProcessed(p.Raw, comTok.ComPost)
		comment.ValidateReturn(p.Entities, e, p.File, comTok.Line, p.Chain)
	}

	funcScope := p.Scopes.New(id, hostScope)
	for _, argID := range args {
		arg := p.Entities.Get(argID)
		p.Scopes.Insert(funcScope, arg.NameText, argID, p.Entities)
	}

	e.DefFile = p.File

	if hostClass != entity.None {
		p.Deferred = append(p.Deferred, DeferredBody{
			FuncID: id, FuncScope: funcScope, HostClass: hostClass,
			Open: open, Close: close,
		})
		return close + 1, id, nil
	}

	stmts, err := p.parseCodeBody(funcScope, hostClass, open+1, close)
	if err != nil {
		return close + 1, id, err
	}
	e.Statements = stmts

	return close + 1, id, nil
}

// parseFuncArgs implements spec §4.10's argument-list parse (grounded on
// ceFile::ProcFuncArg): each argument is a typlex plus an optional name,
// installed as a Variable entity.
func (p *Parser) parseFuncArgs(hostScope uint32, open int) ([]uint32, int, error) {
	close := open
	if p.Toks[open].HasPartner() {
		close = int(p.Toks[open].Partner)
	}

	var ids []uint32
	pos := open + 1
	for pos < close {
		if p.Toks[pos].Kind == token.Ellipsis {
			id := p.Entities.New(entity.KindVariable)
			e := p.Entities.Get(id)
			e.Typ = typlex.Typlex{BaseType: typlex.NoType, Attrs: typlex.AttrVararg}
			ids = append(ids, id)
			pos++
			continue
		}

		typ, after, err := GetTyplex(p, hostScope, pos)
		if err != nil {
			pos++
			continue
		}
		name := ""
		if after < close && p.Toks[after].Kind == token.Word {
			name = p.Toks[after].Text
			after++
		}
		n, after2 := getArrayExtent(p.Toks, after)
		typ.Elements = n

		id := p.Entities.New(entity.KindVariable)
		e := p.Entities.Get(id)
		e.NameText = name
		e.Typ = typ

		// Default argument value: "= expr" is skipped up to the next comma
		// or the closing ')'; whether an argument has a default is not
		// recorded.
		pos = after2
		if pos < close && p.Toks[pos].Kind == token.OpEq {
			for pos < close && p.Toks[pos].Kind != token.Sep {
				pos++
			}
		}

		ids = append(ids, id)
		if pos < close && p.Toks[pos].Kind == token.Sep {
			pos++
		}
	}
	return ids, close + 1, nil
}

// countMinArgs returns how many arguments precede a variadic "..." (all of
// them when there is none). Default values are not recorded by
// parseFuncArgs, so an argument with a default still counts as required.
func countMinArgs(ents *entity.Table, args []uint32) int {
	n := 0
	for _, id := range args {
		a := ents.Get(id)
		if a.Typ.IsVararg() {
			break
		}
		n++
	}
	return n
}

// extendedName builds the "name(typlex1,typlex2,...)" overload key (spec
// §3 "Function: ExtendedName") used both for scope-insertion overload
// detection and for export dedup.
func extendedName(ents *entity.Table, name string, args []uint32) string {
	s := name + "("
	for i, id := range args {
		if i > 0 {
			s += ","
		}
		a := ents.Get(id)
		s += typlexKey(a.Typ)
	}
	return s + ")"
}

func typlexKey(t typlex.Typlex) string {
	s := ""
	for i := typlex.Indir(0); i < t.Indir; i++ {
		s += "*"
	}
	if t.IsReference() {
		s += "&"
	}
	if t.BaseType == typlex.NoType {
		return s + "..."
	}
	return s + string(rune('A'+(t.BaseType%26))) + itoa(t.BaseType)
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// parseVariable parses a free (namespace-scope) variable declaration
// (spec §4.9's Variable, grounded on the fallthrough tail of
// ceFile::ProcStatement).
func (p *Parser) parseVariable(hostScope, hostClass uint32, typ typlex.Typlex, name string, nameIdx int) (int, error) {
	return p.installVariable(hostScope, hostClass, typ, name, nameIdx, entity.ScopeGlobal)
}

func (p *Parser) parseVariableMember(hostScope, hostClass uint32, typ typlex.Typlex, name string, nameIdx int, access entity.Scope) (int, uint32, error) {
	next, err := p.installVariable(hostScope, hostClass, typ, name, nameIdx, access)
	if err != nil {
		return next, entity.None, err
	}
	id, _ := p.Resolver.LookupLocal(hostScope, name)
	return next, id, nil
}

func (p *Parser) installVariable(hostScope, hostClass uint32, typ typlex.Typlex, name string, nameIdx int, access entity.Scope) (int, error) {
	n, after := getArrayExtent(p.Toks, nameIdx+1)
	typ.Elements = n

	id := p.Entities.New(entity.KindVariable)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	e.Typ = typ
	e.ParentOwner = hostClass
	e.Scope = access

	p.Scopes.Insert(hostScope, name, id, p.Entities)

	stop := skipStatement(p.Toks, after)
	lastTok := stop - 1
	if lastTok >= 0 && lastTok < len(p.Toks) && p.Toks[lastTok].ComPost != token.None {
		comPost := p.Toks[lastTok].ComPost
		comment.AttachVariable(e, commentText(p.Raw, comPost))
		markCommentProcessed(p.Raw, comPost)
	}
	return stop, nil
}
