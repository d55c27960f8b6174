package parser

import (
	"github.com/oxhq/cppdoc/internal/comment"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/token"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// parseClass implements spec §4.9: class/struct definitions, default
// access specifier by keyword (private for class, public for struct),
// optional single base class, and member dispatch within the body.
//
// Grounded on ceFile::ProcClass.
func (p *Parser) parseClass(hostScope, parentClass uint32, pos int) (int, error) {
	isStruct := p.Toks[pos].Kind == token.KwStruct
	pos++ // "class"/"struct"

	name := ""
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.Word {
		name = p.Toks[pos].Text
		pos++
	}

	id := p.Entities.New(entity.KindClass)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	e.ParentClass = parentClass
	if isStruct {
		e.Attrs |= entity.AttrStruct
	}
	e.BaseClass = entity.None

	// Optional base class: "class Foo : public Bar"
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.OpColon {
		pos++
		for pos < len(p.Toks) {
			switch p.Toks[pos].Kind {
			case token.KwPublic, token.KwPrivate, token.KwProtected:
				pos++
				continue
			}
			break
		}
		if pos < len(p.Toks) && p.Toks[pos].Kind == token.Word {
			names, next := collectQualifiedName(p.Toks, pos)
			if baseID, ok := p.Resolver.LookupString(joinQualified(names), hostScope, p.Using); ok {
				e.BaseClass = baseID
			}
			pos = next
		}
	}

	if pos >= len(p.Toks) || p.Toks[pos].Kind != token.CurlyOpen {
		// Forward declaration: "class Foo;"
		if name != "" {
			p.Scopes.Insert(hostScope, name, id, p.Entities)
		}
		return skipStatement(p.Toks, pos), nil
	}

	open := pos
	close := open
	if p.Toks[open].HasPartner() {
		close = int(p.Toks[open].Partner)
	}
	e.BodyStart = uint32(open)
	e.BodyEnd = uint32(close)

	classScope := p.Scopes.New(id, hostScope)
	e.ScopeTable = classScope
	if name != "" {
		p.Scopes.Insert(hostScope, name, id, p.Entities)
	}

	if comTok := p.Toks[open]; comTok.ComPost != token.None {
		b := comment.ParseClass(commentText(p.Raw, comTok.ComPost))
		comment.Attach(e, b)
		markCommentProcessed(p.Raw, comTok.ComPost)
	}

	defaultAccess := entity.ScopePrivate
	if isStruct {
		defaultAccess = entity.ScopePublic
	}
	access := defaultAccess

	inner := open + 1
	for inner < close {
		switch p.Toks[inner].Kind {
		case token.KwPublic:
			access = entity.ScopePublic
			inner += 2 // the label and its ':'
			continue
		case token.KwPrivate:
			access = entity.ScopePrivate
			inner += 2
			continue
		case token.KwProtected:
			access = entity.ScopeProtected
			inner += 2
			continue
		}

		next, memberID, err := p.parseMember(classScope, id, inner, access)
		if err != nil {
			return inner, err
		}
		if memberID != entity.None {
			e = p.Entities.Get(id) // parseMember may have reallocated the table
			e.Members = append(e.Members, memberID)
		}
		if next <= inner {
			next = inner + 1
		}
		inner = next
	}

	return close + 1, nil
}

// parseMember parses one class-body declaration (nested type, member
// variable, or member function) and returns the index to resume from and
// the new entity's id (entity.None for declarations that install
// nothing addressable, e.g. a using-declaration).
func (p *Parser) parseMember(classScope, hostClass uint32, pos int, access entity.Scope) (int, uint32, error) {
	switch p.Toks[pos].Kind {
	case token.KwClass, token.KwStruct:
		next, err := p.parseClass(classScope, hostClass, pos)
		return next, entity.None, err
	case token.KwUnion:
		next, err := p.parseUnion(classScope, hostClass, pos)
		return next, entity.None, err
	case token.KwEnum:
		next, err := p.parseEnum(classScope, pos)
		return next, entity.None, err
	case token.KwTypedef:
		next, err := p.parseTypedef(classScope, pos)
		return next, entity.None, err
	case token.KwFriend:
		return skipStatement(p.Toks, pos), entity.None, nil
	}

	typ, after, err := GetTyplex(p, classScope, pos)
	if err != nil {
		return skipStatement(p.Toks, pos), entity.None, nil
	}
	if after >= len(p.Toks) {
		return after, entity.None, nil
	}

	// Constructor/destructor: name matches the class, no return type token
	// was really consumed (GetTyplex will have misread the class name as a
	// type); detect by checking the type's base is the host class and the
	// following token opens an arg list directly.
	if after < len(p.Toks) && p.Toks[after].Kind == token.RoundOpen && typ.BaseType == hostClass {
		return p.parseFuncDeclMember(classScope, hostClass, typ, p.Entities.Get(hostClass).NameText, after-1, after, access)
	}

	if p.Toks[after].Kind != token.Word {
		return skipStatement(p.Toks, pos), entity.None, nil
	}
	name := p.Toks[after].Text
	nameIdx := after
	next := after + 1

	if next < len(p.Toks) && p.Toks[next].Kind == token.RoundOpen {
		n, id, err := p.parseFuncDeclMember(classScope, hostClass, typ, name, nameIdx, next, access)
		return n, id, err
	}

	n, id, err := p.parseVariableMember(classScope, hostClass, typ, name, nameIdx, access)
	return n, id, err
}

// parseUnion implements spec §4.9's union variant: like a class but with
// a Host back-reference instead of a base-class chain (grounded on
// ceFile::ProcUnion).
func (p *Parser) parseUnion(hostScope, host uint32, pos int) (int, error) {
	pos++ // "union"
	name := ""
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.Word {
		name = p.Toks[pos].Text
		pos++
	}

	id := p.Entities.New(entity.KindUnion)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	e.Host = host

	if pos >= len(p.Toks) || p.Toks[pos].Kind != token.CurlyOpen {
		if name != "" {
			p.Scopes.Insert(hostScope, name, id, p.Entities)
		}
		return skipStatement(p.Toks, pos), nil
	}
	open := pos
	close := open
	if p.Toks[open].HasPartner() {
		close = int(p.Toks[open].Partner)
	}

	unionScope := p.Scopes.New(id, hostScope)
	e.ScopeTable = unionScope
	if name != "" {
		p.Scopes.Insert(hostScope, name, id, p.Entities)
	}

	inner := open + 1
	for inner < close {
		typ, after, err := GetTyplex(p, unionScope, inner)
		if err != nil {
			inner++
			continue
		}
		if after >= len(p.Toks) || p.Toks[after].Kind != token.Word {
			inner = skipStatement(p.Toks, inner)
			continue
		}
		_, _, err = p.parseVariableMember(unionScope, id, typ, p.Toks[after].Text, after, entity.ScopePublic)
		if err != nil {
			return inner, err
		}
		inner = skipStatement(p.Toks, inner)
	}

	return close + 1, nil
}

// parseEnum implements spec §4.9's enum variant: ordered values, each
// optionally assigned an explicit numeral (grounded on ceFile::ProcEnum).
func (p *Parser) parseEnum(hostScope uint32, pos int) (int, error) {
	pos++ // "enum"
	name := ""
	if pos < len(p.Toks) && p.Toks[pos].Kind == token.Word {
		name = p.Toks[pos].Text
		pos++
	}
	if pos >= len(p.Toks) || p.Toks[pos].Kind != token.CurlyOpen {
		return skipStatement(p.Toks, pos), nil
	}
	open := pos
	close := open
	if p.Toks[open].HasPartner() {
		close = int(p.Toks[open].Partner)
	}

	id := p.Entities.New(entity.KindEnum)
	e := p.Entities.Get(id)
	e.NameText = name
	e.Component = p.Component
	e.Basis = typlex.BasisEnum
	e.ValuesByName = map[string]uint32{}
	e.ValuesByNum = map[int32]uint32{}
	if name != "" {
		p.Scopes.Insert(hostScope, name, id, p.Entities)
	}

	nextVal := int32(0)
	i := open + 1
	for i < close {
		if p.Toks[i].Kind != token.Word {
			i++
			continue
		}
		valName := p.Toks[i].Text
		i++
		if i < close && p.Toks[i].Kind == token.OpEq {
			i++
			if i < close && (p.Toks[i].Kind == token.Number || p.Toks[i].Kind == token.HexNum) {
				n := int32(0)
				for _, c := range p.Toks[i].Text {
					if c < '0' || c > '9' {
						break
					}
					n = n*10 + int32(c-'0')
				}
				nextVal = n
				i++
			}
		}
		vid := p.Entities.New(entity.KindEnumValue)
		e = p.Entities.Get(id) // New may have reallocated the table
		ve := p.Entities.Get(vid)
		ve.NameText = valName
		ve.ParentEnum = id
		ve.NumVal = nextVal
		e.ValuesByName[valName] = vid
		e.ValuesByNum[nextVal] = vid
		e.OrderedVals = append(e.OrderedVals, vid)
		p.Scopes.Insert(hostScope, valName, vid, p.Entities)
		nextVal++

		if i < close && p.Toks[i].Kind == token.Sep {
			i++
		}
	}

	return close + 1, nil
}

