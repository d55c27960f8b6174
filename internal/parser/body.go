package parser

import (
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/token"
)

// parseCodeBody implements spec §4.11: splitting a function body's token
// range into a sequence of classified statements (grounded on
// ceFile::ProcCodeBody/ProcCodeStmt).
func (p *Parser) parseCodeBody(funcScope, hostClass uint32, start, end int) ([]entity.Statement, error) {
	var out []entity.Statement
	pos := start
	for pos < end {
		stmt, next := p.parseOneStatement(funcScope, pos, end)
		if next <= pos {
			next = pos + 1
		}
		if stmt.Kind != StmtNone {
			out = append(out, stmt)
		}
		pos = next
	}
	return out, nil
}

// StmtNone marks a skipped token span that produced no statement record
// (e.g. a lone closing brace consumed by a prior nested block).
const StmtNone = entity.StmtKind(-1)

// parseOneStatement classifies and consumes one statement starting at
// pos, returning it (Kind==StmtNone if nothing was produced) and the
// index to resume from.
func (p *Parser) parseOneStatement(funcScope uint32, pos, end int) (entity.Statement, int) {
	tok := p.Toks[pos]
	level := tok.CodeLevel

	switch tok.Kind {
	case token.CurlyOpen:
		close := pos
		if tok.HasPartner() {
			close = int(tok.Partner)
		}
		inner, _ := p.parseCodeBody(funcScope, entity.None, pos+1, close)
		_ = inner // the nested block's statements are parsed but not added to the enclosing list; only the StmtBlock record below is returned
		return entity.Statement{Kind: entity.StmtBlock, Line: tok.Line, Start: uint32(pos), End: uint32(close), Level: level}, close + 1

	case token.CmdReturn:
		endIdx := scanToEnd(p.Toks, pos, end)
		return entity.Statement{Kind: entity.StmtReturn, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level, IsReturn: true}, endIdx + 1

	case token.CmdBreak:
		endIdx := scanToEnd(p.Toks, pos, end)
		return entity.Statement{Kind: entity.StmtBreak, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.CmdContinue:
		endIdx := scanToEnd(p.Toks, pos, end)
		return entity.Statement{Kind: entity.StmtContinue, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.CmdGoto:
		endIdx := scanToEnd(p.Toks, pos, end)
		return entity.Statement{Kind: entity.StmtGoto, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.CmdDelete:
		endIdx := scanToEnd(p.Toks, pos, end)
		return entity.Statement{Kind: entity.StmtDelete, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.CmdIf:
		return p.parseControlWithCondition(entity.StmtIf, pos, end)

	case token.CmdSwitch:
		return p.parseControlWithCondition(entity.StmtSwitch, pos, end)

	case token.CmdFor:
		return p.parseControlWithCondition(entity.StmtFor, pos, end)

	case token.CmdWhile:
		return p.parseControlWithCondition(entity.StmtWhile, pos, end)

	case token.CmdDo:
		// "do { ... } while ( cond ) ;"
		bodyStart := pos + 1
		if bodyStart < end && p.Toks[bodyStart].Kind == token.CurlyOpen {
			close := bodyStart
			if p.Toks[bodyStart].HasPartner() {
				close = int(p.Toks[bodyStart].Partner)
			}
			p.parseCodeBody(funcScope, entity.None, bodyStart+1, close)
			endIdx := scanToEnd(p.Toks, close+1, end)
			return entity.Statement{Kind: entity.StmtDoWhile, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1
		}
		endIdx := scanToEnd(p.Toks, pos, end)
		return entity.Statement{Kind: entity.StmtDoWhile, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.CmdCase:
		endIdx := pos
		for endIdx < end && p.Toks[endIdx].Kind != token.OpColon {
			endIdx++
		}
		return entity.Statement{Kind: entity.StmtCase, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.CmdDefault:
		endIdx := pos
		for endIdx < end && p.Toks[endIdx].Kind != token.OpColon {
			endIdx++
		}
		return entity.Statement{Kind: entity.StmtDefault, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1

	case token.End:
		return entity.Statement{Kind: StmtNone}, pos + 1
	}

	// Label: "name:" not followed by a ternary-matched colon (spec
	// §4.4's ?: matcher leaves label colons unmatched).
	if tok.Kind == token.Word && pos+1 < end && p.Toks[pos+1].Kind == token.OpColon && !p.Toks[pos+1].HasPartner() {
		return entity.Statement{Kind: entity.StmtLabel, Line: tok.Line, Start: uint32(pos), End: uint32(pos + 1), Level: level}, pos + 2
	}

	// Otherwise a bare expression statement: assignment, call,
	// increment/decrement, or declaration-with-initializer.
	endIdx := scanToEnd(p.Toks, pos, end)
	return entity.Statement{Kind: entity.StmtExpr, Line: tok.Line, Start: uint32(pos), End: uint32(endIdx), Level: level}, endIdx + 1
}

// parseControlWithCondition handles if/switch/for/while: it consumes the
// ( ... ) condition (recorded as the statement's token span) and, if a
// brace block follows, recurses into it; a single non-brace sub-statement
// is likewise consumed so the caller's scan resumes correctly.
func (p *Parser) parseControlWithCondition(kind entity.StmtKind, pos, end int) (entity.Statement, int) {
	tok := p.Toks[pos]
	level := tok.CodeLevel
	i := pos + 1
	condEnd := i
	if i < end && p.Toks[i].Kind == token.RoundOpen {
		close := i
		if p.Toks[i].HasPartner() {
			close = int(p.Toks[i].Partner)
		}
		condEnd = close
		i = close + 1
	}

	if i < end && p.Toks[i].Kind == token.CurlyOpen {
		close := i
		if p.Toks[i].HasPartner() {
			close = int(p.Toks[i].Partner)
		}
		p.parseCodeBody(entity.None, entity.None, i+1, close)
		i = close + 1
	} else if i < end {
		_, next := p.parseOneStatement(entity.None, i, end)
		i = next
	}

	return entity.Statement{Kind: kind, Line: tok.Line, Start: uint32(pos), End: uint32(condEnd), Level: level}, i
}

// scanToEnd returns the index of the first ';' at or after pos, whatever
// its brace-nesting level, or end if none is found (malformed input).
func scanToEnd(toks []token.Token, pos, end int) int {
	for pos < end {
		if toks[pos].Kind == token.End {
			return pos
		}
		pos++
	}
	return end
}
