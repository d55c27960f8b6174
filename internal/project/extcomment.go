package project

import (
	"strings"

	"github.com/oxhq/cppdoc/internal/comment"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/token"
)

// attachExternalComments implements the tail of spec §4.6: "Unattached
// level-0 comments remaining at the end of parse are offered to the
// external-comment processor (§4.11) in order." raw is the file's own
// unpreprocessed stream, whose comment tokens' processed flag was set by
// the parser wherever a comment was actually consumed as a class/function/
// variable doc comment (internal/parser's markCommentProcessed).
func (pr *Project) attachExternalComments(file string, raw []token.Token) {
	for i := range raw {
		if !raw[i].Kind.IsComment() || raw[i].CodeLevel != 0 || raw[i].IsProcessedComment() {
			continue
		}
		b, err := comment.ParseExternal(raw[i].Text)
		if err != nil {
			continue // not an external-directive comment; leave it unattached
		}
		raw[i].Flags |= token.FlagCommentProcessed
		pr.applyExternalBlock(file, raw[i].Line, b)
	}
}

func (pr *Project) applyExternalBlock(file string, line int, b *comment.Block) {
	switch b.Subject {
	case comment.SubjectFnSet:
		members := pr.resolveFnSetMembers(b.GroupOf)
		if len(members) == 0 {
			return
		}
		comment.ResolveFnSetDefaults(members, b)

	case comment.SubjectClass, comment.SubjectFunction:
		id, ok := pr.Resolver.LookupString(strings.TrimSpace(b.Name), entity.None, nil)
		if !ok {
			return
		}
		e := pr.Entities.Get(id)
		if e == nil {
			return
		}
		comment.Attach(e, b)
		if e.Kind == entity.KindFunction {
			comment.ValidateReturn(pr.Entities, e, file, line, pr.Chain)
		}

	default:
		// Synopsis: (and any other directive not addressed by the entity
		// tables) names an article, not an entity; nothing to attach.
	}
}

// resolveFnSetMembers looks up each "Func: name(args)" line of an FnSet:
// block's member list (spec §4.13 item 3), ignoring any line that isn't a
// Func: entry or doesn't resolve.
func (pr *Project) resolveFnSetMembers(lines []string) []*entity.Entity {
	var out []*entity.Entity
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if !strings.HasPrefix(l, "Func:") {
			continue
		}
		sig := strings.TrimSpace(strings.TrimPrefix(l, "Func:"))
		name := sig
		if idx := strings.IndexByte(sig, '('); idx >= 0 {
			name = sig[:idx]
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, ok := pr.Resolver.LookupString(name, entity.None, nil)
		if !ok {
			continue
		}
		if e := pr.Entities.Get(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}
