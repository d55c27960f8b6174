package comment

import "github.com/oxhq/cppdoc/internal/entity"

// Attach applies a parsed internal comment Block to the entity it
// documents, filling in Desc and, for functions, ArgDesc/RetDesc (spec
// §4.13: "one comment, one token" — each declaration gets at most one
// attached comment).
func Attach(e *entity.Entity, b *Block) {
	if b == nil {
		return
	}
	e.Desc = b.Body
	if b.Category != "" && e.Desc != "" {
		e.Desc = e.Desc + "\n\nCategory: " + b.Category
	}
	if e.Kind == entity.KindFunction {
		e.ArgDesc = b.Args
		e.RetDesc = b.Returns
	}
}

// AttachVariable sets a variable's trailing line-comment as its
// description (spec §4.6 item b: "after each variable declaration").
func AttachVariable(e *entity.Entity, text string) {
	e.Desc = text
}

// ResolveFnSetDefaults applies an external FnSet: comment's Argument(s)/
// Returns as the fallback description for any group member function that
// did not specify its own (spec: "these then serve as defaults if not
// specified in the opening comment of the function").
func ResolveFnSetDefaults(members []*entity.Entity, b *Block) {
	for _, m := range members {
		if m == nil || m.Kind != entity.KindFunction {
			continue
		}
		if len(m.ArgDesc) == 0 {
			m.ArgDesc = b.Args
		}
		if len(m.RetDesc) == 0 {
			m.RetDesc = b.Returns
		}
		if m.Desc == "" {
			m.Desc = b.Body
		}
	}
}
