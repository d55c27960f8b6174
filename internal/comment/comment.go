// Package comment implements spec §4.6/§4.13: associating a raw comment
// token with the declaration it documents, and pulling structured fields
// (Category:, Argument(s):, Returns:, Class:/Function:/FnSet:/Synopsis:)
// out of its text.
//
// Grounded on ceComment.cpp's ProcArgDesc/ProcRetDesc and the external
// comment section-directive dispatch.
package comment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oxhq/cppdoc/internal/entity"
)

// Subject is the entity kind an external (free-standing) comment block
// documents, named by its leading directive line (spec §4.13 item 3).
type Subject int

const (
	SubjectNone Subject = iota
	SubjectClass
	SubjectFunction
	SubjectFnSet
	SubjectSynopsis
)

// Block is one parsed structured comment (internal, to a class/function,
// or external/free-standing).
type Block struct {
	Subject  Subject
	Name     string // subject's name, external comments only (spec §4.13 item 3)
	Category string
	Args     []entity.Description
	Returns  []entity.Description
	GroupOf  []string // FnSet: every non-empty line after the directive line; members are its "Func:" lines
	Body     string    // remaining free text after structured lines are consumed
}

// externalDirectives maps an external comment's opening line to the
// Subject it names (spec §4.13 item 3, grounded on the zi.Equiv(...)
// dispatch chain in ceComment.cpp around line 518).
var externalDirectives = []struct {
	prefix  string
	subject Subject
}{
	{"Class:", SubjectClass},
	{"Function:", SubjectFunction},
	{"FnSet:", SubjectFnSet},
	{"Synopsis:", SubjectSynopsis},
}

// ParseExternal parses a free-standing comment block (one appearing
// outside any declaration) that must open with an explicit subject
// directive to identify what it documents.
func ParseExternal(text string) (*Block, error) {
	trimmed := strings.TrimLeft(text, " \t\n")
	for _, d := range externalDirectives {
		if strings.HasPrefix(trimmed, d.prefix) {
			b := &Block{Subject: d.subject}
			rest := strings.TrimSpace(trimmed[len(d.prefix):])
			lines := strings.SplitN(rest, "\n", 2)
			name := strings.TrimSpace(lines[0])
			remainder := ""
			if len(lines) > 1 {
				remainder = lines[1]
			}
			if d.subject == SubjectFnSet {
				b.GroupOf = splitGroupMembers(remainder)
			}
			parseBody(b, remainder)
			b.Name = name
			return b, nil
		}
	}
	return nil, fmt.Errorf("external comment has no recognized subject directive")
}

// ParseClass parses an internal comment immediately following a class,
// struct, union, or enum's opening brace: free text plus an optional
// Category: line (spec §4.13 item 1).
func ParseClass(text string) *Block {
	b := &Block{Subject: SubjectClass}
	parseBody(b, text)
	return b
}

// ParseFunction parses an internal comment immediately following a
// function's opening brace: free text, Category:, Argument(s):, and
// Returns: sections (spec §4.13 item 2, grounded on ProcArgDesc/ProcRetDesc).
func ParseFunction(text string) *Block {
	b := &Block{Subject: SubjectFunction}
	parseBody(b, text)
	return b
}

// parseBody extracts Category:/Argument(s):/Returns: lines from text into
// b, leaving whatever is left (the free-text description) in b.Body.
func parseBody(b *Block, text string) {
	lines := strings.Split(text, "\n")
	var bodyLines []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Category:"):
			b.Category = strings.TrimSpace(strings.TrimPrefix(trimmed, "Category:"))
			i++
		case strings.HasPrefix(trimmed, "Arguments:") || strings.HasPrefix(trimmed, "Argument:"):
			single := strings.HasPrefix(trimmed, "Argument:")
			n, consumed := parseArgList(lines[i:], single)
			b.Args = append(b.Args, n...)
			i += consumed
		case strings.HasPrefix(trimmed, "Returns:"):
			n, consumed := parseRetList(lines[i:])
			b.Returns = append(b.Returns, n...)
			i += consumed
		default:
			bodyLines = append(bodyLines, line)
			i++
		}
	}
	b.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
}

// parseArgList parses an Argument(s): section starting at lines[0], per
// spec §4.13's "n) name description" / "name description" forms
// (grounded on ProcArgDesc). Returns the descriptions found and how many
// input lines were consumed.
func parseArgList(lines []string, single bool) ([]entity.Description, int) {
	marker := "Arguments:"
	if single {
		marker = "Argument:"
	}
	first := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), marker))

	var out []entity.Description
	consumed := 1
	if first == "None" || first == "" && len(lines) == 1 {
		return out, consumed
	}
	if first != "" {
		if d, ok := parseArgLine(first, !single); ok {
			out = append(out, d)
		}
	}
	for ; consumed < len(lines); consumed++ {
		trimmed := strings.TrimSpace(lines[consumed])
		if trimmed == "" || strings.HasPrefix(trimmed, "Returns:") {
			break
		}
		if d, ok := parseArgLine(trimmed, !single); ok {
			out = append(out, d)
		}
	}
	return out, consumed
}

// parseArgLine parses one "n)\tname\tdescription" or "name\tdescription"
// line into a Description.
func parseArgLine(line string, numbered bool) (entity.Description, bool) {
	if numbered {
		if idx := strings.IndexByte(line, ')'); idx > 0 {
			if _, err := strconv.Atoi(strings.TrimSpace(line[:idx])); err == nil {
				line = strings.TrimSpace(line[idx+1:])
			}
		}
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return entity.Description{}, false
	}
	name := fields[0]
	text := strings.TrimSpace(strings.TrimPrefix(line, name))
	return entity.Description{Key: name, Text: text}, true
}

// parseRetList parses a Returns: section per the return-type-specific
// vocabularies documented in ProcRetDesc (None/True+False/Pointer+NULL/
// numeric sign markers/Instance/free-form), without re-deriving the
// function's static return type here — the parser package supplies that
// context when validating a Block's Returns against spec §4.13's rules.
func parseRetList(lines []string) ([]entity.Description, int) {
	first := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[0]), "Returns:"))
	var out []entity.Description
	consumed := 1
	if first == "None" {
		return out, consumed
	}
	if first != "" {
		if d, ok := parseArgLine(first, false); ok {
			out = append(out, d)
		}
	}
	for ; consumed < len(lines); consumed++ {
		trimmed := strings.TrimSpace(lines[consumed])
		if trimmed == "" {
			break
		}
		if d, ok := parseArgLine(trimmed, false); ok {
			out = append(out, d)
		}
	}
	return out, consumed
}

func splitGroupMembers(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}
