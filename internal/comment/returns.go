package comment

import (
	"strings"

	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/typlex"
)

// ValidateReturn checks a function entity's RetDesc (already populated by
// Attach) against the return-description rule table keyed to its declared
// return type (spec §4.13 item 2), appending a WARNING diagnostic to chain
// when the comment's Returns: block doesn't match. A function with no
// Returns: block at all is left alone — that's a missing-comment concern,
// not a rule-table violation.
func ValidateReturn(ents *entity.Table, e *entity.Entity, file string, line int, chain *diag.Chain) {
	if chain == nil || e == nil || e.Kind != entity.KindFunction || len(e.RetDesc) == 0 {
		return
	}

	var bad bool
	switch returnCategory(ents, e.Typ) {
	case "void":
		bad = !(len(e.RetDesc) == 1 && e.RetDesc[0].Key == "None")
	case "bool":
		bad = !hasKeys(e.RetDesc, "True", "False")
	case "pointer":
		bad = !hasKeys(e.RetDesc, "Pointer", "NULL")
	case "reference":
		bad = !(len(e.RetDesc) == 1 && isReferenceEntry(e.RetDesc[0]))
	case "numeric":
		bad = !validNumericReturn(e.RetDesc)
	case "enum":
		bad = !validEnumReturn(e.RetDesc)
	case "class":
		bad = !(len(e.RetDesc) == 1 && e.RetDesc[0].Key == "Instance")
	default:
		return // return type falls outside the rule table; nothing to check
	}

	if bad {
		chain.Append(diag.New(diag.Warning, diag.EFormat, "ValidateReturn", file, line, 0,
			"Returns: block does not follow the rule table for %s's declared return type", e.NameText))
	}
}

// returnCategory classifies a return typlex into one of the rule table's
// rows, or "" if no row applies (spec §4.13 item 2's table).
func returnCategory(ents *entity.Table, t typlex.Typlex) string {
	if t.IsPointer() {
		return "pointer"
	}
	if t.IsReference() {
		return "reference"
	}
	base := ents.Get(t.BaseType)
	if base == nil {
		return ""
	}
	switch base.Basis {
	case typlex.BasisVoid:
		return "void"
	case typlex.BasisBool:
		return "bool"
	case typlex.BasisEnum:
		return "enum"
	case typlex.BasisClass, typlex.BasisUnion:
		return "class"
	case typlex.BasisInt8, typlex.BasisInt16, typlex.BasisInt32, typlex.BasisInt64,
		typlex.BasisUint8, typlex.BasisUint16, typlex.BasisUint32, typlex.BasisUint64,
		typlex.BasisFloat, typlex.BasisDouble:
		return "numeric"
	default:
		return ""
	}
}

func hasKeys(descs []entity.Description, keys ...string) bool {
	for _, k := range keys {
		found := false
		for _, d := range descs {
			if d.Key == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func isReferenceEntry(d entity.Description) bool {
	if d.Key == "Reference" {
		return true
	}
	return d.Key == "Const" && strings.HasPrefix(strings.ToLower(strings.TrimSpace(d.Text)), "reference")
}

var numericSignMarkers = map[string]bool{
	"<0": true, "-1": true, ">0": true, "0+": true, "+1": true, "1": true, "0": true,
}

var numericSingleWords = map[string]bool{
	"Number": true, "Total": true, "Value": true, "Length": true, "Address": true,
}

func validNumericReturn(descs []entity.Description) bool {
	if len(descs) == 1 && numericSingleWords[descs[0].Key] {
		return true
	}
	for _, d := range descs {
		if !numericSignMarkers[d.Key] {
			return false
		}
	}
	return true
}

func validEnumReturn(descs []entity.Description) bool {
	if len(descs) == 0 {
		return false
	}
	for _, d := range descs {
		if d.Key != "Enum" && !strings.HasPrefix(d.Key, "E_") {
			return false
		}
	}
	return true
}
