package export

import (
	"github.com/pmezard/go-difflib/difflib"
)

// SnapshotDiff unified-diffs two successive exportEntities XML snapshots of
// the same component, surfacing entity-model drift between runs (backs the
// `check` subcommand).
func SnapshotDiff(oldName, newName, oldXML, newXML string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldXML),
		B:        difflib.SplitLines(newXML),
		FromFile: oldName,
		ToFile:   newName,
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}
