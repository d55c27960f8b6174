package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotDiffDetectsChange(t *testing.T) {
	old := "<EntityTable>\n  <Variables>\n    <Variable name=\"x\"/>\n  </Variables>\n</EntityTable>\n"
	updated := "<EntityTable>\n  <Variables>\n    <Variable name=\"x\"/>\n    <Variable name=\"y\"/>\n  </Variables>\n</EntityTable>\n"

	out, err := SnapshotDiff("run1.xml", "run2.xml", old, updated)
	require.NoError(t, err)
	assert.Contains(t, out, "+    <Variable name=\"y\"/>")
}

func TestSnapshotDiffNoChange(t *testing.T) {
	same := "<EntityTable></EntityTable>\n"
	out, err := SnapshotDiff("a.xml", "b.xml", same, same)
	require.NoError(t, err)
	assert.Empty(t, out)
}
