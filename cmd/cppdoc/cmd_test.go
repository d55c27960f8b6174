package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdHasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["parse"])
	assert.True(t, names["export"])
	assert.True(t, names["check"])
}

func TestExportCmdWritesXMLFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "thing.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int counter;\n"), 0o644))
	out := filepath.Join(dir, "out.xml")

	root := newRootCmd()
	root.SetArgs([]string{"export", "--out", out, dir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<Variable name="counter"`)
}

func TestCheckCmdRequiresAgainstFlag(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "thing.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int counter;\n"), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"check", dir})
	err := root.Execute()
	assert.Error(t, err)
}

func TestCheckCmdDetectsDrift(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "thing.cpp")
	require.NoError(t, os.WriteFile(src, []byte("int counter;\n"), 0o644))
	snapshot := filepath.Join(dir, "snap.xml")
	require.NoError(t, os.WriteFile(snapshot, []byte("<EntityTable></EntityTable>\n"), 0o644))

	root := newRootCmd()
	root.SetArgs([]string{"check", "--against", snapshot, dir})
	err := root.Execute()
	require.Error(t, err)
	code, ok := err.(exitCode)
	require.True(t, ok)
	assert.Equal(t, 1, int(code))
}
