package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCmdFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildProjectFromExplicitProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeCmdFile(t, dir, "util.h", "int helper();\n")
	writeCmdFile(t, dir, "main.cpp", "#include \"util.h\"\nint main() { return 0; }\n")
	projectXML := writeCmdFile(t, dir, "project.xml", `<Project>
  <Component name="app">
    <File>`+filepath.Join(dir, "util.h")+`</File>
    <File>`+filepath.Join(dir, "main.cpp")+`</File>
  </Component>
</Project>`)

	flags := &globalFlags{projectFile: projectXML, tabWidth: 4}
	pr, err := buildProject(flags, nil)
	require.NoError(t, err)
	require.Len(t, pr.Components, 1)
	assert.Equal(t, "app", pr.Components[0].Name)
	assert.Len(t, pr.Components[0].Files, 2)

	failed, err := processAll(pr)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)
}

func TestBuildProjectFromAdHocTargets(t *testing.T) {
	dir := t.TempDir()
	writeCmdFile(t, dir, "lib.cpp", "int add(int a, int b) { return a + b; }\n")

	flags := &globalFlags{tabWidth: 4}
	pr, err := buildProject(flags, []string{dir})
	require.NoError(t, err)
	require.Len(t, pr.Components, 1)
	assert.Equal(t, "default", pr.Components[0].Name)

	failed, err := processAll(pr)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)
}

func TestBuildProjectNoFilesFound(t *testing.T) {
	dir := t.TempDir()
	flags := &globalFlags{tabWidth: 4}
	_, err := buildProject(flags, []string{dir})
	assert.Error(t, err)
}

func TestExitCodeError(t *testing.T) {
	err := exitCode(3)
	assert.Equal(t, "3 file(s) with errors", err.Error())
}
