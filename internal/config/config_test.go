package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv() {
	for _, k := range []string{
		"CPPDOC_OUTPUT_DIR", "CPPDOC_MAX_INCLUDE_DEPTH",
		"CPPDOC_TAB_WIDTH", "CPPDOC_NO_IGNORE",
	} {
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv()
	defer clearEnv()

	cfg := Load()
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, 10, cfg.MaxIncludeDep)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.False(t, cfg.NoIgnore)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("CPPDOC_OUTPUT_DIR", "/tmp/out")
	os.Setenv("CPPDOC_MAX_INCLUDE_DEPTH", "20")
	os.Setenv("CPPDOC_TAB_WIDTH", "8")
	os.Setenv("CPPDOC_NO_IGNORE", "true")

	cfg := Load()
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 20, cfg.MaxIncludeDep)
	assert.Equal(t, 8, cfg.TabWidth)
	assert.True(t, cfg.NoIgnore)
}

func TestLoadIgnoresInvalidNumbers(t *testing.T) {
	clearEnv()
	defer clearEnv()

	os.Setenv("CPPDOC_MAX_INCLUDE_DEPTH", "not-a-number")
	cfg := Load()
	assert.Equal(t, 10, cfg.MaxIncludeDep)
}

func TestLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/project.xml"
	xmlDoc := `<Project>
  <Component name="core">
    <File>a.h</File>
    <File>a.cpp</File>
  </Component>
  <Component name="util">
    <File>b.h</File>
  </Component>
</Project>`
	require.NoError(t, os.WriteFile(path, []byte(xmlDoc), 0o644))

	pf, err := LoadProject(path)
	require.NoError(t, err)
	require.Len(t, pf.Components, 2)
	assert.Equal(t, "core", pf.Components[0].Name)
	assert.Equal(t, []string{"a.h", "a.cpp"}, pf.Components[0].Files)
	assert.Equal(t, "util", pf.Components[1].Name)
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := LoadProject("/nonexistent/path/project.xml")
	assert.Error(t, err)
}
