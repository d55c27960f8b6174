package discovery

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
	return dir
}

func writeFiles(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(name, []byte("// x"), 0o644))
	}
}

func TestClassifyBySuffix(t *testing.T) {
	assert.Equal(t, KindHeader, ClassifyBySuffix("foo.h"))
	assert.Equal(t, KindSource, ClassifyBySuffix("foo.cpp"))
	assert.Equal(t, KindDoc, ClassifyBySuffix("foo.txt"))
	assert.Equal(t, KindSystem, ClassifyBySuffix("foo.sys"))
	assert.Equal(t, KindUnknown, ClassifyBySuffix("foo.md"))
}

func TestScanTargetsClassifiesBySuffix(t *testing.T) {
	withTempDir(t)
	writeFiles(t, "a.h", "b.cpp", "c.txt", "d.sys", "README.md")

	s := New(Config{NoIgnore: true})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	require.NoError(t, err)
	require.Len(t, files, 4)

	kinds := map[string]Kind{}
	for _, f := range files {
		kinds[f.Path] = f.Kind
	}
	assert.Equal(t, KindHeader, kinds["a.h"])
	assert.Equal(t, KindSource, kinds["b.cpp"])
	assert.Equal(t, KindDoc, kinds["c.txt"])
	assert.Equal(t, KindSystem, kinds["d.sys"])
}

func TestScanTargetsHonorsIgnoreFile(t *testing.T) {
	withTempDir(t)
	writeFiles(t, "keep.cpp", "skip.cpp")
	require.NoError(t, os.WriteFile(".cppdocignore", []byte("skip.cpp\n"), 0o644))

	s := New(Config{})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "keep.cpp", files[0].Path)
}

func TestScanTargetsExcludeGlob(t *testing.T) {
	withTempDir(t)
	writeFiles(t, "gen.cpp", "manual.cpp")

	s := New(Config{NoIgnore: true, ExcludeGlobs: []string{"gen.*"}})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "manual.cpp", files[0].Path)
}

func TestScanTargetsIncludeGlob(t *testing.T) {
	withTempDir(t)
	writeFiles(t, "foo.cpp", "bar.cpp")

	s := New(Config{NoIgnore: true, IncludeGlobs: []string{"foo.*"}})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "foo.cpp", files[0].Path)
}

func TestScanTargetsSkipsVendorDirectory(t *testing.T) {
	dir := withTempDir(t)
	require.NoError(t, os.Mkdir("vendor", 0o755))
	writeFiles(t, "main.cpp")
	require.NoError(t, os.WriteFile("vendor/third.cpp", []byte("// x"), 0o644))
	_ = dir

	s := New(Config{NoIgnore: true})
	files, err := s.ScanTargets(context.Background(), []string{"."})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.cpp", files[0].Path)
}
