package project

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/discovery"
	"github.com/oxhq/cppdoc/internal/entity"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := dir + "/" + name
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessComponentParsesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.cpp", "int add(int a, int b) { return a + b; }")

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{{Path: path, Kind: discovery.KindSource}})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	id, ok := pr.Scopes.LookupLocal(pr.RootScope, "add")
	require.True(t, ok)
	fn := pr.Entities.Get(id)
	assert.Equal(t, entity.KindFunction, fn.Kind)
}

func TestProcessComponentResolvesInclude(t *testing.T) {
	dir := t.TempDir()
	headerPath := writeFile(t, dir, "util.h", "int helper();")
	srcPath := writeFile(t, dir, "main.cpp", `#include "util.h"
int main() { return 0; }`)

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{
		{Path: headerPath, Kind: discovery.KindHeader},
		{Path: srcPath, Kind: discovery.KindSource},
	})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	_, ok := pr.Scopes.LookupLocal(pr.RootScope, "helper")
	assert.True(t, ok)
	_, ok = pr.Scopes.LookupLocal(pr.RootScope, "main")
	assert.True(t, ok)
}

func TestProcessComponentAppliesSystemMask(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "sys.sys", "int sysFunc();")

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{{Path: path, Kind: discovery.KindSystem}})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	id, ok := pr.Scopes.LookupLocal(pr.RootScope, "sysFunc")
	require.True(t, ok)
	assert.True(t, pr.Entities.Get(id).Attrs.Has(entity.AttrInternal))
}

func TestProcessComponentLinksOutOfClassMemberDefinition(t *testing.T) {
	dir := t.TempDir()
	headerPath := writeFile(t, dir, "a.h", "class A { public: int f(int a); };")
	srcPath := writeFile(t, dir, "a.cpp", "int A::f(int a) { return a + 1; }")

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{
		{Path: headerPath, Kind: discovery.KindHeader},
		{Path: srcPath, Kind: discovery.KindSource},
	})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	classID, ok := pr.Scopes.LookupLocal(pr.RootScope, "A")
	require.True(t, ok)
	class := pr.Entities.Get(classID)
	require.Len(t, class.Members, 1)

	fn := pr.Entities.Get(class.Members[0])
	assert.Equal(t, headerPath, fn.DeclFile)
	assert.Equal(t, srcPath, fn.DefFile)
	require.Len(t, fn.Statements, 1)
	assert.Equal(t, entity.StmtReturn, fn.Statements[0].Kind)
}

func TestProcessComponentAppliesExternalFunctionComment(t *testing.T) {
	dir := t.TempDir()
	src := "/* Function: foo\nDoes the thing.\n*/\nvoid foo() {}\n"
	path := writeFile(t, dir, "a.cpp", src)

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{{Path: path, Kind: discovery.KindSource}})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	id, ok := pr.Scopes.LookupLocal(pr.RootScope, "foo")
	require.True(t, ok)
	assert.Equal(t, "Does the thing.", pr.Entities.Get(id).Desc)
}

func TestProcessComponentAppliesExternalFnSetDefaults(t *testing.T) {
	dir := t.TempDir()
	src := "/* FnSet: helpers\nFunc: max(int,int)\nFunc: min(int,int)\n\nArguments:\n1) a first\n2) b second\n*/\n" +
		"int max(int a, int b) { return a; }\nint min(int a, int b) { return a; }\n"
	path := writeFile(t, dir, "a.cpp", src)

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{{Path: path, Kind: discovery.KindSource}})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 0, failed)

	maxID, ok := pr.Scopes.LookupLocal(pr.RootScope, "max")
	require.True(t, ok)
	minID, ok := pr.Scopes.LookupLocal(pr.RootScope, "min")
	require.True(t, ok)

	assert.Len(t, pr.Entities.Get(maxID).ArgDesc, 2)
	assert.Len(t, pr.Entities.Get(minID).ArgDesc, 2)
}

func TestProcessComponentReportsFailedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.cpp", "int x = \"unterminated;")

	pr := New(4)
	comp := pr.AddComponent("core", []discovery.File{{Path: path, Kind: discovery.KindSource}})

	failed, err := pr.ProcessComponent(comp)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.NotEmpty(t, pr.Chain.Entries())
}
