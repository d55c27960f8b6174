package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/entity"
)

func TestPersistEntitiesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db, err := Connect(dir+"/test.db", false)
	require.NoError(t, err)

	ents, _ := buildSample(t, "int counter; int add(int a, int b) { return a + b; }")
	require.NoError(t, PersistEntities(db, ents))

	var count int64
	require.NoError(t, db.Model(&EntityRow{}).Count(&count).Error)
	assert.Equal(t, int64(ents.Len()-1), count)

	var row EntityRow
	require.NoError(t, db.Where("name = ?", "add").First(&row).Error)
	assert.Equal(t, "Function", row.Kind)
}

func TestPersistDiagnostics(t *testing.T) {
	dir := t.TempDir()
	db, err := Connect(dir+"/test.db", false)
	require.NoError(t, err)

	chain := &diag.Chain{}
	chain.Append(diag.New(diag.Error, diag.ESyntax, "parseClass", "a.cpp", 10, 3, "unexpected token"))
	require.NoError(t, PersistDiagnostics(db, chain))

	var count int64
	require.NoError(t, db.Model(&DiagnosticRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestScopeText(t *testing.T) {
	assert.Equal(t, "private", scopeText(entity.ScopePrivate))
	assert.Equal(t, "global", scopeText(entity.ScopeGlobal))
}
