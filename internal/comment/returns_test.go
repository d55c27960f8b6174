package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/typlex"
)

func newReturnEntity(ents *entity.Table, basis typlex.Basis, indir typlex.Indir, retDesc []entity.Description) *entity.Entity {
	baseID := ents.New(entity.KindStandardType)
	ents.Get(baseID).Basis = basis
	fnID := ents.New(entity.KindFunction)
	fn := ents.Get(fnID)
	fn.NameText = "f"
	fn.Typ = typlex.Typlex{BaseType: baseID, Indir: indir}
	fn.RetDesc = retDesc
	return fn
}

func TestValidateReturnBoolMissingFalseWarns(t *testing.T) {
	ents := entity.NewTable()
	fn := newReturnEntity(ents, typlex.BasisBool, typlex.Instance, []entity.Description{{Key: "True", Text: "ok"}})
	chain := &diag.Chain{}
	ValidateReturn(ents, fn, "test.cpp", 1, chain)
	assert.Len(t, chain.Entries(), 1)
}

func TestValidateReturnBoolWithBothEntriesIsClean(t *testing.T) {
	ents := entity.NewTable()
	fn := newReturnEntity(ents, typlex.BasisBool, typlex.Instance, []entity.Description{
		{Key: "True", Text: "ok"}, {Key: "False", Text: "failed"},
	})
	chain := &diag.Chain{}
	ValidateReturn(ents, fn, "test.cpp", 1, chain)
	assert.Empty(t, chain.Entries())
}

func TestValidateReturnVoidRequiresNone(t *testing.T) {
	ents := entity.NewTable()
	fn := newReturnEntity(ents, typlex.BasisVoid, typlex.Instance, []entity.Description{{Key: "Something"}})
	chain := &diag.Chain{}
	ValidateReturn(ents, fn, "test.cpp", 1, chain)
	assert.Len(t, chain.Entries(), 1)
}

func TestValidateReturnPointerRequiresBothMarkers(t *testing.T) {
	ents := entity.NewTable()
	fn := newReturnEntity(ents, typlex.BasisInt32, 1, []entity.Description{{Key: "Pointer"}})
	chain := &diag.Chain{}
	ValidateReturn(ents, fn, "test.cpp", 1, chain)
	assert.Len(t, chain.Entries(), 1)
}

func TestValidateReturnClassRequiresInstance(t *testing.T) {
	ents := entity.NewTable()
	fn := newReturnEntity(ents, typlex.BasisClass, typlex.Instance, []entity.Description{{Key: "Instance"}})
	chain := &diag.Chain{}
	ValidateReturn(ents, fn, "test.cpp", 1, chain)
	assert.Empty(t, chain.Entries())
}

func TestValidateReturnNoBlockIsSkipped(t *testing.T) {
	ents := entity.NewTable()
	fn := newReturnEntity(ents, typlex.BasisBool, typlex.Instance, nil)
	chain := &diag.Chain{}
	ValidateReturn(ents, fn, "test.cpp", 1, chain)
	assert.Empty(t, chain.Entries())
}
