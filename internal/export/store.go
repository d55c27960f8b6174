package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/entity"
)

// EntityRow is a persisted mirror of one entity.Entity, adapted from the
// teacher's models.Stage pattern: structured columns for the fields every
// row shares (the attribute bitset included, as Attrs), plus a
// datatypes.JSON column for the variant-specific detail (for functions the
// minimum argument count, extended name and argument/return descriptions;
// for enum values the numeric value) that would otherwise need one column
// per Kind.
type EntityRow struct {
	ID        uint32 `gorm:"primaryKey"`
	Component uint32 `gorm:"index"`
	Kind      string `gorm:"type:varchar(20);index"`
	Name      string `gorm:"type:varchar(255);index"`
	FQName    string `gorm:"type:varchar(500)"`
	Scope     string `gorm:"type:varchar(20)"`
	Desc      string `gorm:"type:text"`

	Attrs    uint32         `gorm:""`
	Detail   datatypes.JSON `gorm:"type:jsonb"`
}

// FileRow is a persisted mirror of one lexed/parsed input file.
type FileRow struct {
	ID        string `gorm:"primaryKey;type:varchar(500)"`
	Component uint32 `gorm:"index"`
	Kind      string `gorm:"type:varchar(20)"`
}

// DiagnosticRow is a persisted mirror of one diag.Diagnostic, for querying
// past runs' error counts without re-parsing (spec §7's per-file summary
// line, made durable).
type DiagnosticRow struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	Code     string `gorm:"type:varchar(20);index"`
	Severity string `gorm:"type:varchar(10)"`
	Function string `gorm:"type:varchar(255)"`
	File     string `gorm:"type:varchar(500);index"`
	Line     int
	Col      int
	Message  string `gorm:"type:text"`
}

func (EntityRow) TableName() string     { return "entities" }
func (FileRow) TableName() string       { return "files" }
func (DiagnosticRow) TableName() string { return "diagnostics" }

// Connect opens (creating if absent) a sqlite database at path using the
// pure-Go glebarez/sqlite dialector (no cgo), and runs migrations.
func Connect(path string, debug bool) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating database %s: %w", path, err)
	}
	return db, nil
}

// Migrate creates/updates the entity/file/diagnostic tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&EntityRow{}, &FileRow{}, &DiagnosticRow{})
}

// PersistEntities mirrors every entity in ents, except the reserved root
// namespace, into the entities table. Nothing reads the rows back.
func PersistEntities(db *gorm.DB, ents *entity.Table) error {
	all := ents.All()
	rows := make([]EntityRow, 0, len(all))
	for i, e := range all {
		if i == 0 {
			continue // the reserved root namespace
		}
		detail, _ := entityDetailJSON(e)
		rows = append(rows, EntityRow{
			ID: e.ID, Component: e.Component, Kind: e.Kind.String(),
			Name: e.NameText, FQName: e.FQName, Scope: scopeText(e.Scope),
			Desc: e.Desc, Attrs: uint32(e.Attrs), Detail: detail,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Save(&rows).Error
}

// PersistDiagnostics mirrors a diagnostic chain into the diagnostics table.
func PersistDiagnostics(db *gorm.DB, chain *diag.Chain) error {
	entries := chain.Entries()
	rows := make([]DiagnosticRow, 0, len(entries))
	for _, d := range entries {
		rows = append(rows, DiagnosticRow{
			Code: string(d.Code), Severity: d.Severity.String(), Function: d.Function,
			File: d.File, Line: d.Line, Col: d.Col, Message: d.Message,
		})
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

func scopeText(s entity.Scope) string {
	switch s {
	case entity.ScopeGlobal:
		return "global"
	case entity.ScopeFileStatic:
		return "file-static"
	case entity.ScopeFunctionLocal:
		return "function-local"
	case entity.ScopePrivate:
		return "private"
	case entity.ScopeProtected:
		return "protected"
	case entity.ScopePublic:
		return "public"
	default:
		return "unknown"
	}
}

func entityDetailJSON(e entity.Entity) (datatypes.JSON, error) {
	detail := map[string]any{}
	if e.Kind == entity.KindFunction {
		detail["minArgs"] = e.MinArgs
		detail["extendedName"] = e.ExtendedName
		detail["argDesc"] = e.ArgDesc
		detail["retDesc"] = e.RetDesc
	}
	if e.Kind == entity.KindEnumValue {
		detail["numVal"] = e.NumVal
	}
	if len(detail) == 0 {
		return datatypes.JSON("{}"), nil
	}
	b, err := json.Marshal(detail)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
