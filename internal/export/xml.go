// Package export implements spec §6's exportEntities: serializing the
// entity model as an indented XML document, plus (per SPEC_FULL.md §B) a
// persisted sqlite mirror and a snapshot-diff helper for drift detection.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"

	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/scope"
	"github.com/oxhq/cppdoc/internal/typlex"
)

type entityTableXML struct {
	XMLName     xml.Name      `xml:"EntityTable"`
	HashDefines []defineXML   `xml:"HashDefines>Define,omitempty"`
	Macros      []macroXML    `xml:"Macros>Macro,omitempty"`
	Typedefs    []typedefXML  `xml:"Typedefs>Typedef,omitempty"`
	Variables   []variableXML `xml:"Variables>Variable,omitempty"`
	Enums       []enumXML     `xml:"Enums>Enum,omitempty"`
	Unions      []unionXML    `xml:"Unions>Union,omitempty"`
	Classes     []classXML    `xml:"Classes>Class,omitempty"`
	Functions   []functionXML `xml:"Functions>Function,omitempty"`
}

type defineXML struct {
	Name string `xml:"name,attr"`
}

type macroXML struct {
	Name    string   `xml:"name,attr"`
	Formals []string `xml:"Formal,omitempty"`
}

type typedefXML struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type variableXML struct {
	Name     string `xml:"name,attr"`
	Type     string `xml:"type,attr"`
	Desc     string `xml:"desc,attr,omitempty"`
	Internal bool   `xml:"internal,attr,omitempty"`
}

type enumXML struct {
	Name   string   `xml:"name,attr"`
	Values []eValXML `xml:"eVal"`
}

type eValXML struct {
	Name  string `xml:"name,attr"`
	Value int32  `xml:"value,attr"`
}

type unionXML struct {
	Name  string         `xml:"name,attr"`
	Table entityTableXML `xml:"EntityTable"`
}

type classXML struct {
	Name   string         `xml:"name,attr"`
	Struct bool           `xml:"struct,attr,omitempty"`
	Base   string         `xml:"base,attr,omitempty"`
	Table  entityTableXML `xml:"EntityTable"`
}

type functionXML struct {
	Name       string     `xml:"name,attr"`
	ExtName    string     `xml:"extendedName,attr"`
	ReturnType string     `xml:"returns,attr"`
	Desc       string     `xml:"desc,attr,omitempty"`
	Args       []argXML   `xml:"Arg,omitempty"`
	ArgDescs   []descXML  `xml:"ArgDesc,omitempty"`
	RetDescs   []descXML  `xml:"RetDesc,omitempty"`
}

type argXML struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type descXML struct {
	Key  string `xml:"key,attr"`
	Text string `xml:",chardata"`
}

// Export writes the entity model rooted at scID to w as indented XML
// (spec §6: "<EntityTable> containing <HashDefines>, <Macros>, <Typedefs>,
// <Variables>, <Enums> (with <eVal> children), <Unions>, <Classes>
// (recursively carrying their own <EntityTable>), and <Functions>").
func Export(w io.Writer, ents *entity.Table, scopes *scope.Table, scID uint32) error {
	table := buildEntityTable(ents, scopes, scID)
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(table); err != nil {
		return fmt.Errorf("encoding entity table: %w", err)
	}
	return nil
}

func buildEntityTable(ents *entity.Table, scopes *scope.Table, scID uint32) entityTableXML {
	var out entityTableXML
	sc := scopes.Get(scID)
	if sc == nil {
		return out
	}

	names := sc.Names()
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	seenFn := map[uint32]bool{}
	for _, name := range sorted {
		id := names[name]
		e := ents.Get(id)
		switch e.Kind {
		case entity.KindDefine:
			out.HashDefines = append(out.HashDefines, defineXML{Name: e.NameText})
		case entity.KindMacro:
			out.Macros = append(out.Macros, macroXML{Name: e.NameText, Formals: e.FormalArgs})
		case entity.KindTypedef:
			out.Typedefs = append(out.Typedefs, typedefXML{Name: e.NameText, Type: typlexText(ents, e.Resolution)})
		case entity.KindVariable:
			out.Variables = append(out.Variables, variableXML{
				Name: e.NameText, Type: typlexText(ents, e.Typ), Desc: e.Desc,
				Internal: e.Attrs.Has(entity.AttrInternal),
			})
		case entity.KindEnum:
			out.Enums = append(out.Enums, buildEnum(ents, e))
		case entity.KindUnion:
			out.Unions = append(out.Unions, unionXML{Name: e.NameText, Table: buildEntityTable(ents, scopes, e.ScopeTable)})
		case entity.KindClass:
			out.Classes = append(out.Classes, buildClass(ents, scopes, e))
		case entity.KindFunction:
			for _, fid := range sc.Overloads(name) {
				if seenFn[fid] {
					continue
				}
				seenFn[fid] = true
				out.Functions = append(out.Functions, buildFunction(ents, fid))
			}
		}
	}
	return out
}

func buildEnum(ents *entity.Table, e *entity.Entity) enumXML {
	out := enumXML{Name: e.NameText}
	for _, vid := range e.OrderedVals {
		v := ents.Get(vid)
		out.Values = append(out.Values, eValXML{Name: v.NameText, Value: v.NumVal})
	}
	return out
}

func buildClass(ents *entity.Table, scopes *scope.Table, e *entity.Entity) classXML {
	cls := classXML{Name: e.NameText, Struct: e.Attrs.Has(entity.AttrStruct)}
	if e.BaseClass != entity.None {
		cls.Base = ents.Get(e.BaseClass).NameText
	}
	cls.Table = buildEntityTable(ents, scopes, e.ScopeTable)
	return cls
}

func buildFunction(ents *entity.Table, id uint32) functionXML {
	e := ents.Get(id)
	fn := functionXML{
		Name: e.NameText, ExtName: e.ExtendedName,
		ReturnType: typlexText(ents, e.Typ), Desc: e.Desc,
	}
	for _, argID := range e.Args {
		a := ents.Get(argID)
		fn.Args = append(fn.Args, argXML{Name: a.NameText, Type: typlexText(ents, a.Typ)})
	}
	for _, d := range e.ArgDesc {
		fn.ArgDescs = append(fn.ArgDescs, descXML{Key: d.Key, Text: d.Text})
	}
	for _, d := range e.RetDesc {
		fn.RetDescs = append(fn.RetDescs, descXML{Key: d.Key, Text: d.Text})
	}
	return fn
}

// typlexText renders a typlex as a human-readable type string for export
// (spec §3 "Typlex"): base type name plus indirection/array markers.
func typlexText(ents *entity.Table, t typlex.Typlex) string {
	if t.IsVararg() {
		return "..."
	}
	base := "void"
	if t.BaseType != typlex.NoType {
		if e := ents.Get(t.BaseType); e != nil {
			base = e.NameText
		}
	}
	s := base
	if t.IsReference() {
		s += "&"
	}
	for i := typlex.Indir(0); i < t.Indir; i++ {
		s += "*"
	}
	if t.Elements > 0 {
		s += fmt.Sprintf("[%d]", t.Elements)
	}
	return s
}
