// Package project implements spec §3's Project hierarchy and spec §6's
// processComponent driver: sequencing a component's files through
// lex → preprocess → parse, resolving #include targets against the
// project's file maps, and applying the systemMask suppression cascade
// for .sys files.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/discovery"
	"github.com/oxhq/cppdoc/internal/entity"
	"github.com/oxhq/cppdoc/internal/intern"
	"github.com/oxhq/cppdoc/internal/lexer"
	"github.com/oxhq/cppdoc/internal/parser"
	"github.com/oxhq/cppdoc/internal/preprocess"
	"github.com/oxhq/cppdoc/internal/scope"
	"github.com/oxhq/cppdoc/internal/token"
)

// Component is one named unit of files processed together (spec §3: "a
// Project owns ... a list of components").
type Component struct {
	ID    uint32
	Name  string
	Files []discovery.File
}

// fileState tracks the lifecycle invariant of spec §3: "Each file is
// lexed exactly once; stage1 (preprocessed) and stage2 (parsed) flags
// guard re-entry."
type fileState struct {
	raw     []token.Token
	active  []token.Token
	stage1  bool
	stage2  bool
}

// Project owns the shared entity/scope tables and every file discovered
// for this run, addressable by basename (for #include resolution) and by
// full path (spec §3 "Project hierarchy").
type Project struct {
	Entities *entity.Table
	Scopes   *scope.Table
	Resolver *scope.Resolver
	Intern   *intern.Table
	RootScope uint32

	TabWidth int

	Components []*Component

	byPath     map[string]discovery.File
	byBasename map[string][]string
	files      map[string]*fileState

	Chain *diag.Chain
}

// New builds an empty Project over freshly-allocated entity/scope tables.
func New(tabWidth int) *Project {
	ents := entity.NewTable()
	scopes := scope.NewTable()
	return &Project{
		Entities:   ents,
		Scopes:     scopes,
		Resolver:   &scope.Resolver{Scopes: scopes, Entities: ents},
		Intern:     intern.New(),
		RootScope:  scope.RootID,
		TabWidth:   tabWidth,
		byPath:     map[string]discovery.File{},
		byBasename: map[string][]string{},
		files:      map[string]*fileState{},
		Chain:      &diag.Chain{},
	}
}

// Register adds discovered files to the project's basename/path maps
// (spec §3: "maps of all files by basename and by full path (separated
// into headers, sources, system-includes, documents)"). It does not
// assign them to a component.
func (pr *Project) Register(files []discovery.File) {
	for _, f := range files {
		pr.byPath[f.Path] = f
		base := filepath.Base(f.Path)
		pr.byBasename[base] = append(pr.byBasename[base], f.Path)
	}
}

// AddComponent registers a new component owning the given files (which
// must already have been passed to Register).
func (pr *Project) AddComponent(name string, files []discovery.File) *Component {
	pr.Register(files)
	c := &Component{ID: uint32(len(pr.Components)), Name: name, Files: files}
	pr.Components = append(pr.Components, c)
	return c
}

// Resolve finds the on-disk path for an #include target: an exact path
// match first, then a basename match against the project's registered
// files (spec §3's "maps of all files by basename and by full path" is
// exactly what an #include directive searches).
func (pr *Project) Resolve(name string) (string, bool) {
	if _, ok := pr.byPath[name]; ok {
		return name, true
	}
	base := filepath.Base(name)
	if paths, ok := pr.byBasename[base]; ok && len(paths) > 0 {
		return paths[0], true
	}
	return "", false
}

// Tokens implements preprocess.FileSet: it returns the file's raw
// (lexed, not-yet-preprocessed) token stream, lexing it on first use
// only (spec §3 "stage1" guard).
func (pr *Project) Tokens(name string) ([]token.Token, error) {
	path, ok := pr.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("include target %q not found in project file maps", name)
	}
	return pr.lexFile(path)
}

func (pr *Project) lexFile(path string) ([]token.Token, error) {
	st, ok := pr.files[path]
	if ok && st.raw != nil {
		return st.raw, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	lx := lexer.New(pr.Intern, path, pr.TabWidth)
	toks, err := lx.Lex(src)
	if err != nil {
		return nil, fmt.Errorf("lexing %s: %w", path, err)
	}

	if st == nil {
		st = &fileState{}
		pr.files[path] = st
	}
	st.raw = toks
	return toks, nil
}

// ProcessComponent runs spec §6's processComponent: every file in the
// component is lexed, preprocessed (with #include recursively resolved
// against the project's file maps), and parsed in declaration order, then
// every member-function body deferred during class parsing is flushed.
// Files classified KindSystem trigger the systemMask cascade: every
// entity whose id falls in the range created while that file was parsed
// is marked AttrInternal (spec §6 "System-include files ... every entity
// added during its parse is marked with the internal attribute").
//
// The returned count is the number of files that produced at least one
// ERROR-or-worse diagnostic (spec §6 "Exit codes").
func (pr *Project) ProcessComponent(comp *Component) (int, error) {
	failed := 0
	for _, f := range comp.Files {
		if err := pr.processFile(comp, f); err != nil {
			pr.Chain.Append(diag.New(diag.Error, diag.ESyntax, "ProcessComponent", f.Path, 0, 0, "%s", err))
			failed++
		}
	}
	return failed, nil
}

func (pr *Project) processFile(comp *Component, f discovery.File) error {
	st := pr.files[f.Path]
	if st != nil && st.stage2 {
		return nil // already fully parsed via an earlier #include
	}

	raw, err := pr.lexFile(f.Path)
	if err != nil {
		return err
	}
	st = pr.files[f.Path]

	if !st.stage1 {
		pp := preprocess.New(pr.Entities, pr.Scopes, pr, pr.RootScope)
		active, err := pp.Run(f.Path, raw, 0)
		if err != nil {
			return fmt.Errorf("preprocessing %s: %w", f.Path, err)
		}
		st.active = active
		st.stage1 = true
	}

	idBase := uint32(pr.Entities.Len())

	p := parser.New(pr.Entities, pr.Scopes, f.Path, st.active, comp.ID)
	p.Raw = raw
	p.Chain = pr.Chain
	if err := p.ParseFile(pr.RootScope); err != nil {
		return fmt.Errorf("parsing %s: %w", f.Path, err)
	}
	st.stage2 = true

	if f.Kind == discovery.KindSystem {
		applySystemMask(pr.Entities, idBase, uint32(pr.Entities.Len()))
	}

	pr.attachExternalComments(f.Path, raw)
	return nil
}

func applySystemMask(ents *entity.Table, from, to uint32) {
	for id := from; id < to; id++ {
		e := ents.Get(id)
		if e != nil {
			e.Attrs |= entity.AttrInternal
		}
	}
}
