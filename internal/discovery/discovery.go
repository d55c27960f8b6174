// Package discovery implements spec §6 "File inputs": recursive directory
// traversal that classifies each candidate file by suffix (.h/.cpp/.txt/.sys)
// and applies include/exclude glob filtering plus .cppdocignore exclusion,
// adapted from the teacher's internal/scanner.Scanner.
package discovery

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Kind classifies a discovered file per spec §6's File inputs table.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeader       // .h
	KindSource       // .cpp
	KindDoc          // .txt
	KindSystem       // .sys — triggers the systemMask suppression cascade
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSource:
		return "source"
	case KindDoc:
		return "doc"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// ClassifyBySuffix maps a file suffix to its Kind (spec §6: ".h" → header,
// ".cpp" → source, ".txt" → doc, ".sys" → system-include).
func ClassifyBySuffix(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".h":
		return KindHeader
	case ".cpp":
		return KindSource
	case ".txt":
		return KindDoc
	case ".sys":
		return KindSystem
	default:
		return KindUnknown
	}
}

// File is one discovered candidate, classified and ready for component
// assignment by the project driver.
type File struct {
	Path string
	Kind Kind
}

// Scanner recursively walks directory targets, classifying each regular
// file and filtering it by ignore rules and include/exclude globs.
type Scanner struct {
	includeGlobs []string
	excludeGlobs []string
	noIgnore     bool
	ignoreFile   *ignore.GitIgnore
}

// Config holds scanner configuration options.
type Config struct {
	IncludeGlobs []string
	ExcludeGlobs []string
	NoIgnore     bool
}

// New creates a Scanner, loading .cppdocignore files up the directory tree
// unless NoIgnore is set (mirrors the teacher's .gitignore loading: walk
// from cwd to root, merge root-to-leaf so closer files take precedence).
func New(cfg Config) *Scanner {
	s := &Scanner{
		includeGlobs: cfg.IncludeGlobs,
		excludeGlobs: cfg.ExcludeGlobs,
		noIgnore:     cfg.NoIgnore,
	}
	if !cfg.NoIgnore {
		s.loadIgnoreFiles()
	}
	return s
}

func (s *Scanner) loadIgnoreFiles() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	var files []string
	dir := cwd
	for {
		p := filepath.Join(dir, ".cppdocignore")
		if _, err := os.Stat(p); err == nil {
			files = append(files, p)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if len(files) == 0 {
		return
	}

	for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
		files[i], files[j] = files[j], files[i]
	}

	var lines []string
	for _, f := range files[1:] {
		b, err := os.ReadFile(f)
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(b), "\n")...)
	}
	gi, err := ignore.CompileIgnoreFileAndLines(files[0], lines...)
	if err == nil {
		s.ignoreFile = gi
	}
}

// ScanTargets walks each target (file or directory), returning the
// classified, filtered file list with duplicates removed.
func (s *Scanner) ScanTargets(ctx context.Context, targets []string) ([]File, error) {
	if len(targets) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		targets = []string{cwd}
	}

	var all []File
	for _, target := range targets {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		files, err := s.scanTarget(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("scanning target %s: %w", target, err)
		}
		all = append(all, files...)
	}
	return dedupe(all), nil
}

func (s *Scanner) scanTarget(ctx context.Context, target string) ([]File, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, fmt.Errorf("accessing target %s: %w", target, err)
	}

	if info.Mode().IsRegular() {
		if f, ok := s.classify(target); ok {
			return []File{f}, nil
		}
		return nil, nil
	}
	if info.IsDir() {
		return s.scanDirectory(ctx, target)
	}
	return nil, nil
}

func (s *Scanner) scanDirectory(ctx context.Context, dir string) ([]File, error) {
	var files []File

	err := fs.WalkDir(os.DirFS(dir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fullPath := filepath.Join(dir, path)

		if d.IsDir() {
			if s.shouldSkipDirectory(path) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if f, ok := s.classify(fullPath); ok {
				files = append(files, f)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", dir, err)
	}
	return files, nil
}

// classify decides whether path survives ignore/glob filtering and, if so,
// returns its classified File.
func (s *Scanner) classify(path string) (File, bool) {
	if s.ignoreFile != nil {
		if rel, err := filepath.Rel(".", path); err == nil && s.ignoreFile.MatchesPath(rel) {
			return File{}, false
		}
	}

	kind := ClassifyBySuffix(path)
	if kind == KindUnknown {
		return File{}, false
	}

	base := filepath.Base(path)

	if len(s.includeGlobs) > 0 {
		matched := false
		for _, pattern := range s.includeGlobs {
			if ok, _ := doublestar.Match(pattern, base); ok {
				matched = true
				break
			}
		}
		if !matched {
			return File{}, false
		}
	}

	for _, pattern := range s.excludeGlobs {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return File{}, false
		}
	}

	return File{Path: path, Kind: kind}, true
}

var skipDirs = map[string]bool{
	".git": true, "vendor": true, "node_modules": true,
	"dist": true, "build": true, ".cppdoc": true,
}

func (s *Scanner) shouldSkipDirectory(path string) bool {
	if s.ignoreFile != nil {
		if rel, err := filepath.Rel(".", path); err == nil && s.ignoreFile.MatchesPath(rel) {
			return true
		}
	}
	dirname := filepath.Base(path)
	if skipDirs[dirname] {
		return true
	}
	if strings.HasPrefix(dirname, ".") && dirname != "." {
		return true
	}
	return false
}

func dedupe(files []File) []File {
	seen := make(map[string]bool, len(files))
	out := make([]File, 0, len(files))
	for _, f := range files {
		if !seen[f.Path] {
			seen[f.Path] = true
			out = append(out, f)
		}
	}
	return out
}
