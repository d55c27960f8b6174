package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/oxhq/cppdoc/internal/config"
	"github.com/oxhq/cppdoc/internal/diag"
	"github.com/oxhq/cppdoc/internal/discovery"
	"github.com/oxhq/cppdoc/internal/export"
	"github.com/oxhq/cppdoc/internal/project"
)

// buildProject loads (spec §6) initProject(cfgPath) when --project is
// given, otherwise treats the positional args as scan targets for a
// single ad hoc component, the way the teacher's main.go falls back to
// scanner.ScanTargets when no explicit file list is supplied.
func buildProject(flags *globalFlags, args []string) (*project.Project, error) {
	envCfg := config.Load()

	tabWidth := flags.tabWidth
	if tabWidth <= 0 {
		tabWidth = envCfg.TabWidth
	}

	pr := project.New(tabWidth)

	if flags.projectFile != "" {
		pf, err := config.LoadProject(flags.projectFile)
		if err != nil {
			return nil, err
		}
		for _, comp := range pf.Components {
			files := make([]discovery.File, 0, len(comp.Files))
			for _, path := range comp.Files {
				files = append(files, discovery.File{Path: path, Kind: discovery.ClassifyBySuffix(path)})
			}
			pr.AddComponent(comp.Name, files)
		}
		return pr, nil
	}

	scanner := discovery.New(discovery.Config{
		IncludeGlobs: flags.includeGlob,
		ExcludeGlobs: flags.excludeGlob,
		NoIgnore:     flags.noIgnore || envCfg.NoIgnore,
	})
	files, err := scanner.ScanTargets(context.Background(), args)
	if err != nil {
		return nil, fmt.Errorf("scanning targets: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found matching the criteria")
	}
	pr.AddComponent("default", files)
	return pr, nil
}

// processAll runs processComponent over every component in the project
// and returns the spec §6 exit-code count: the number of files with at
// least one ERROR-or-worse diagnostic.
func processAll(pr *project.Project) (int, error) {
	total := 0
	for _, comp := range pr.Components {
		failed, err := pr.ProcessComponent(comp)
		if err != nil {
			return total, err
		}
		total += failed
	}
	return total, nil
}

// printDiagnostics emits every diagnostic of the run followed by one
// summary line with the warning and error counts of all files together,
// as plain text on stderr; with --json it prints one JSON object per
// diagnostic on stdout and no summary line.
func printDiagnostics(chain *diag.Chain, jsonOutput bool) {
	entries := chain.Entries()
	if jsonOutput {
		for _, d := range entries {
			b, err := json.Marshal(d)
			if err != nil {
				continue
			}
			fmt.Fprintln(os.Stdout, string(b))
		}
		return
	}
	for _, d := range entries {
		fmt.Fprintln(os.Stderr, d.Error())
	}
	warnings, errs := chain.Counts()
	fmt.Fprintf(os.Stderr, "%d warning(s), %d error(s)\n", warnings, errs)
}

// persistIfRequested mirrors the processed entity/diagnostic tables into
// a sqlite database when --db is set.
func persistIfRequested(flags *globalFlags, pr *project.Project) error {
	if flags.dbPath == "" {
		return nil
	}
	db, err := export.Connect(flags.dbPath, false)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", flags.dbPath, err)
	}
	if err := export.PersistEntities(db, pr.Entities); err != nil {
		return fmt.Errorf("persisting entities: %w", err)
	}
	if err := export.PersistDiagnostics(db, pr.Chain); err != nil {
		return fmt.Errorf("persisting diagnostics: %w", err)
	}
	return nil
}
