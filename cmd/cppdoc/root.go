package main

import (
	"github.com/spf13/cobra"
)

// globalFlags mirrors the teacher's buildConfigFromFlags pattern of
// collecting pflag values into a plain struct before any business logic
// runs, except spread across cobra's persistent flag set so every
// subcommand (parse/export/check) shares the same project-loading flags.
type globalFlags struct {
	projectFile string
	tabWidth    int
	noIgnore    bool
	includeGlob []string
	excludeGlob []string
	jsonOutput  bool
	dbPath      string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "cppdoc",
		Short:         "Scan, parse, and document C++ sources",
		Long:          "cppdoc lexes, preprocesses, and parses C++ header/source trees into an entity model, then exports it as indented XML (spec-compatible with the HadronZoo codeEnforcer entity table).",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.projectFile, "project", "p", "", "Project XML file declaring components and their files (initProject).")
	pf.IntVarP(&flags.tabWidth, "tab-width", "t", 0, "Tab expansion width; 0 uses CPPDOC_TAB_WIDTH or the documented default.")
	pf.BoolVar(&flags.noIgnore, "no-ignore", false, "Disable .cppdocignore filtering during directory scanning.")
	pf.StringSliceVar(&flags.includeGlob, "include", nil, "Include file glob(s), applied during directory scanning.")
	pf.StringSliceVar(&flags.excludeGlob, "exclude", nil, "Exclude file glob(s), applied during directory scanning.")
	pf.BoolVarP(&flags.jsonOutput, "json", "j", false, "Emit diagnostics as JSON lines instead of plain text.")
	pf.StringVar(&flags.dbPath, "db", "", "Optional sqlite path to persist the entity/diagnostic mirror after processing.")

	root.AddCommand(newParseCmd(flags))
	root.AddCommand(newExportCmd(flags))
	root.AddCommand(newCheckCmd(flags))

	return root
}
