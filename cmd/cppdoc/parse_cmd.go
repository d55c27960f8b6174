package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newParseCmd wraps spec §6's processComponent: load the project, run
// every component through lex/preprocess/parse, and report per-file
// diagnostics. Exit code is the spec §6 "number of files with at least
// one ERROR diagnostic".
func newParseCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [targets...]",
		Short: "Parse a project or ad hoc file/directory targets and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			pr, err := buildProject(flags, args)
			if err != nil {
				return err
			}

			failed, err := processAll(pr)
			if err != nil {
				return err
			}

			printDiagnostics(pr.Chain, flags.jsonOutput)
			if err := persistIfRequested(flags, pr); err != nil {
				return err
			}

			if failed > 0 {
				return exitCode(failed)
			}
			return nil
		},
	}
}

// exitCode wraps a non-zero exit status as an error so cobra's Execute
// caller can translate it to os.Exit without printing an extra message
// (the diagnostics have already been printed).
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("%d file(s) with errors", int(e)) }
