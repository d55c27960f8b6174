package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/cppdoc/internal/export"
	"github.com/oxhq/cppdoc/internal/scope"
)

// newExportCmd wraps spec §6's exportEntities: parse the project, then
// serialize the entity model as indented XML to --out (or stdout).
func newExportCmd(flags *globalFlags) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [targets...]",
		Short: "Parse a project and export its entity model as XML",
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

			var buf bytes.Buffer
			if err := export.Export(&buf, pr.Entities, pr.Scopes, scope.RootID); err != nil {
				return fmt.Errorf("exporting entity model: %w", err)
			}

			if outPath == "" {
				fmt.Fprint(os.Stdout, buf.String())
			} else if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			if err := persistIfRequested(flags, pr); err != nil {
				return err
			}

			if failed > 0 {
				return exitCode(failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file for the exported XML (default: stdout).")
	return cmd
}
