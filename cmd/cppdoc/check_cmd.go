package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/cppdoc/internal/export"
	"github.com/oxhq/cppdoc/internal/scope"
)

// newCheckCmd parses a project, exports its current entity model, and
// unified-diffs it against a previously saved snapshot (--against),
// surfacing entity-model drift between runs. Exits 1 if the two differ,
// so it composes as a CI gate around a committed snapshot file.
func newCheckCmd(flags *globalFlags) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "check [targets...]",
		Short: "Diff the current entity model export against a saved snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if against == "" {
				return fmt.Errorf("--against is required (path to a previous export snapshot)")
			}

			prior, err := os.ReadFile(against)
			if err != nil {
				return fmt.Errorf("reading snapshot %s: %w", against, err)
			}

			pr, err := buildProject(flags, args)
			if err != nil {
				return err
			}
			if _, err := processAll(pr); err != nil {
				return err
			}
			printDiagnostics(pr.Chain, flags.jsonOutput)

			var buf bytes.Buffer
			if err := export.Export(&buf, pr.Entities, pr.Scopes, scope.RootID); err != nil {
				return fmt.Errorf("exporting entity model: %w", err)
			}

			diffText, err := export.SnapshotDiff(against, "current", string(prior), buf.String())
			if err != nil {
				return fmt.Errorf("diffing snapshots: %w", err)
			}
			if diffText == "" {
				fmt.Fprintln(os.Stdout, "no entity-model drift")
				return nil
			}

			fmt.Fprint(os.Stdout, diffText)
			return exitCode(1)
		},
	}

	cmd.Flags().StringVar(&against, "against", "", "Path to a previously exported XML snapshot to diff against. (Required)")
	return cmd
}
