package automation

import (
	"fmt"
	"io"
	"sort"
	"strings"

	autodiff "github.com/almanac-cloud/almanac/internal/definition/diff"
	"github.com/almanac-cloud/almanac/pkg/db"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	diffPaths []string
	diffUser  string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show changes between automation definitions and the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		userID, err := uuid.Parse(diffUser)
		if err != nil {
			return fmt.Errorf("invalid --user: %w", err)
		}

		desired, err := autodiff.LoadDefinitions(diffPaths)
		if err != nil {
			return err
		}

		specs, err := autodiff.LoadDatabaseSpecs(ctx, db.Connection(), userID)
		if err != nil {
			return err
		}

		result := autodiff.Compare(desired, specs)
		printDiff(cmd, result)
		return nil
	},
}

func init() {
	diffCmd.Flags().StringSliceVarP(&diffPaths, "path", "p", nil, "Paths to automation definition files or directories")
	diffCmd.Flags().StringVarP(&diffUser, "user", "u", "", "Owner user ID to diff against")
}

func printDiff(cmd *cobra.Command, diff autodiff.Diff) {
	out := cmd.OutOrStdout()

	if diff.Empty() {
		writeLine(cmd, out, "No changes detected.\n")
		return
	}

	if len(diff.Creates) > 0 {
		writeLine(cmd, out, "Creates:\n")
		sort.Slice(diff.Creates, func(i, j int) bool { return diff.Creates[i].Name < diff.Creates[j].Name })
		for _, spec := range diff.Creates {
			writeLine(cmd, out, "  - %s\n", spec.Name)
		}
		writeLine(cmd, out, "\n")
	}

	if len(diff.Updates) > 0 {
		writeLine(cmd, out, "Updates:\n")
		sort.Slice(diff.Updates, func(i, j int) bool { return diff.Updates[i].Name < diff.Updates[j].Name })
		for _, upd := range diff.Updates {
			writeLine(cmd, out, "  - %s\n", upd.Name)
			diffText := indent(upd.Diff, "    ")
			writeLine(cmd, out, "%s\n", diffText)
		}
		writeLine(cmd, out, "\n")
	}

	if len(diff.Deletes) > 0 {
		writeLine(cmd, out, "Deletes:\n")
		sort.Slice(diff.Deletes, func(i, j int) bool { return diff.Deletes[i].Name < diff.Deletes[j].Name })
		for _, spec := range diff.Deletes {
			writeLine(cmd, out, "  - %s\n", spec.Name)
		}
	}
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}

func writeLine(cmd *cobra.Command, w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		cmd.PrintErrf("write output: %v\n", err)
	}
}
