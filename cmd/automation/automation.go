package automation

import "github.com/spf13/cobra"

// Cmd is the parent command for automation definition operations.
var Cmd = &cobra.Command{
	Use:   "automation",
	Short: "Manage automation definitions",
}

func init() {
	Cmd.AddCommand(diffCmd)
}
