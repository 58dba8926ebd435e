package cmd

import (
	"github.com/almanac-cloud/almanac/cmd/automation"
	"github.com/almanac-cloud/almanac/cmd/console"
	"github.com/almanac-cloud/almanac/cmd/start"
	"github.com/spf13/cobra"
)

var cmds = []*cobra.Command{
	start.Cmd,
	console.Cmd,
	automation.Cmd,
}

// Execute builds the command tree and executes commands.
func Execute() error {
	command := &cobra.Command{
		Use: "almanac",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}

	for _, c := range cmds {
		command.AddCommand(c)
	}

	return command.Execute()
}
