package cmd

import (
	"fmt"

	"github.com/foomo/autositemap/pkg/plugin"
	"github.com/spf13/cobra"
)

// Populated by goreleaser during build
var version = "latest"

func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s %s)\n", version, plugin.Name, plugin.Version)
		},
	}
	return cmd
}
