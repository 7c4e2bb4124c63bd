package cmd

import (
	"fmt"

	"github.com/MeKo-Tech/claimlens/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd prints build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "claimlens %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
