package main

import (
	"fmt"

	"github.com/aretw0/webterm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of webterm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "webterm version %s\n", webterm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
