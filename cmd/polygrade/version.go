package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polygrade"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of polygrade",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "polygrade version %s\n", polygrade.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
