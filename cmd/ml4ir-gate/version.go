package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robertdigital/ml4ir"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of ml4ir-gate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ml4ir-gate version %s\n", strings.TrimSpace(ml4ir.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
