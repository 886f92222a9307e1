package main

import (
	"fmt"

	"github.com/aretw0/typeb"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of typeb",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "typeb version %s\n", typebVersion())
	},
}

func typebVersion() string {
	return typeb.Version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
