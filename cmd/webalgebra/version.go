package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atomgraph/webalgebra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of webalgebra",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("webalgebra version %s\n", webalgebra.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
