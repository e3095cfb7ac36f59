package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomgraph/webalgebra/internal/cli"
)

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the registered operations",
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := buildEngine(cmd, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cli.PrintOperations(os.Stdout, engine)
	},
}

func init() {
	rootCmd.AddCommand(opsCmd)
}
