package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomgraph/webalgebra/internal/cli"
)

var runCmd = &cobra.Command{
	Use:   "run [document]",
	Short: "Evaluate a workflow document",
	Long: `Evaluates a workflow document from a file, or from stdin when the
argument is "-". JSON and YAML documents are accepted.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := buildEngine(cmd, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("output")
		if err := cli.RunDocument(cmd.Context(), engine, args[0], format, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringP("output", "o", "json", "Output format: json or table")
	rootCmd.AddCommand(runCmd)
}
