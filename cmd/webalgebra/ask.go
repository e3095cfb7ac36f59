package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomgraph/webalgebra/internal/cli"
)

var askCmd = &cobra.Command{
	Use:   "ask [instruction]",
	Short: "Generate and evaluate a workflow from a natural-language instruction",
	Long: `Translates an instruction into a workflow document using the configured
language model, prints the generated document and evaluates it.
Requires an OpenAI API key in the configuration or OPENAI_API_KEY.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		engine, _, err := buildEngine(cmd, nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		format, _ := cmd.Flags().GetString("output")
		instruction := strings.Join(args, " ")
		if err := cli.RunAsk(cmd.Context(), engine, instruction, format, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	askCmd.Flags().StringP("output", "o", "json", "Output format: json or table")
	rootCmd.AddCommand(askCmd)
}
