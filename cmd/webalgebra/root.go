package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/atomgraph/webalgebra"
	"github.com/atomgraph/webalgebra/internal/cli"
	"github.com/atomgraph/webalgebra/internal/logging"
	"github.com/atomgraph/webalgebra/pkg/observability"
)

var rootCmd = &cobra.Command{
	Use:   "webalgebra",
	Short: "webalgebra evaluates Linked Data workflow documents",
	Long: `webalgebra evaluates JSON workflow documents over the Web of Linked Data:
fetching RDF, querying SPARQL endpoints, transforming the results and
writing RDF back. Operations are composed as {"@op": name, "args": {...}}
trees and can also be served as MCP tools or over an HTTP API.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "webalgebra.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// setup loads settings and builds the logger shared by all commands.
func setup(cmd *cobra.Command) (cli.Settings, *slog.Logger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := cli.LoadSettings(configPath)
	if err != nil {
		return settings, nil, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		settings.LogLevel = level
	}
	return settings, logging.New(logging.ParseLevel(settings.LogLevel)), nil
}

// buildEngine is the common engine bootstrap for the evaluation commands.
func buildEngine(cmd *cobra.Command, metrics observability.Metrics) (*webalgebra.Engine, *slog.Logger, error) {
	settings, logger, err := setup(cmd)
	if err != nil {
		return nil, nil, err
	}
	engine, err := cli.BuildEngine(settings, logger, metrics)
	if err != nil {
		return nil, nil, err
	}
	return engine, logger, nil
}
