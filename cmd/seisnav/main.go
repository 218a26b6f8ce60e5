// Package main provides the entry point for the seisnav CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/seisnav/cmd/seisnav/commands"
	"github.com/Sumatoshi-tech/seisnav/pkg/version"
)

var (
	configPath string
	verbose    bool
	quiet      bool
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "seisnav",
		Short: "SEGY navigation extraction - seismic header and shapefile tool",
		Long: `Seisnav decodes SEGY seismic files and extracts navigation data.

Commands:
  info      Inspect a file's text, binary, and trace headers
  nav       Build navigation for one file and export shapefiles
  batch     Process many files into per-file and combined shapefiles`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output")

	globals := commands.Globals{ConfigPath: &configPath, Verbose: &verbose, Quiet: &quiet}

	rootCmd.AddCommand(commands.NewInfoCommand(globals))
	rootCmd.AddCommand(commands.NewNavCommand(globals))
	rootCmd.AddCommand(commands.NewBatchCommand(globals))
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "seisnav %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
