package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "velab",
	Short: "SystemVerilog semantic elaboration toolchain",
	Long:  "velab elaborates a SystemVerilog design's top modules and reports diagnostics from the resulting instance tree.",
}

// main registers every subcommand and global flag, then executes the root
// command, exiting with status 1 if it reports an error.
func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(elaborateCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "velab.toml", "project configuration file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminalStdout() bool {
	return isTerminal(os.Stdout)
}
