// repodoc analyzes a repository through the GitHub Copilot CLI: bloat
// and hygiene (diet), onboarding guide (tour), Dockerfile review
// (docker), dead code detection (deadcode), a combined scan, and a
// markdown health report built from the last scan.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:   "repodoc",
	Short: "AI-assisted repository analysis via the GitHub Copilot CLI",
	Long: "RepoDoctor inspects the repository in the current directory by prompting\n" +
		"the GitHub Copilot CLI and validating its answers against strict output\n" +
		"contracts before rendering them.",
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.AddCommand(dietCmd)
	rootCmd.AddCommand(tourCmd)
	rootCmd.AddCommand(dockerCmd)
	rootCmd.AddCommand(deadcodeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(err, rootFlags.verbose)
		os.Exit(1)
	}
}
