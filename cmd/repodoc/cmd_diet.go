package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/k1lgor/RepoDoctor/internal/pipeline"
	"github.com/k1lgor/RepoDoctor/internal/render"
	"github.com/k1lgor/RepoDoctor/internal/schema"
)

var dietFlags struct {
	jsonOutput bool
	out        string
	timeout    int
}

var dietCmd = &cobra.Command{
	Use:   "diet",
	Short: "Analyze repository bloat and hygiene issues",
	Long: `Analyze repository size, largest files and directories, suspected
build artifacts, and missing hygiene files.

By default, generates DIET.md in the repository root.

Examples:
  repodoc diet                       # Generate DIET.md (default)
  repodoc diet --out docs/BLOAT.md   # Save to a custom path
  repodoc diet --json                # Output the JSON analysis instead`,
	Args: cobra.NoArgs,
	RunE: runDiet,
}

func init() {
	f := dietCmd.Flags()
	f.BoolVar(&dietFlags.jsonOutput, "json", false, "Output JSON analysis instead of generating DIET.md")
	f.StringVarP(&dietFlags.out, "out", "o", "", "Custom output path for DIET.md (default: DIET.md)")
	f.IntVar(&dietFlags.timeout, "timeout", 0, "Timeout in seconds for the Copilot CLI")
}

func runDiet(cmd *cobra.Command, args []string) error {
	s, err := newSession(dietFlags.timeout)
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.prompts.Render("diet", map[string]string{"repo_path": s.root})
	if err != nil {
		return err
	}

	progress(dietFlags.jsonOutput, "Analyzing repository bloat...")
	result, _, err := pipeline.Run[schema.DietOutput](cmd.Context(), s.pipe,
		copilotRequest(s, p), schema.Diet)
	if err != nil {
		return err
	}

	if dietFlags.jsonOutput {
		return printJSON(result.Analysis, dietFlags.out)
	}

	dietPath := dietFlags.out
	if dietPath == "" {
		dietPath = filepath.Join(s.root, "DIET.md")
	}
	if err := writeFile(dietPath, result.DietMarkdown); err != nil {
		return err
	}
	fmt.Printf("✓ Generated diet analysis: %s\n\n", dietPath)

	render.New(os.Stdout, render.ASCII).Diet(result)

	printSuccess("Diet analysis", []string{
		"Review identified bloat and consider cleanup",
		"Add missing hygiene files to improve repo health",
		"Run 'repodoc scan' for a full health check",
	})
	return nil
}
