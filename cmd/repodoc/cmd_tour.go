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

var tourFlags struct {
	jsonOutput bool
	out        string
	timeout    int
}

var tourCmd = &cobra.Command{
	Use:   "tour",
	Short: "Generate an onboarding guide (TOUR.md)",
	Long: `Generate a guided tour of the codebase: detected stack, entry points,
directory structure, and a recommended reading order.

By default, generates TOUR.md in the repository root.

Examples:
  repodoc tour                           # Generate TOUR.md (default)
  repodoc tour --out docs/ONBOARDING.md  # Save to a custom path
  repodoc tour --json                    # Output the JSON summary instead`,
	Args: cobra.NoArgs,
	RunE: runTour,
}

func init() {
	f := tourCmd.Flags()
	f.BoolVar(&tourFlags.jsonOutput, "json", false, "Output JSON summary instead of generating TOUR.md")
	f.StringVarP(&tourFlags.out, "out", "o", "", "Custom output path for TOUR.md (default: TOUR.md)")
	f.IntVar(&tourFlags.timeout, "timeout", 0, "Timeout in seconds for the Copilot CLI")
}

func runTour(cmd *cobra.Command, args []string) error {
	s, err := newSession(tourFlags.timeout)
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.prompts.Render("tour", map[string]string{"repo_path": s.root})
	if err != nil {
		return err
	}

	progress(tourFlags.jsonOutput, "Generating repository tour...")
	result, _, err := pipeline.Run[schema.TourOutput](cmd.Context(), s.pipe,
		copilotRequest(s, p), schema.Tour)
	if err != nil {
		return err
	}

	if tourFlags.jsonOutput {
		return printJSON(result.Tour, tourFlags.out)
	}

	tourPath := tourFlags.out
	if tourPath == "" {
		tourPath = filepath.Join(s.root, "TOUR.md")
	}
	if err := writeFile(tourPath, result.TourMarkdown); err != nil {
		return err
	}
	fmt.Printf("✓ Generated tour: %s\n\n", tourPath)

	render.New(os.Stdout, render.ASCII).Tour(result)

	printSuccess("Tour generation", []string{
		"Share TOUR.md with new team members",
		"Follow the recommended reading order to learn the codebase",
	})
	return nil
}
