package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/k1lgor/RepoDoctor/internal/pipeline"
	"github.com/k1lgor/RepoDoctor/internal/render"
	"github.com/k1lgor/RepoDoctor/internal/schema"
)

var deadcodeFlags struct {
	jsonOutput    bool
	out           string
	minConfidence string
	timeout       int
}

var deadcodeCmd = &cobra.Command{
	Use:   "deadcode",
	Short: "Detect suspected dead code",
	Long: `Detect functions, classes, branches, and files that appear unused,
each rated with a confidence level.

Examples:
  repodoc deadcode                        # All findings
  repodoc deadcode --min-confidence high  # High-confidence findings only
  repodoc deadcode --json                 # Output JSON instead of tables`,
	Args: cobra.NoArgs,
	RunE: runDeadcode,
}

func init() {
	f := deadcodeCmd.Flags()
	f.BoolVar(&deadcodeFlags.jsonOutput, "json", false, "Output JSON findings instead of tables")
	f.StringVarP(&deadcodeFlags.out, "out", "o", "", "Save output to the given path")
	f.StringVar(&deadcodeFlags.minConfidence, "min-confidence", "low",
		"Minimum confidence to show: high, medium, or low")
	f.IntVar(&deadcodeFlags.timeout, "timeout", 0, "Timeout in seconds for the Copilot CLI")
}

// confidenceFloor maps the flag value to the lowest rank included.
var confidenceFloor = map[string]int{"high": 0, "medium": 1, "low": 2}

func runDeadcode(cmd *cobra.Command, args []string) error {
	floor, ok := confidenceFloor[deadcodeFlags.minConfidence]
	if !ok {
		return fmt.Errorf("invalid --min-confidence %q: must be high, medium, or low",
			deadcodeFlags.minConfidence)
	}

	s, err := newSession(deadcodeFlags.timeout)
	if err != nil {
		return err
	}
	defer s.close()

	p, err := s.prompts.Render("deadcode", map[string]string{"repo_path": s.root})
	if err != nil {
		return err
	}

	progress(deadcodeFlags.jsonOutput, "Analyzing codebase for dead code...")
	result, _, err := pipeline.Run[schema.DeadCodeOutput](cmd.Context(), s.pipe,
		copilotRequest(s, p), schema.DeadCode)
	if err != nil {
		return err
	}

	result.Findings = filterFindings(result.Findings, floor)

	if deadcodeFlags.jsonOutput {
		return printJSON(result, deadcodeFlags.out)
	}

	render.New(os.Stdout, render.ASCII).DeadCode(result)

	if deadcodeFlags.out != "" {
		return saveRendered(deadcodeFlags.out, func(r *render.Renderer) { r.DeadCode(result) })
	}
	return nil
}

var confidenceRank = map[schema.Confidence]int{
	schema.ConfidenceHigh:   0,
	schema.ConfidenceMedium: 1,
	schema.ConfidenceLow:    2,
}

func filterFindings(findings []schema.DeadCodeFinding, floor int) []schema.DeadCodeFinding {
	var kept []schema.DeadCodeFinding
	for _, f := range findings {
		if confidenceRank[f.Confidence] <= floor {
			kept = append(kept, f)
		}
	}
	return kept
}
