package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/k1lgor/RepoDoctor/internal/pipeline"
	"github.com/k1lgor/RepoDoctor/internal/render"
	"github.com/k1lgor/RepoDoctor/internal/repofs"
	"github.com/k1lgor/RepoDoctor/internal/schema"
)

var scanFlags struct {
	jsonOutput   bool
	out          string
	skipDocker   bool
	skipDeadcode bool
	timeout      int
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run all analysis modules and compute a health score",
	Long: `Run every analysis module sequentially (diet, tour, docker, deadcode),
compute an overall repository health score, and cache the result under
.repodoc/last_scan.json for 'repodoc report'.

A failing module does not abort the scan; its failure is recorded in
the module results and the score is computed from what succeeded.

Examples:
  repodoc scan                  # Full scan
  repodoc scan --skip-docker    # Skip Dockerfile analysis
  repodoc scan --json           # Output the scan result as JSON`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.BoolVar(&scanFlags.jsonOutput, "json", false, "Output the scan result as JSON")
	f.StringVarP(&scanFlags.out, "out", "o", "", "Save output to the given path")
	f.BoolVar(&scanFlags.skipDocker, "skip-docker", false, "Skip Dockerfile analysis")
	f.BoolVar(&scanFlags.skipDeadcode, "skip-deadcode", false, "Skip dead code analysis")
	f.IntVar(&scanFlags.timeout, "timeout", 0, "Timeout in seconds per Copilot invocation")
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := newSession(scanFlags.timeout)
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	result := schema.ScanResult{}
	var moduleScores []int

	// Module 1: diet.
	progress(scanFlags.jsonOutput, "1/4 Running diet analysis...")
	diet, err := scanModule[schema.DietOutput](ctx, s, "diet", nil, schema.Diet)
	if err != nil {
		result.ModuleResults = append(result.ModuleResults, failedModule("diet", err))
	} else {
		score := issueScore(len(diet.Issues), 5)
		moduleScores = append(moduleScores, score)
		result.DietAnalysis = &diet.Analysis
		result.ModuleResults = append(result.ModuleResults,
			okModule("diet", len(diet.Issues), score))
	}

	// Module 2: tour. The tour has no issue count; it contributes
	// context to the report, not to the score.
	progress(scanFlags.jsonOutput, "2/4 Generating repository tour...")
	tour, err := scanModule[schema.TourOutput](ctx, s, "tour", nil, schema.Tour)
	if err != nil {
		result.ModuleResults = append(result.ModuleResults, failedModule("tour", err))
	} else {
		result.TourSummary = &tour.Tour
		result.ModuleResults = append(result.ModuleResults,
			schema.ModuleResult{ModuleName: "tour", Success: true})
	}

	// Module 3: docker, when a Dockerfile exists.
	dockerfile := filepath.Join(s.root, "Dockerfile")
	switch {
	case scanFlags.skipDocker:
		progress(scanFlags.jsonOutput, "3/4 Skipping Docker analysis")
	case !fileExists(dockerfile):
		progress(scanFlags.jsonOutput, "3/4 No Dockerfile found, skipping")
	default:
		progress(scanFlags.jsonOutput, "3/4 Analyzing Dockerfile...")
		docker, err := scanModule[schema.DockerOutput](ctx, s, "docker",
			map[string]string{"dockerfile_path": dockerfile}, schema.Docker)
		if err != nil {
			result.ModuleResults = append(result.ModuleResults, failedModule("docker", err))
		} else {
			score := issueScore(len(docker.Issues), 5)
			moduleScores = append(moduleScores, score)
			result.DockerAnalysis = docker.Dockerfiles
			result.ModuleResults = append(result.ModuleResults,
				okModule("docker", len(docker.Issues), score))
		}
	}

	// Module 4: deadcode.
	if scanFlags.skipDeadcode {
		progress(scanFlags.jsonOutput, "4/4 Skipping dead code analysis")
	} else {
		progress(scanFlags.jsonOutput, "4/4 Detecting dead code...")
		dead, err := scanModule[schema.DeadCodeOutput](ctx, s, "deadcode", nil, schema.DeadCode)
		if err != nil {
			result.ModuleResults = append(result.ModuleResults, failedModule("deadcode", err))
		} else {
			score := issueScore(dead.Summary.TotalFindings, 2)
			moduleScores = append(moduleScores, score)
			result.DeadCodeSummary = &dead.Summary
			result.ModuleResults = append(result.ModuleResults,
				okModule("deadcode", dead.Summary.TotalFindings, score))
		}
	}

	result.HealthScore = overallHealth(moduleScores)

	cachePath := repofs.ScanCachePath(s.root)
	if err := repofs.SaveJSON(cachePath, result); err != nil {
		s.log.Warn("failed to save scan cache", "err", err)
	}

	if scanFlags.jsonOutput {
		return printJSON(result, scanFlags.out)
	}

	fmt.Println()
	render.New(os.Stdout, render.ASCII).Scan(&result)
	fmt.Printf("\nResults cached at: %s\n", cachePath)

	if scanFlags.out != "" {
		if err := saveRendered(scanFlags.out, func(r *render.Renderer) { r.Scan(&result) }); err != nil {
			return err
		}
	}

	printSuccess("Full repository scan", []string{
		"Review the health score and identified issues",
		"Run 'repodoc report' to generate a detailed markdown report",
		"Address critical/high severity issues first",
	})
	return nil
}

// scanModule runs one module's prompt through the pipeline. Failures
// are returned, not fatal; the caller records them and moves on.
func scanModule[T any](ctx context.Context, s *session, name string, extra map[string]string, sp *schema.Spec) (*T, error) {
	vars := map[string]string{"repo_path": s.root}
	for k, v := range extra {
		vars[k] = v
	}
	p, err := s.prompts.Render(name, vars)
	if err != nil {
		return nil, err
	}
	out, _, err := pipeline.Run[T](ctx, s.pipe, copilotRequest(s, p), sp)
	if err != nil {
		s.log.Error("scan module failed", "module", name, "err", err)
		progress(scanFlags.jsonOutput, "     ⚠ %s failed: %v", name, err)
		return nil, err
	}
	progress(scanFlags.jsonOutput, "     ✓ %s complete", name)
	return out, nil
}

// issueScore penalizes a module score by weight per issue, floored at 0.
func issueScore(issues, weight int) int {
	score := 100 - issues*weight
	if score < 0 {
		return 0
	}
	return score
}

// overallHealth averages the module scores and assigns a letter grade.
// No successful scored module at all is a zero.
func overallHealth(scores []int) schema.HealthScore {
	total := 0
	for _, s := range scores {
		total += s
	}
	overall := 0
	if len(scores) > 0 {
		overall = total / len(scores)
	}

	var grade string
	switch {
	case overall >= 90:
		grade = "A"
	case overall >= 80:
		grade = "B"
	case overall >= 70:
		grade = "C"
	case overall >= 60:
		grade = "D"
	default:
		grade = "F"
	}
	return schema.HealthScore{OverallScore: overall, Grade: grade}
}

func okModule(name string, issues, score int) schema.ModuleResult {
	return schema.ModuleResult{
		ModuleName:  name,
		Success:     true,
		IssuesCount: issues,
		Score:       &score,
	}
}

func failedModule(name string, err error) schema.ModuleResult {
	return schema.ModuleResult{ModuleName: name, Error: err.Error()}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
