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

var dockerFlags struct {
	jsonOutput bool
	out        string
	fix        bool
	inPlace    bool
	timeout    int
}

var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Review the Dockerfile for anti-patterns",
	Long: `Review the repository's Dockerfile for anti-patterns: unpinned base
images, missing multi-stage builds, cache-defeating layer order,
baked-in secrets, and a missing .dockerignore.

With --fix, a patched Dockerfile is written to Dockerfile.repodoc
(or over the original with --in-place).

Examples:
  repodoc docker                 # Review the Dockerfile
  repodoc docker --fix           # Also write Dockerfile.repodoc
  repodoc docker --fix --in-place  # Overwrite the original`,
	Args: cobra.NoArgs,
	RunE: runDocker,
}

func init() {
	f := dockerCmd.Flags()
	f.BoolVar(&dockerFlags.jsonOutput, "json", false, "Output JSON analysis instead of tables")
	f.StringVarP(&dockerFlags.out, "out", "o", "", "Save output to the given path")
	f.BoolVar(&dockerFlags.fix, "fix", false, "Write an optimized Dockerfile.repodoc with fixes applied")
	f.BoolVar(&dockerFlags.inPlace, "in-place", false, "Overwrite the original Dockerfile (requires --fix)")
	f.IntVar(&dockerFlags.timeout, "timeout", 0, "Timeout in seconds for the Copilot CLI")
}

func runDocker(cmd *cobra.Command, args []string) error {
	if dockerFlags.inPlace && !dockerFlags.fix {
		return fmt.Errorf("--in-place requires --fix")
	}

	s, err := newSession(dockerFlags.timeout)
	if err != nil {
		return err
	}
	defer s.close()

	dockerfile := filepath.Join(s.root, "Dockerfile")
	if _, err := os.Stat(dockerfile); err != nil {
		return fmt.Errorf("no Dockerfile found in repository root")
	}

	p, err := s.prompts.Render("docker", map[string]string{
		"repo_path":       s.root,
		"dockerfile_path": dockerfile,
	})
	if err != nil {
		return err
	}

	progress(dockerFlags.jsonOutput, "Analyzing Dockerfile...")
	result, _, err := pipeline.Run[schema.DockerOutput](cmd.Context(), s.pipe,
		copilotRequest(s, p), schema.Docker)
	if err != nil {
		return err
	}

	if dockerFlags.fix && result.PatchedDockerfile != nil {
		target := filepath.Join(s.root, "Dockerfile.repodoc")
		if dockerFlags.inPlace {
			target = dockerfile
			original, err := os.ReadFile(dockerfile)
			if err != nil {
				return fmt.Errorf("read Dockerfile for backup: %w", err)
			}
			backup := dockerfile + ".bak"
			if err := writeFile(backup, string(original)); err != nil {
				return err
			}
			fmt.Printf("⚠ Overwriting original Dockerfile (backup at %s)\n", backup)
		}
		if err := writeFile(target, result.PatchedDockerfile.PatchedContent); err != nil {
			return err
		}
		fmt.Printf("✓ Patched Dockerfile written to: %s\n", target)
		for _, change := range result.PatchedDockerfile.ChangesSummary {
			fmt.Printf("  • %s\n", change)
		}
		fmt.Println()
	}

	if dockerFlags.jsonOutput {
		return printJSON(result, dockerFlags.out)
	}

	render.New(os.Stdout, render.ASCII).Docker(result)

	if dockerFlags.out != "" {
		return saveRendered(dockerFlags.out, func(r *render.Renderer) { r.Docker(result) })
	}
	return nil
}
