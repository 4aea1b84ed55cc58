package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1lgor/RepoDoctor/internal/config"
	"github.com/k1lgor/RepoDoctor/internal/copilot"
	"github.com/k1lgor/RepoDoctor/internal/errdefs"
	"github.com/k1lgor/RepoDoctor/internal/logging"
	"github.com/k1lgor/RepoDoctor/internal/pipeline"
	"github.com/k1lgor/RepoDoctor/internal/prompt"
	"github.com/k1lgor/RepoDoctor/internal/render"
	"github.com/k1lgor/RepoDoctor/internal/repofs"
)

// session wires the per-command dependencies: repository root, config,
// log sink, prompt templates, and the invoke/validate pipeline.
type session struct {
	root    string
	cfg     config.Config
	logs    *logging.Session
	prompts *prompt.Loader
	pipe    *pipeline.Pipeline
	log     *slog.Logger
}

// newSession resolves the repository in the working directory and
// builds the pipeline. timeoutSecs > 0 overrides the configured value.
func newSession(timeoutSecs int) (*session, error) {
	root, err := repofs.Root("")
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	if timeoutSecs > 0 {
		cfg.TimeoutSeconds = timeoutSecs
	}

	level := slog.LevelInfo
	stderrLevel := slog.LevelWarn
	if rootFlags.verbose {
		level = slog.LevelDebug
		stderrLevel = slog.LevelDebug
	}
	logging.Init(stderrLevel, "text")

	logs, err := logging.Open(cfg.ResolveDir(root, cfg.LogDir), level)
	if err != nil {
		return nil, err
	}

	prompts, err := prompt.NewLoader(cfg.ResolveDir(root, cfg.PromptDir))
	if err != nil {
		logs.Close()
		return nil, err
	}

	inv, err := copilot.New(copilot.Options{
		Binary:  cfg.Binary,
		Timeout: cfg.Timeout(),
		Logger:  logs.Logger(),
		Raw:     logs,
	})
	if err != nil {
		logs.Close()
		return nil, err
	}

	return &session{
		root:    root,
		cfg:     cfg,
		logs:    logs,
		prompts: prompts,
		pipe: pipeline.New(pipeline.Options{
			Invoker: inv,
			Raw:     logs,
			Logger:  logs.Logger(),
		}),
		log: logs.Logger(),
	}, nil
}

func (s *session) close() {
	if s.logs != nil {
		s.logs.Close()
	}
}

// copilotRequest runs the prompt from the repository root so Copilot
// sees the code it is asked about.
func copilotRequest(s *session, prompt string) copilot.Request {
	return copilot.Request{Prompt: prompt, Dir: s.root}
}

// printError writes a classified error to stderr with its headline,
// message, and remediation hint. Verbose adds the diagnostic payload.
func printError(err error, verbose bool) {
	var e *errdefs.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(os.Stderr, "✗ Error: %v\n", err)
		return
	}

	var headline string
	switch e.Kind {
	case errdefs.KindCopilotNotFound:
		headline = "✗ Copilot CLI not found"
	case errdefs.KindTimeout:
		headline = "✗ Operation timed out"
	case errdefs.KindExecution:
		headline = "✗ Copilot execution failed"
	case errdefs.KindParse, errdefs.KindSchema:
		headline = "✗ Output parsing failed"
	case errdefs.KindEmptyRepo:
		headline = "✗ Repository error"
	default:
		headline = "✗ Error"
	}
	fmt.Fprintf(os.Stderr, "%s\n%s\n", headline, e.Message)
	if e.Hint != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", e.Hint)
	}

	if verbose {
		if e.Stderr != "" {
			fmt.Fprintf(os.Stderr, "\nstderr:\n%s\n", e.Stderr)
		}
		if e.RawOutput != "" {
			fmt.Fprintf(os.Stderr, "\nraw output:\n%s\n", errdefs.Truncate(e.RawOutput, 2000))
		}
		if cause := errors.Unwrap(err); cause != nil {
			fmt.Fprintf(os.Stderr, "\ncaused by: %v\n", cause)
		}
	} else {
		fmt.Fprintln(os.Stderr, "\nRun with --verbose for full error details")
	}
}

// writeFile writes content, creating parent directories.
func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// printJSON writes v as indented JSON to stdout, or to outPath when set.
func printJSON(v any, outPath string) error {
	if outPath != "" {
		if err := repofs.SaveJSON(outPath, v); err != nil {
			return err
		}
		fmt.Printf("✓ JSON output saved to: %s\n", outPath)
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// saveRendered captures the Markdown-mode rendering to a file.
func saveRendered(path string, renderFn func(*render.Renderer)) error {
	var sb strings.Builder
	renderFn(render.New(&sb, render.Markdown))
	if err := writeFile(path, sb.String()); err != nil {
		return err
	}
	fmt.Printf("✓ Output saved to: %s\n", path)
	return nil
}

// printSuccess prints the completion banner plus suggested follow-ups.
func printSuccess(command string, nextActions []string) {
	fmt.Printf("\n✓ %s completed successfully!\n", command)
	if len(nextActions) == 0 {
		return
	}
	fmt.Println("\nNext steps:")
	for _, a := range nextActions {
		fmt.Printf("  • %s\n", a)
	}
}

// progress prints a step banner unless json-only output was requested.
func progress(jsonOutput bool, format string, args ...any) {
	if jsonOutput {
		return
	}
	fmt.Printf(format+"\n", args...)
}
