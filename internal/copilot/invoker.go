// Package copilot runs the GitHub Copilot CLI as a subprocess: prompt
// in via a single argument, answer out on stdout, diagnostics on
// stderr, failure via non-zero exit. The invoker enforces a timeout,
// classifies failures into the errdefs taxonomy, and offers a single
// bounded retry that asks for strict JSON on the second attempt.
package copilot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/k1lgor/RepoDoctor/internal/errdefs"
	"github.com/k1lgor/RepoDoctor/internal/logging"
)

// DefaultBinary is the executable name looked up on PATH.
const DefaultBinary = "copilot"

// strictJSONSuffix is appended to the prompt on the retry attempt.
const strictJSONSuffix = "\n\nIMPORTANT: Format your response as strict JSON only. " +
	"No markdown code blocks, no explanatory text."

// Request describes one Copilot invocation.
type Request struct {
	Prompt  string
	Dir     string        // working directory; empty means the current one
	Timeout time.Duration // per-call override; 0 falls back to the invoker default
}

// Result is what a Runner reports back from one subprocess run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner abstracts subprocess execution so tests can substitute the
// external process. The default runner shells out via os/exec.
type Runner interface {
	Run(ctx context.Context, dir, bin string, args ...string) (Result, error)
}

// RawSink persists raw Copilot output for postmortem debugging.
type RawSink interface {
	SaveRaw(label, content string, isErr bool) (string, error)
}

// Options configure New. Zero values select the defaults.
type Options struct {
	Binary  string
	Timeout time.Duration
	Logger  *slog.Logger
	Raw     RawSink
	Runner  Runner
	// LookPath overrides the PATH probe; tests use it to simulate a
	// missing binary.
	LookPath func(string) (string, error)
}

// Invoker runs the Copilot CLI. Construction checks once that the
// binary is discoverable on PATH; the check is not repeated per call.
type Invoker struct {
	bin     string
	timeout time.Duration
	log     *slog.Logger
	raw     RawSink
	runner  Runner
}

// New builds an Invoker, failing fast with a not-found error (and an
// install/auth hint) when the Copilot binary is absent from PATH.
func New(opts Options) (*Invoker, error) {
	bin := opts.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	look := opts.LookPath
	if look == nil {
		look = exec.LookPath
	}
	if _, err := look(bin); err != nil {
		return nil, errdefs.CopilotNotFound().WithCause(err)
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	runner := opts.Runner
	if runner == nil {
		runner = execRunner{}
	}
	return &Invoker{
		bin:     bin,
		timeout: opts.Timeout,
		log:     log,
		raw:     opts.Raw,
		runner:  runner,
	}, nil
}

// Invoke runs one Copilot call and returns its stdout, trimmed, with
// invalid byte sequences replaced. Zero-length stdout on a zero exit
// is itself an execution failure: a process that "succeeded" but
// produced nothing usable.
func (inv *Invoker) Invoke(ctx context.Context, req Request) (string, error) {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = inv.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	inv.log.Info("invoking copilot", "dir", req.Dir, "timeout", timeout)
	inv.log.Debug("prompt", "head", errdefs.Truncate(req.Prompt, 200))

	res, runErr := inv.runner.Run(ctx, req.Dir, inv.bin, "-p", req.Prompt)

	if ctx.Err() == context.DeadlineExceeded {
		inv.log.Error("copilot timed out", "timeout", timeout)
		return "", errdefs.TimedOut(timeout)
	}

	stdout := strings.TrimSpace(strings.ToValidUTF8(res.Stdout, "�"))
	stderr := strings.TrimSpace(strings.ToValidUTF8(res.Stderr, "�"))

	if runErr != nil {
		inv.log.Error("copilot failed to run", "err", runErr)
		return "", errdefs.Execution(fmt.Sprintf("failed to run Copilot CLI: %v", runErr), stderr, -1).WithCause(runErr)
	}

	if res.ExitCode != 0 {
		inv.log.Error("copilot failed", "exit_code", res.ExitCode)
		inv.saveRaw("copilot_error", stderr, true)
		return "", errdefs.Execution(classifyStderr(stderr), stderr, res.ExitCode)
	}

	if stdout == "" {
		inv.log.Warn("copilot returned empty output")
		return "", errdefs.Execution(
			"Copilot CLI returned no output; the repository might be too small or empty",
			stderr, res.ExitCode)
	}

	inv.log.Debug("copilot completed")
	inv.saveRaw("copilot_output", stdout, false)
	return stdout, nil
}

// InvokeWithRetry calls Invoke once and, on an execution failure only,
// retries exactly once with the strict-JSON instruction appended to the
// prompt. Timeouts propagate immediately without a second attempt. If
// the retry also fails, the retry's failure is surfaced with the
// original chained as its cause. At most two subprocess invocations.
func (inv *Invoker) InvokeWithRetry(ctx context.Context, req Request) (string, bool, error) {
	out, err := inv.Invoke(ctx, req)
	if err == nil {
		return out, false, nil
	}
	if !errdefs.IsKind(err, errdefs.KindExecution) {
		return "", false, err
	}

	inv.log.Warn("first attempt failed, retrying with strict JSON formatting")
	retry := req
	retry.Prompt = req.Prompt + strictJSONSuffix

	out, retryErr := inv.Invoke(ctx, retry)
	if retryErr == nil {
		inv.log.Info("retry succeeded")
		return out, true, nil
	}

	inv.log.Error("both attempts failed")
	var e *errdefs.Error
	if errors.As(retryErr, &e) {
		e.WithCause(err)
	}
	return "", true, retryErr
}

func (inv *Invoker) saveRaw(label, content string, isErr bool) {
	if inv.raw == nil || content == "" {
		return
	}
	if _, err := inv.raw.SaveRaw(label, content, isErr); err != nil {
		inv.log.Warn("failed to persist raw output", "err", err)
	}
}

// classifyStderr builds a better execution-failure message from the
// captured stderr, matching substrings case-insensitively.
func classifyStderr(stderr string) string {
	lower := strings.ToLower(stderr)
	switch {
	case strings.Contains(lower, "authentication") || strings.Contains(lower, "auth"):
		return "Copilot CLI authentication failed; run 'copilot' to launch it, then /login to authenticate"
	case strings.Contains(lower, "not found"):
		return "Copilot CLI command not recognized"
	case stderr != "":
		return "Copilot CLI error: " + errdefs.Truncate(stderr, 200)
	default:
		return "Copilot CLI execution failed"
	}
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, bin string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Non-zero exit is data, not a runner error; the invoker
			// classifies it.
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
