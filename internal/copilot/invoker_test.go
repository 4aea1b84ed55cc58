package copilot_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/k1lgor/RepoDoctor/internal/copilot"
	"github.com/k1lgor/RepoDoctor/internal/errdefs"
)

// scriptRunner plays back one Result (or Runner error) per call and
// records every prompt it saw.
type scriptRunner struct {
	results []copilot.Result
	errs    []error
	calls   int
	prompts []string
}

func (r *scriptRunner) Run(ctx context.Context, dir, bin string, args ...string) (copilot.Result, error) {
	i := r.calls
	r.calls++
	if len(args) > 0 {
		r.prompts = append(r.prompts, args[len(args)-1])
	}
	var err error
	if i < len(r.errs) {
		err = r.errs[i]
	}
	if i < len(r.results) {
		return r.results[i], err
	}
	return copilot.Result{}, err
}

// blockingRunner waits for the context deadline, like a hung subprocess.
type blockingRunner struct {
	calls int
}

func (r *blockingRunner) Run(ctx context.Context, dir, bin string, args ...string) (copilot.Result, error) {
	r.calls++
	<-ctx.Done()
	return copilot.Result{ExitCode: -1}, nil
}

func foundLookPath(string) (string, error) { return "/usr/local/bin/copilot", nil }

func newTestInvoker(t *testing.T, runner copilot.Runner) *copilot.Invoker {
	t.Helper()
	inv, err := copilot.New(copilot.Options{
		Runner:   runner,
		LookPath: foundLookPath,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return inv
}

func TestNew_BinaryMissing(t *testing.T) {
	_, err := copilot.New(copilot.Options{
		LookPath: func(string) (string, error) { return "", errors.New("not in PATH") },
	})
	if !errdefs.IsKind(err, errdefs.KindCopilotNotFound) {
		t.Fatalf("expected KindCopilotNotFound, got %v", err)
	}
	var e *errdefs.Error
	errors.As(err, &e)
	if !strings.Contains(e.Hint, "npm install") {
		t.Errorf("expected install hint, got %q", e.Hint)
	}
}

func TestInvoke_Success(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{{Stdout: `{"ok":true}` + "\n"}}}
	inv := newTestInvoker(t, runner)

	out, err := inv.Invoke(context.Background(), copilot.Request{Prompt: "analyze"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if out != `{"ok":true}` {
		t.Errorf("out = %q, want trimmed stdout", out)
	}
	if runner.calls != 1 {
		t.Errorf("calls = %d, want 1", runner.calls)
	}
}

func TestInvoke_EmptyOutputIsFailure(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{{Stdout: "  \n "}}}
	inv := newTestInvoker(t, runner)

	_, err := inv.Invoke(context.Background(), copilot.Request{Prompt: "analyze"})
	if !errdefs.IsKind(err, errdefs.KindExecution) {
		t.Fatalf("expected KindExecution for empty output, got %v", err)
	}
}

func TestInvoke_NonZeroExit_AuthClassified(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{
		{Stderr: "Error: authentication required", ExitCode: 1},
	}}
	inv := newTestInvoker(t, runner)

	_, err := inv.Invoke(context.Background(), copilot.Request{Prompt: "analyze"})
	var e *errdefs.Error
	if !errors.As(err, &e) || e.Kind != errdefs.KindExecution {
		t.Fatalf("expected execution error, got %v", err)
	}
	if !strings.Contains(e.Message, "authentication") {
		t.Errorf("expected auth classification in message, got %q", e.Message)
	}
	if e.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", e.ExitCode)
	}
}

func TestInvoke_NonZeroExit_GenericStderrCapped(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{
		{Stderr: strings.Repeat("e", 400), ExitCode: 2},
	}}
	inv := newTestInvoker(t, runner)

	_, err := inv.Invoke(context.Background(), copilot.Request{Prompt: "analyze"})
	var e *errdefs.Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *errdefs.Error, got %v", err)
	}
	if strings.Contains(e.Message, strings.Repeat("e", 201)) {
		t.Errorf("stderr in message should be capped at 200 chars")
	}
}

func TestInvoke_Timeout(t *testing.T) {
	runner := &blockingRunner{}
	inv := newTestInvoker(t, runner)

	_, err := inv.Invoke(context.Background(), copilot.Request{
		Prompt:  "analyze",
		Timeout: 20 * time.Millisecond,
	})
	var e *errdefs.Error
	if !errors.As(err, &e) || e.Kind != errdefs.KindTimeout {
		t.Fatalf("expected KindTimeout, got %v", err)
	}
	if e.Timeout != 20*time.Millisecond {
		t.Errorf("Timeout = %s, want configured duration", e.Timeout)
	}
}

func TestInvokeWithRetry_SecondAttemptSucceeds(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{
		{Stderr: "transient failure", ExitCode: 1},
		{Stdout: `{"ok":true}`},
	}}
	inv := newTestInvoker(t, runner)

	out, retried, err := inv.InvokeWithRetry(context.Background(), copilot.Request{Prompt: "analyze"})
	if err != nil {
		t.Fatalf("InvokeWithRetry failed: %v", err)
	}
	if !retried {
		t.Errorf("retried = false, want true")
	}
	if out != `{"ok":true}` {
		t.Errorf("out = %q", out)
	}
	if runner.calls != 2 {
		t.Errorf("calls = %d, want exactly 2", runner.calls)
	}
	if !strings.Contains(runner.prompts[1], "strict JSON only") {
		t.Errorf("retry prompt missing strict-JSON suffix: %q", runner.prompts[1])
	}
	if strings.Contains(runner.prompts[0], "strict JSON only") {
		t.Errorf("first prompt must not carry the suffix")
	}
}

func TestInvokeWithRetry_BothAttemptsFail(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{
		{Stderr: "first failure", ExitCode: 1},
		{Stderr: "second failure", ExitCode: 1},
	}}
	inv := newTestInvoker(t, runner)

	_, retried, err := inv.InvokeWithRetry(context.Background(), copilot.Request{Prompt: "analyze"})
	if runner.calls != 2 {
		t.Fatalf("calls = %d, want exactly 2 (no third attempt)", runner.calls)
	}
	if !retried {
		t.Errorf("retried = false, want true")
	}
	var e *errdefs.Error
	if !errors.As(err, &e) || e.Kind != errdefs.KindExecution {
		t.Fatalf("expected execution error, got %v", err)
	}
	if e.Stderr != "second failure" {
		t.Errorf("surfaced error should be the retry's, got stderr %q", e.Stderr)
	}
	var cause *errdefs.Error
	if !errors.As(errors.Unwrap(e), &cause) || cause.Stderr != "first failure" {
		t.Errorf("expected original failure chained as cause, got %v", errors.Unwrap(e))
	}
}

func TestInvokeWithRetry_TimeoutNeverRetries(t *testing.T) {
	runner := &blockingRunner{}
	inv := newTestInvoker(t, runner)

	_, retried, err := inv.InvokeWithRetry(context.Background(), copilot.Request{
		Prompt:  "analyze",
		Timeout: 20 * time.Millisecond,
	})
	if runner.calls != 1 {
		t.Fatalf("calls = %d, want exactly 1", runner.calls)
	}
	if retried {
		t.Errorf("retried = true, want false")
	}
	if !errdefs.IsKind(err, errdefs.KindTimeout) {
		t.Fatalf("expected KindTimeout, got %v", err)
	}
}

func TestInvoke_ReplacesInvalidUTF8(t *testing.T) {
	runner := &scriptRunner{results: []copilot.Result{{Stdout: "ok \xff\xfe done"}}}
	inv := newTestInvoker(t, runner)

	out, err := inv.Invoke(context.Background(), copilot.Request{Prompt: "analyze"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if strings.ContainsRune(out, 0xFFFD) == false {
		t.Errorf("expected replacement characters in output, got %q", out)
	}
}
