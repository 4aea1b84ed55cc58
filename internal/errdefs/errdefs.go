// Package errdefs defines the closed set of failure kinds repodoc can
// surface. Every error the invoker, parser and validator raise is an
// *Error tagged with one Kind, carrying a user-facing message, an
// optional remediation hint, and kind-specific diagnostic payload.
package errdefs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind identifies one failure class.
type Kind int

const (
	KindUnknown Kind = iota
	KindCopilotNotFound
	KindExecution
	KindTimeout
	KindParse
	KindSchema
	KindEmptyRepo
)

func (k Kind) String() string {
	switch k {
	case KindCopilotNotFound:
		return "copilot-not-found"
	case KindExecution:
		return "execution"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse"
	case KindSchema:
		return "schema"
	case KindEmptyRepo:
		return "empty-repo"
	default:
		return "unknown"
	}
}

// Violation is a single field-level schema violation.
type Violation struct {
	Path    string
	Message string
}

func (v Violation) String() string {
	return v.Path + ": " + v.Message
}

// Error is the concrete type behind every taxonomy kind.
type Error struct {
	Kind    Kind
	Message string
	Hint    string

	// Execution payload.
	Stderr   string
	ExitCode int

	// Parse payload: everything the process wrote, not the extracted fragment.
	RawOutput string

	// Timeout payload.
	Timeout time.Duration

	// Schema payload.
	SchemaName string
	Violations []Violation

	cause error
}

func (e *Error) Error() string {
	if e.Kind == KindSchema && len(e.Violations) > 0 {
		return e.Message + ":\n" + FormatViolations(e.Violations)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// WithCause chains an underlying error for diagnostics and returns e.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// IsKind reports whether err is (or wraps) a taxonomy error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

const notFoundHint = `Install the GitHub Copilot CLI with:
  npm install -g @github/copilot

Launch it once with 'copilot', then authenticate with '/login'.`

// CopilotNotFound reports that the Copilot CLI is missing from PATH.
func CopilotNotFound() *Error {
	return &Error{
		Kind:    KindCopilotNotFound,
		Message: "GitHub Copilot CLI not found in PATH; repodoc requires the Copilot CLI to function",
		Hint:    notFoundHint,
	}
}

// Execution reports a failed Copilot run: non-zero exit, a start failure,
// or a zero exit that produced no usable output.
func Execution(message, stderr string, exitCode int) *Error {
	e := &Error{
		Kind:     KindExecution,
		Message:  message,
		Stderr:   stderr,
		ExitCode: exitCode,
	}
	if exitCode == 1 && strings.Contains(strings.ToLower(stderr), "authentication") {
		e.Hint = "Run 'copilot' and then '/login' to authenticate with GitHub Copilot"
	} else if stderr != "" {
		e.Hint = "Copilot CLI error output:\n" + Truncate(stderr, 200)
	}
	return e
}

// TimedOut reports that the subprocess exceeded the configured duration.
func TimedOut(d time.Duration) *Error {
	return &Error{
		Kind:    KindTimeout,
		Message: fmt.Sprintf("Copilot CLI execution timed out after %s", d),
		Timeout: d,
		Hint: "Try a larger --timeout value, or check whether the repository is very large; " +
			"large repositories take longer to analyze",
	}
}

// Parse reports that the extracted response text was not valid JSON.
// rawOutput is the full original response, preserved for diagnostics.
func Parse(message, rawOutput string, cause error) *Error {
	return &Error{
		Kind:      KindParse,
		Message:   message,
		RawOutput: rawOutput,
		Hint: "The Copilot CLI response was not valid JSON. This might be a temporary " +
			"issue; try running the command again. The raw output has been logged.",
		cause: cause,
	}
}

// Schema reports that syntactically valid JSON violated the declared
// contract. All violations found are carried, not just the first.
func Schema(schemaName string, violations []Violation) *Error {
	return &Error{
		Kind:       KindSchema,
		Message:    fmt.Sprintf("output does not match the expected %s schema", schemaName),
		SchemaName: schemaName,
		Violations: violations,
		Hint: "Copilot returned data in an unexpected shape:\n" + FormatViolations(violations) +
			"\nThis may indicate a change in Copilot's output format.",
	}
}

// EmptyRepo reports that the working directory has no analyzable content.
func EmptyRepo() *Error {
	return &Error{
		Kind:    KindEmptyRepo,
		Message: "repository appears to be empty or has no analyzable content",
		Hint:    "Run repodoc from a directory that contains source code files",
	}
}

// FormatViolations renders the first 3 violations as "path: message"
// lines plus a count of any remainder.
func FormatViolations(violations []Violation) string {
	var b strings.Builder
	for i, v := range violations {
		if i == 3 {
			fmt.Fprintf(&b, "  ... and %d more", len(violations)-3)
			break
		}
		fmt.Fprintf(&b, "  - %s\n", v)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Truncate caps s at n bytes for display.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
