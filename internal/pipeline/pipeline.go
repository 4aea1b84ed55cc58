// Package pipeline chains a Copilot invocation with payload extraction
// and schema validation into one typed call. A pipeline run either
// yields a fully validated struct or a single classified error; there
// is no partially parsed middle ground.
package pipeline

import (
	"context"
	"log/slog"

	"github.com/k1lgor/RepoDoctor/internal/copilot"
	"github.com/k1lgor/RepoDoctor/internal/logging"
	"github.com/k1lgor/RepoDoctor/internal/schema"
)

// Pipeline owns the invoker and the artifact sink shared by all task
// runs in one command execution.
type Pipeline struct {
	inv *copilot.Invoker
	raw copilot.RawSink
	log *slog.Logger
}

// Options configure New.
type Options struct {
	Invoker *copilot.Invoker
	Raw     copilot.RawSink
	Logger  *slog.Logger
}

func New(opts Options) *Pipeline {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Pipeline{inv: opts.Invoker, raw: opts.Raw, log: log}
}

// Run executes one prompt end to end: invoke Copilot (with the bounded
// retry), extract the JSON payload from the free-form answer, validate
// it against sp, and decode it into T. The bool reports whether the
// answer came from the strict-JSON retry. Raw output that fails parsing
// or validation is persisted for postmortem before the error returns.
func Run[T any](ctx context.Context, p *Pipeline, req copilot.Request, sp *schema.Spec) (*T, bool, error) {
	out, retried, err := p.inv.InvokeWithRetry(ctx, req)
	if err != nil {
		return nil, retried, err
	}

	result, err := schema.ParseAndValidate[T](out, sp)
	if err != nil {
		p.log.Error("output rejected", "task", sp.Name, "err", err)
		p.saveRaw("parse_error_"+sp.Name, out)
		return nil, retried, err
	}

	p.log.Info("task completed", "task", sp.Name, "retried", retried)
	return result, retried, nil
}

func (p *Pipeline) saveRaw(label, content string) {
	if p.raw == nil || content == "" {
		return
	}
	if _, err := p.raw.SaveRaw(label, content, true); err != nil {
		p.log.Warn("failed to persist rejected output", "err", err)
	}
}
