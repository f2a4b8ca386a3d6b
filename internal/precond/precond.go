// Package precond defines the admission-check protocol that gates command
// execution. A precondition container exposes one entry point per invocation
// transport and returns an immutable ok/error result; the framework runs a
// command's containers in order and stops at the first denial.
package precond

import (
	"context"

	"github.com/herald-tools/herald/internal/domain"
	"github.com/herald-tools/herald/internal/usage"
)

// Result is the outcome of one admission check: ok with no payload, or a
// denial carrying a stable identifier, a user-displayable message, and
// optional structured context. Results are values, never thrown signals.
type Result struct {
	denied     bool
	Identifier string
	Message    string
	Context    map[string]any
}

// Allow returns the passing result.
func Allow() Result {
	return Result{}
}

// Deny returns a denial with the given identifier and message.
func Deny(identifier, message string) Result {
	return Result{denied: true, Identifier: identifier, Message: message}
}

// DenyWithContext returns a denial carrying structured context, for example
// which channel kinds were required.
func DenyWithContext(identifier, message string, ctx map[string]any) Result {
	return Result{denied: true, Identifier: identifier, Message: message, Context: ctx}
}

// Denied reports whether this result blocks execution.
func (r Result) Denied() bool {
	return r.denied
}

// AsError converts a denial into a user-facing error. Returns nil for an
// ok result.
func (r Result) AsError() *usage.Error {
	if !r.denied {
		return nil
	}
	return usage.PreconditionDenied(r.Identifier, r.Message, r.Context)
}

// Precondition is the uniform contract for admission checks, invoked
// identically regardless of invocation transport. MessageRun gates
// already-materialized message invocations synchronously; ChatInputRun and
// ContextMenuRun gate event-like invocations and may resolve additional
// context (such as the channel a bare ID refers to) before checking.
type Precondition interface {
	Name() string

	MessageRun(msg *domain.Message, cmd *domain.Command, pctx domain.PreconditionContext) Result
	ChatInputRun(ctx context.Context, in *domain.Interaction, cmd *domain.Command, pctx domain.PreconditionContext) Result
	ContextMenuRun(ctx context.Context, in *domain.Interaction, cmd *domain.Command, pctx domain.PreconditionContext) Result
}

// Sequence composes preconditions into one container that evaluates its
// members in order and short-circuits on the first denial.
func Sequence(ps ...Precondition) Precondition {
	return sequence(ps)
}

type sequence []Precondition

func (s sequence) Name() string { return "sequence" }

func (s sequence) MessageRun(msg *domain.Message, cmd *domain.Command, pctx domain.PreconditionContext) Result {
	for _, p := range s {
		if r := p.MessageRun(msg, cmd, pctx); r.Denied() {
			return r
		}
	}
	return Allow()
}

func (s sequence) ChatInputRun(ctx context.Context, in *domain.Interaction, cmd *domain.Command, pctx domain.PreconditionContext) Result {
	for _, p := range s {
		if r := p.ChatInputRun(ctx, in, cmd, pctx); r.Denied() {
			return r
		}
	}
	return Allow()
}

func (s sequence) ContextMenuRun(ctx context.Context, in *domain.Interaction, cmd *domain.Command, pctx domain.PreconditionContext) Result {
	for _, p := range s {
		if r := p.ContextMenuRun(ctx, in, cmd, pctx); r.Denied() {
			return r
		}
	}
	return Allow()
}
