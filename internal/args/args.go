package args

import (
	"context"
	"errors"
	"strings"

	"github.com/herald-tools/herald/internal/token"
	"github.com/herald-tools/herald/internal/usage"
)

// Args is the per-invocation facade command bodies use to pull typed values
// from the token stream. It exclusively owns its stream and checkpoint stack
// for the lifetime of one command execution and must not be shared across
// concurrent executions. Extraction operations are strictly sequential.
type Args struct {
	stream      *token.Stream
	registry    *Registry
	invocation  *Context
	checkpoints []token.Position
}

// New builds the facade for one command execution. The stream cursor is
// reset to the start.
func New(stream *token.Stream, registry *Registry, invocation *Context) *Args {
	stream.Reset()
	return &Args{
		stream:     stream,
		registry:   registry,
		invocation: invocation,
	}
}

// Context returns the invocation context owned by this facade.
func (a *Args) Context() *Context {
	return a.invocation
}

// Start rewinds the cursor to the first token and clears the checkpoint
// stack, as if parsing had not begun.
func (a *Args) Start() {
	a.stream.Reset()
	a.checkpoints = a.checkpoints[:0]
}

// Finished reports whether all positional tokens have been consumed.
func (a *Args) Finished() bool {
	return a.stream.Finished()
}

// PickResult consumes exactly one token through the named resolver. The
// cursor advances only on success. An exhausted stream yields a missing
// argument error; a resolver rejection yields the resolver's own error.
func (a *Args) PickResult(ctx context.Context, typ string, opts ...Option) Result {
	o := buildOptions(typ, opts)
	fn, uerr := a.registry.Resolve(typ)
	if uerr != nil {
		return fail(uerr)
	}
	return a.pickResult(ctx, fn, o)
}

// Pick is the error-returning variant of PickResult.
func (a *Args) Pick(ctx context.Context, typ string, opts ...Option) (any, error) {
	return a.PickResult(ctx, typ, opts...).Unwrap()
}

// PickResultWith runs a pick extraction with an ad-hoc, call-site-defined
// resolver instead of a registered type.
func (a *Args) PickResultWith(ctx context.Context, fn Resolver, opts ...Option) Result {
	return a.pickResult(ctx, fn, buildOptions("argument", opts))
}

// PickWith is the error-returning variant of PickResultWith.
func (a *Args) PickWith(ctx context.Context, fn Resolver, opts ...Option) (any, error) {
	return a.PickResultWith(ctx, fn, opts...).Unwrap()
}

// RestResult consumes all remaining tokens, joined by single spaces, through
// the named resolver. On resolver failure the consumed tokens are restored:
// a checkpoint is taken before the attempt and rolled back after.
func (a *Args) RestResult(ctx context.Context, typ string, opts ...Option) Result {
	o := buildOptions(typ, opts)
	fn, uerr := a.registry.Resolve(typ)
	if uerr != nil {
		return fail(uerr)
	}
	return a.restResult(ctx, fn, o)
}

// Rest is the error-returning variant of RestResult.
func (a *Args) Rest(ctx context.Context, typ string, opts ...Option) (any, error) {
	return a.RestResult(ctx, typ, opts...).Unwrap()
}

// RestResultWith runs a rest extraction with an ad-hoc resolver.
func (a *Args) RestResultWith(ctx context.Context, fn Resolver, opts ...Option) Result {
	return a.restResult(ctx, fn, buildOptions("argument", opts))
}

// RepeatResult consumes zero or more tokens, one per resolver call, up to
// the Times bound (unbounded by default). A failure after at least one
// collected value stops the loop silently; a failure on the very first
// attempt errors; an already-exhausted stream errors immediately. The value
// is a []any of the collected results.
func (a *Args) RepeatResult(ctx context.Context, typ string, opts ...Option) Result {
	o := buildOptions(typ, opts)
	fn, uerr := a.registry.Resolve(typ)
	if uerr != nil {
		return fail(uerr)
	}
	return a.repeatResult(ctx, fn, o)
}

// Repeat is the error-returning variant of RepeatResult.
func (a *Args) Repeat(ctx context.Context, typ string, opts ...Option) ([]any, error) {
	res := a.RepeatResult(ctx, typ, opts...)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Value.([]any), nil
}

// RepeatResultWith runs a repeat extraction with an ad-hoc resolver.
func (a *Args) RepeatResultWith(ctx context.Context, fn Resolver, opts ...Option) Result {
	return a.repeatResult(ctx, fn, buildOptions("argument", opts))
}

// PeekResult runs a pick-style extraction under a checkpoint that is
// unconditionally restored afterwards, so the cursor never advances.
func (a *Args) PeekResult(ctx context.Context, typ string, opts ...Option) Result {
	pos := a.stream.Save()
	defer a.stream.Restore(pos)
	return a.PickResult(ctx, typ, opts...)
}

// Peek is the error-returning variant of PeekResult.
func (a *Args) Peek(ctx context.Context, typ string, opts ...Option) (any, error) {
	return a.PeekResult(ctx, typ, opts...).Unwrap()
}

// PeekResultOf runs a caller-supplied extraction (for example a nested Rest
// or Repeat) under the peek checkpoint. The cursor is restored regardless of
// the extraction's outcome.
func (a *Args) PeekResultOf(extract func() Result) Result {
	pos := a.stream.Save()
	defer a.stream.Restore(pos)
	return extract()
}

// Next consumes one raw token if present. This is the non-failing primitive:
// an exhausted stream is an absent value, never an error.
func (a *Args) Next() (string, bool) {
	return a.stream.Single()
}

// NextMap consumes one token only if the transform accepts it. A rejected
// token stays in the stream.
func (a *Args) NextMap(transform func(string) (any, bool)) (any, bool) {
	return a.stream.SingleMap(transform)
}

// GetFlags reports whether any of the named boolean flags is present.
func (a *Args) GetFlags(names ...string) bool {
	return a.stream.Flag(names...)
}

// GetOption returns the last value bound to any of the given option names.
func (a *Args) GetOption(names ...string) (string, bool) {
	return a.stream.Option(names...)
}

// GetOptions returns all values bound to any of the given option names.
func (a *Args) GetOptions(names ...string) []string {
	return a.stream.Options(names...)
}

// Save pushes the current cursor position onto the checkpoint stack.
func (a *Args) Save() {
	a.checkpoints = append(a.checkpoints, a.stream.Save())
}

// Restore pops the latest checkpoint and rewinds to it. Restoring with an
// empty checkpoint stack is a silent no-op.
func (a *Args) Restore() {
	if len(a.checkpoints) == 0 {
		return
	}
	last := len(a.checkpoints) - 1
	a.stream.Restore(a.checkpoints[last])
	a.checkpoints = a.checkpoints[:last]
}

func (a *Args) pickResult(ctx context.Context, fn Resolver, o Options) Result {
	v, err := a.stream.SingleParse(ctx, a.adapt(fn, o))
	if err != nil {
		if errors.Is(err, token.ErrNoToken) {
			return fail(usage.MissingArgument(o.Name))
		}
		return fail(asUsage(err, o, ""))
	}
	return ok(v)
}

func (a *Args) restResult(ctx context.Context, fn Resolver, o Options) Result {
	if a.stream.Finished() {
		return fail(usage.MissingArgument(o.Name))
	}

	pos := a.stream.Save()
	joined := strings.Join(a.stream.Many(), " ")
	v, err := fn(ctx, a.invocation, joined, o)
	if err != nil {
		a.stream.Restore(pos)
		return fail(asUsage(err, o, joined))
	}
	return ok(v)
}

func (a *Args) repeatResult(ctx context.Context, fn Resolver, o Options) Result {
	adapter := a.adapt(fn, o)

	out := []any{}
	for o.Times == 0 || len(out) < o.Times {
		v, err := a.stream.SingleParse(ctx, adapter)
		if err != nil {
			if len(out) > 0 {
				break
			}
			if errors.Is(err, token.ErrNoToken) {
				return fail(usage.MissingArgument(o.Name))
			}
			raw, _ := a.stream.Peek()
			return fail(usage.RepeatEmpty(o.Name, raw, asUsage(err, o, raw)))
		}
		out = append(out, v)
	}
	return ok(out)
}

// adapt binds a resolver to this facade's invocation context so it can run
// under the stream's consume-on-success primitives.
func (a *Args) adapt(fn Resolver, o Options) func(context.Context, string) (any, error) {
	return func(ctx context.Context, raw string) (any, error) {
		v, err := fn(ctx, a.invocation, raw, o)
		if err != nil {
			return nil, asUsage(err, o, raw)
		}
		return v, nil
	}
}

// asUsage normalizes a resolver error into a *usage.Error, filling in the
// parameter name and offending token without mutating the original.
func asUsage(err error, o Options, raw string) *usage.Error {
	var ue *usage.Error
	if errors.As(err, &ue) {
		out := *ue
		if out.Parameter == "" {
			out.Parameter = o.Name
		}
		if out.Raw == "" {
			out.Raw = raw
		}
		return &out
	}
	return usage.ParseFailed("", err.Error(), o.Name, raw)
}
