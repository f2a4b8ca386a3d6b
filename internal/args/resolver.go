// Package args turns a tokenized invocation into strongly-typed values. A
// Registry maps argument type names to resolvers; an Args facade (one per
// command execution) pulls typed values out of the token stream with
// backtracking, repetition, and checkpoint support.
package args

import (
	"context"

	"github.com/herald-tools/herald/internal/domain"
)

// Context is the invocation context handed unchanged to every resolver call:
// the triggering event, the command definition, and caller-supplied data.
// Exactly one of Message or Interaction is set.
type Context struct {
	Message     *domain.Message
	Interaction *domain.Interaction
	Command     *domain.Command

	// Collaborators resolvers may need to materialize referenced entities.
	Channels domain.ChannelResolver
	Users    domain.UserResolver

	// Data carries free-form caller context.
	Data map[string]any
}

// Resolver converts a raw token (or the joined remaining tokens for a rest
// extraction) into a typed value. Resolvers must be referentially stable:
// the same name always maps to the same behavior. A failure should be a
// *usage.Error so its identifier survives to the caller; plain errors are
// wrapped as generic parse failures.
type Resolver func(ctx context.Context, inv *Context, raw string, opts Options) (any, error)

// Options carries the per-extraction settings recognized by resolvers.
type Options struct {
	// Name is the logical parameter name used in error reporting. Defaults
	// to the argument type name.
	Name string

	// Times bounds a Repeat extraction. Zero means unbounded.
	Times int

	// Minimum and Maximum bound numeric resolvers when set.
	Minimum *float64
	Maximum *float64

	// Choices constrains the enum resolver.
	Choices []string
}

// Option mutates extraction Options.
type Option func(*Options)

// Named sets the logical parameter name used in error messages.
func Named(name string) Option {
	return func(o *Options) { o.Name = name }
}

// Times bounds the number of values a Repeat extraction collects.
func Times(n int) Option {
	return func(o *Options) { o.Times = n }
}

// Minimum sets the lower bound for numeric resolvers.
func Minimum(v float64) Option {
	return func(o *Options) { o.Minimum = &v }
}

// Maximum sets the upper bound for numeric resolvers.
func Maximum(v float64) Option {
	return func(o *Options) { o.Maximum = &v }
}

// Choices constrains the enum resolver to the given values.
func Choices(choices ...string) Option {
	return func(o *Options) { o.Choices = choices }
}

func buildOptions(name string, opts []Option) Options {
	o := Options{Name: name}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}
