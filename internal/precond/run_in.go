package precond

import (
	"context"
	"fmt"

	"github.com/herald-tools/herald/internal/domain"
)

// RunInKey is the precondition-context key under which a command author
// supplies a *RunInConfig.
const RunInKey = "runIn"

// RunInConfig is the author-supplied configuration for the RunIn check:
// either one allow-list shared across all transports, or a per-transport
// record. A transport with no configured list is not gated at all.
type RunInConfig struct {
	Shared      []domain.ChannelKind
	ByTransport map[domain.Transport][]domain.ChannelKind
}

// listFor returns the allow-list applying to the given transport, if any.
func (c *RunInConfig) listFor(t domain.Transport) ([]domain.ChannelKind, bool) {
	if c == nil {
		return nil, false
	}
	if len(c.Shared) > 0 {
		return c.Shared, true
	}
	list, ok := c.ByTransport[t]
	return list, ok
}

// RunIn gates a command by channel kind with per-transport configuration
// read from the precondition context. Absent configuration is an
// unconditional pass: missing config must never mean "nothing is allowed".
type RunIn struct {
	resolver domain.ChannelResolver
}

// NewRunIn builds the check. The resolver is used by the interaction entry
// points.
func NewRunIn(resolver domain.ChannelResolver) *RunIn {
	return &RunIn{resolver: resolver}
}

func (r *RunIn) Name() string { return "runIn" }

func (r *RunIn) MessageRun(msg *domain.Message, _ *domain.Command, pctx domain.PreconditionContext) Result {
	list, ok := configFor(pctx, domain.TransportMessage)
	if !ok {
		return Allow()
	}
	return membership(msg.Channel, list)
}

func (r *RunIn) ChatInputRun(ctx context.Context, in *domain.Interaction, _ *domain.Command, pctx domain.PreconditionContext) Result {
	return r.interactionRun(ctx, in, pctx, domain.TransportChatInput)
}

func (r *RunIn) ContextMenuRun(ctx context.Context, in *domain.Interaction, _ *domain.Command, pctx domain.PreconditionContext) Result {
	return r.interactionRun(ctx, in, pctx, domain.TransportContextMenu)
}

func (r *RunIn) interactionRun(ctx context.Context, in *domain.Interaction, pctx domain.PreconditionContext, t domain.Transport) Result {
	list, ok := configFor(pctx, t)
	if !ok {
		return Allow()
	}
	if r.resolver == nil {
		return Deny("channelResolveFailed", "no channel resolver is configured")
	}
	ch, err := r.resolver.ResolveChannel(ctx, in.ChannelID)
	if err != nil {
		return Deny("channelResolveFailed",
			fmt.Sprintf("could not resolve channel '%s'", in.ChannelID))
	}
	return membership(ch, list)
}

func configFor(pctx domain.PreconditionContext, t domain.Transport) ([]domain.ChannelKind, bool) {
	if pctx == nil {
		return nil, false
	}
	cfg, _ := pctx[RunInKey].(*RunInConfig)
	return cfg.listFor(t)
}

func membership(ch *domain.Channel, list []domain.ChannelKind) Result {
	if ch == nil {
		return Deny("channelResolveFailed", "the invocation has no channel")
	}
	for _, k := range list {
		if ch.Kind == k {
			return Allow()
		}
	}
	return DenyWithContext("runInDenied",
		fmt.Sprintf("this command can only run in %s channels", kindList(list)),
		map[string]any{"required": list, "actual": ch.Kind})
}
