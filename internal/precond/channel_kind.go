package precond

import (
	"context"
	"fmt"
	"strings"

	"github.com/herald-tools/herald/internal/domain"
)

// ChannelKind gates a command to a fixed set of channel kinds. The check is
// identical across all three entry points; only how the channel is obtained
// differs — messages carry a materialized channel, interactions carry a bare
// ID that must be resolved first.
type ChannelKind struct {
	resolver domain.ChannelResolver
	allowed  []domain.ChannelKind
}

// NewChannelKind builds the check. The resolver is used by the interaction
// entry points; kinds is the fixed allow-list.
func NewChannelKind(resolver domain.ChannelResolver, kinds ...domain.ChannelKind) *ChannelKind {
	return &ChannelKind{resolver: resolver, allowed: kinds}
}

func (c *ChannelKind) Name() string { return "channelKind" }

func (c *ChannelKind) MessageRun(msg *domain.Message, _ *domain.Command, _ domain.PreconditionContext) Result {
	return c.check(msg.Channel)
}

func (c *ChannelKind) ChatInputRun(ctx context.Context, in *domain.Interaction, _ *domain.Command, _ domain.PreconditionContext) Result {
	return c.checkResolved(ctx, in.ChannelID)
}

func (c *ChannelKind) ContextMenuRun(ctx context.Context, in *domain.Interaction, _ *domain.Command, _ domain.PreconditionContext) Result {
	return c.checkResolved(ctx, in.ChannelID)
}

func (c *ChannelKind) checkResolved(ctx context.Context, channelID string) Result {
	if c.resolver == nil {
		return Deny("channelResolveFailed", "no channel resolver is configured")
	}
	ch, err := c.resolver.ResolveChannel(ctx, channelID)
	if err != nil {
		return Deny("channelResolveFailed",
			fmt.Sprintf("could not resolve channel '%s'", channelID))
	}
	return c.check(ch)
}

func (c *ChannelKind) check(ch *domain.Channel) Result {
	if ch == nil {
		return Deny("channelResolveFailed", "the invocation has no channel")
	}
	for _, k := range c.allowed {
		if ch.Kind == k {
			return Allow()
		}
	}
	return DenyWithContext("channelKindDenied",
		fmt.Sprintf("this command can only run in %s channels", kindList(c.allowed)),
		map[string]any{"required": c.allowed, "actual": ch.Kind})
}

func kindList(kinds []domain.ChannelKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
