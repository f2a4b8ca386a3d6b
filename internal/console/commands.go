package console

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/herald-tools/herald/internal/args"
	"github.com/herald-tools/herald/internal/domain"
	"github.com/herald-tools/herald/internal/handler"
	"github.com/herald-tools/herald/internal/precond"
	"github.com/herald-tools/herald/internal/ui/style"
	"github.com/herald-tools/herald/internal/usage"
)

// registerCommands installs the built-in command set. Every registration is
// static, so failures here are programmer mistakes and panic.
func registerCommands(c *Console) {
	commands := []*Command{
		helpCommand(c),
		echoCommand(c),
		addCommand(c),
		rollCommand(c),
		waitCommand(c),
		joinCommand(c),
		whereCommand(c),
		chooseCommand(c),
		pressCommand(c),
		menuCommand(c),
		announceCommand(c),
	}
	for _, cmd := range commands {
		if err := c.RegisterCommand(cmd); err != nil {
			panic(err)
		}
	}
}

func helpCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "help",
			Description: "list the available commands",
		},
		Run: func(_ context.Context, _ *args.Args) error {
			for _, name := range c.CommandNames() {
				cmd := c.commands[name]
				c.printf("  %s  %s", style.Bold(fmt.Sprintf("%-10s", name)), style.Subtle(cmd.Def.Description))
			}
			return nil
		},
	}
}

func echoCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:          "echo",
			Description:   "repeat the given text (text channels only)",
			Preconditions: []string{"textOnly"},
		},
		Run: func(ctx context.Context, a *args.Args) error {
			text, err := a.Rest(ctx, "string", args.Named("text"))
			if err != nil {
				return err
			}
			out := text.(string)
			if a.GetFlags("upper", "u") {
				out = strings.ToUpper(out)
			}
			c.printf("%s", out)
			return nil
		},
	}
}

func addCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "add",
			Description: "sum whole numbers",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			values, err := a.Repeat(ctx, "integer", args.Named("number"))
			if err != nil {
				return err
			}
			var sum int64
			for _, v := range values {
				sum += v.(int64)
			}
			if a.GetFlags("verbose", "v") {
				parts := make([]string, len(values))
				for i, v := range values {
					parts[i] = fmt.Sprintf("%d", v.(int64))
				}
				c.printf("%s = %d", strings.Join(parts, " + "), sum)
				return nil
			}
			c.printf("%d", sum)
			return nil
		},
	}
}

func rollCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "roll",
			Description: "roll a die with the given number of sides",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			sides := int64(6)
			res := a.PickResult(ctx, "integer",
				args.Named("sides"), args.Minimum(2), args.Maximum(1000))
			switch {
			case res.OK():
				sides = res.Value.(int64)
			case res.Err.Kind != usage.ErrMissingArgument:
				// An invalid value is a real mistake; only absence falls
				// back to the default.
				return res.Err
			}

			times := 1
			if raw, ok := a.GetOption("times", "n"); ok {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 || n > 10 {
					return usage.ParseFailed("integerInvalid",
						fmt.Sprintf("'%s' is not a roll count between 1 and 10", raw), "times", raw)
				}
				times = n
			}

			for i := 0; i < times; i++ {
				c.printf("rolled %s", style.Bold(fmt.Sprintf("%d", 1+rand.Int64N(sides))))
			}
			return nil
		},
	}
}

func waitCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "wait",
			Description: "pause for a duration (e.g. 1s, 250ms)",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			v, err := a.Pick(ctx, "duration", args.Named("duration"))
			if err != nil {
				return err
			}
			d := v.(time.Duration)

			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
				c.printf("waited %s", d)
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	}
}

func joinCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "join",
			Description: "switch the session to another channel",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			v, err := a.Pick(ctx, "channel", args.Named("channel"))
			if err != nil {
				return err
			}
			ch := v.(*domain.Channel)
			c.current = ch
			c.printf("joined %s (%s)", style.Bold(ch.Name), ch.Kind)
			return nil
		},
	}
}

func whereCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "where",
			Description: "show the current channel",
		},
		Run: func(_ context.Context, _ *args.Args) error {
			c.printf("%s (%s)", style.Bold(c.current.Name), c.current.Kind)
			return nil
		},
	}
}

func chooseCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "choose",
			Description: "pick randomly among options, with an optional leading count",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			count := 1
			if v, ok := a.NextMap(func(raw string) (any, bool) {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 {
					return nil, false
				}
				return n, true
			}); ok {
				count = v.(int)
			}

			values, err := a.Repeat(ctx, "string", args.Named("option"))
			if err != nil {
				return err
			}
			options := make([]string, len(values))
			for i, v := range values {
				options[i] = v.(string)
			}

			for i := 0; i < count; i++ {
				c.printf("%s", options[rand.IntN(len(options))])
			}
			return nil
		},
	}
}

func pressCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "press",
			Description: "emit a button event to the registered handlers",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			customID, ok := a.Next()
			if !ok {
				return usage.MissingArgument("customID")
			}
			report := c.handlers.Dispatch(ctx, &domain.Interaction{
				ID:        uuid.NewString(),
				User:      c.user,
				ChannelID: c.current.ID,
				Component: domain.ComponentButton,
				CustomID:  customID,
			})
			c.printf("%s", style.Subtle(fmt.Sprintf(
				"dispatch %s: %d matched, %d claimed, %d failed",
				report.DispatchID, report.Matched, report.Claimed, report.Failed)))
			return nil
		},
	}
}

func menuCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:        "menu",
			Description: "emit a select-menu event with the chosen values",
		},
		Run: func(ctx context.Context, a *args.Args) error {
			customID, ok := a.Next()
			if !ok {
				return usage.MissingArgument("customID")
			}
			values, err := a.Repeat(ctx, "string", args.Named("value"))
			if err != nil {
				return err
			}
			chosen := make([]string, len(values))
			for i, v := range values {
				chosen[i] = v.(string)
			}
			report := c.handlers.Dispatch(ctx, &domain.Interaction{
				ID:        uuid.NewString(),
				User:      c.user,
				ChannelID: c.current.ID,
				Component: domain.ComponentSelectMenu,
				CustomID:  customID,
				Values:    chosen,
			})
			c.printf("%s", style.Subtle(fmt.Sprintf(
				"dispatch %s: %d matched, %d claimed, %d failed",
				report.DispatchID, report.Matched, report.Claimed, report.Failed)))
			return nil
		},
	}
}

func announceCommand(c *Console) *Command {
	return &Command{
		Def: &domain.Command{
			Name:          "announce",
			Description:   "post an announcement (announcement channels only)",
			Preconditions: []string{"runIn"},
			PreconditionContext: domain.PreconditionContext{
				precond.RunInKey: &precond.RunInConfig{
					ByTransport: map[domain.Transport][]domain.ChannelKind{
						domain.TransportMessage: {domain.ChannelAnnouncement},
					},
				},
			},
		},
		Run: func(ctx context.Context, a *args.Args) error {
			text, err := a.Rest(ctx, "string", args.Named("text"))
			if err != nil {
				return err
			}
			c.printf("%s %s", style.Highlight("[announcement]"), text.(string))
			return nil
		},
	}
}

// registerHandlers installs the built-in component handlers: a confirm
// button, a select-menu reader, and an audit handler that claims every
// component event.
func registerHandlers(c *Console) {
	mustRegister := func(capability handler.Capability, h handler.Handler) {
		if _, err := c.handlers.Register(capability, h); err != nil {
			panic(err)
		}
	}

	mustRegister(handler.CapabilityButton, handler.Handler{
		Name: "confirm",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) {
			action, found := strings.CutPrefix(in.CustomID, "confirm:")
			if !found {
				return nil, false
			}
			return action, true
		},
		Run: func(_ context.Context, _ *domain.Interaction, payload any) error {
			c.printf("confirmed %s", style.Bold(payload.(string)))
			return nil
		},
	})

	mustRegister(handler.CapabilitySelectMenu, handler.Handler{
		Name: "picker",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) {
			if len(in.Values) == 0 {
				return nil, false
			}
			return in.Values, true
		},
		Run: func(_ context.Context, _ *domain.Interaction, payload any) error {
			c.printf("selected %s", strings.Join(payload.([]string), ", "))
			return nil
		},
	})

	mustRegister(handler.CapabilityAnyComponent, handler.Handler{
		Name: "audit",
		Parse: func(_ context.Context, in *domain.Interaction) (any, bool) {
			return nil, true
		},
		Run: func(_ context.Context, in *domain.Interaction, _ any) error {
			c.log.Info("component event: kind=%d customID=%s user=%s",
				in.Component, in.CustomID, in.User.ID)
			return nil
		},
	})
}
