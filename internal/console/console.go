// Package console is a thin stand-in for the surrounding framework: it owns
// the command table, tokenizes raw input, drives the precondition chain, and
// hands each command body an argument facade. It exists so the pipeline can
// be exercised end to end from a terminal.
package console

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/herald-tools/herald/internal/args"
	"github.com/herald-tools/herald/internal/domain"
	"github.com/herald-tools/herald/internal/handler"
	"github.com/herald-tools/herald/internal/precond"
	"github.com/herald-tools/herald/internal/token"
	"github.com/herald-tools/herald/internal/usage"
)

const defaultSuggestionsCount = 3

// Command couples a definition with its body. The body receives the
// argument facade for this invocation.
type Command struct {
	Def *domain.Command
	Run func(ctx context.Context, a *args.Args) error
}

// Console hosts a command session: a fixed user, a current channel, the
// resolver registry, the precondition table, and the component-handler
// store.
type Console struct {
	out      io.Writer
	log      domain.Logger
	registry *args.Registry
	preconds map[string]precond.Precondition
	commands map[string]*Command
	handlers *handler.Store

	channels map[string]*domain.Channel
	current  *domain.Channel
	user     domain.User
}

// New builds a console session writing command output to out.
func New(out io.Writer, logger domain.Logger) *Console {
	c := &Console{
		out:      out,
		log:      logger,
		registry: args.NewRegistry(),
		preconds: make(map[string]precond.Precondition),
		commands: make(map[string]*Command),
		user:     domain.User{ID: "console", Name: "you"},
	}
	args.RegisterDefaults(c.registry)

	c.channels = map[string]*domain.Channel{
		"console":  {ID: "console", Name: "console", Kind: domain.ChannelText},
		"lounge":   {ID: "lounge", Name: "lounge", Kind: domain.ChannelVoice},
		"bulletin": {ID: "bulletin", Name: "bulletin", Kind: domain.ChannelAnnouncement},
	}
	c.current = c.channels["console"]

	c.preconds["textOnly"] = precond.NewChannelKind(c, domain.ChannelText, domain.ChannelThread)
	c.preconds["runIn"] = precond.NewRunIn(c)

	c.handlers = handler.NewStore(logger)
	registerHandlers(c)
	registerCommands(c)
	return c
}

// ResolveChannel implements domain.ChannelResolver over the session's known
// channels.
func (c *Console) ResolveChannel(_ context.Context, id string) (*domain.Channel, error) {
	if ch, ok := c.channels[id]; ok {
		return ch, nil
	}
	return nil, fmt.Errorf("no channel with id %q", id)
}

// RegisterCommand adds a command to the session table.
func (c *Console) RegisterCommand(cmd *Command) error {
	if cmd == nil || cmd.Def == nil || cmd.Def.Name == "" || cmd.Run == nil {
		return fmt.Errorf("command needs a named definition and a body")
	}
	if _, exists := c.commands[cmd.Def.Name]; exists {
		return fmt.Errorf("command %q already registered", cmd.Def.Name)
	}
	c.commands[cmd.Def.Name] = cmd
	return nil
}

// CommandNames returns the registered command names, sorted.
func (c *Console) CommandNames() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs one invocation line through the full pipeline: tokenize,
// look up the command, gate it through its precondition chain, then hand
// the body a fresh argument facade.
func (c *Console) Execute(ctx context.Context, line string) error {
	tokens := Tokenize(line)
	name, rest := splitCommand(tokens)
	if name == "" {
		return nil
	}

	cmd, ok := c.commands[name]
	if !ok {
		return usage.UnknownCommand(name, findSimilar(name, c.CommandNames(), defaultSuggestionsCount)...)
	}

	msg := &domain.Message{
		ID:      uuid.NewString(),
		Author:  c.user,
		Channel: c.current,
		Content: line,
	}

	chain, err := c.chainFor(cmd.Def)
	if err != nil {
		return err
	}
	if r := chain.MessageRun(msg, cmd.Def, cmd.Def.PreconditionContext); r.Denied() {
		c.log.Debug("command %s denied by %s", cmd.Def.Name, r.Identifier)
		return r.AsError()
	}

	a := args.New(token.NewStream(rest), c.registry, &args.Context{
		Message:  msg,
		Command:  cmd.Def,
		Channels: c,
	})
	return cmd.Run(ctx, a)
}

// chainFor resolves a command's declared precondition names. An unknown
// name is a configuration mistake by the command author.
func (c *Console) chainFor(def *domain.Command) (precond.Precondition, error) {
	resolved := make([]precond.Precondition, 0, len(def.Preconditions))
	for _, name := range def.Preconditions {
		p, ok := c.preconds[name]
		if !ok {
			return nil, fmt.Errorf("command %q declares unknown precondition %q", def.Name, name)
		}
		resolved = append(resolved, p)
	}
	return precond.Sequence(resolved...), nil
}

// splitCommand peels the first positional token off as the command name and
// returns everything else untouched.
func splitCommand(tokens []token.Token) (string, []token.Token) {
	for i, t := range tokens {
		if t.Kind == token.KindPositional {
			rest := make([]token.Token, 0, len(tokens)-1)
			rest = append(rest, tokens[:i]...)
			rest = append(rest, tokens[i+1:]...)
			return t.Value, rest
		}
	}
	return "", nil
}

func (c *Console) printf(format string, a ...any) {
	fmt.Fprintf(c.out, format+"\n", a...)
}
