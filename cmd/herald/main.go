package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/herald-tools/herald/internal/console"
	"github.com/herald-tools/herald/internal/log"
	"github.com/herald-tools/herald/internal/ui/style"
	"github.com/herald-tools/herald/internal/usage"
)

func main() {
	args := os.Args[1:]

	// Binary flags end at the first non-flag argument; everything from
	// there on is the invocation line, dashed words included, so command
	// flags like `echo --upper hi` reach the console untouched.
	binFlags, words := splitArgs(args)
	flags := newParsedFlags(binFlags)

	// Enable styling if stdout is a terminal and --no-color is not set
	enableColor := term.IsTerminal(int(os.Stdout.Fd())) && !flags.Has("--no-color")
	style.Init(enableColor)

	logger, err := log.New(flags.String("--log-level", "warn"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer func() { _ = logger.Close() }()

	c := console.New(os.Stdout, logger)
	ctx := context.Background()

	switch {
	case len(words) > 0:
		// One-shot: the remaining words form a single invocation line.
		exitOnError(c.Execute(ctx, strings.Join(words, " ")))
	case flags.Has("--interactive") || flags.Has("-i"):
		if err := runInteractive(ctx, logger); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	default:
		runREPL(ctx, c)
	}
}

// runREPL reads invocation lines from stdin until EOF. Errors are reported
// per line; only I/O failure ends the loop early.
func runREPL(ctx context.Context, c *console.Console) {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stdout, style.Subtle("herald> "))
		}
		if !scanner.Scan() {
			break
		}
		if err := c.Execute(ctx, scanner.Text()); err != nil {
			fmt.Fprintln(os.Stderr, style.Error(err.Error()))
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// exitOnError reports a one-shot failure and exits. Configuration mistakes
// (a command wired to an unknown argument type, for example) exit 2 to
// stand apart from ordinary input mistakes.
func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, style.Error(err.Error()))

	var ue *usage.Error
	if errors.As(err, &ue) && ue.IsConfiguration() {
		os.Exit(2)
	}
	os.Exit(1)
}

// splitArgs separates leading binary flags from the invocation line. The
// first non-flag argument starts the line; later dashed words stay in it.
func splitArgs(args []string) (flags, words []string) {
	for i, a := range args {
		if len(a) > 0 && a[0] != '-' {
			return flags, args[i:]
		}
		flags = append(flags, a)
	}
	return flags, nil
}

// parsedFlags provides typed access to binary-level flags.
type parsedFlags struct {
	raw []string
}

func newParsedFlags(flags []string) *parsedFlags {
	return &parsedFlags{raw: flags}
}

// Has returns true if the flag is present (for boolean flags).
func (f *parsedFlags) Has(name string) bool {
	for _, flag := range f.raw {
		if flag == name {
			return true
		}
	}
	return false
}

// String returns the value of a --flag=value style flag, or defaultVal if
// not present.
func (f *parsedFlags) String(name, defaultVal string) string {
	prefix := name + "="
	for _, flag := range f.raw {
		if strings.HasPrefix(flag, prefix) {
			return strings.TrimPrefix(flag, prefix)
		}
	}
	return defaultVal
}
