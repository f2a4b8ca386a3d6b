package args

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/herald-tools/herald/internal/usage"
)

// RegisterDefaults populates a registry with the built-in argument types.
// The surrounding framework calls this once at startup; additional types are
// registered through the same interface.
func RegisterDefaults(r *Registry) {
	r.MustRegister("string", resolveString)
	r.MustRegister("integer", resolveInteger)
	r.MustRegister("number", resolveNumber)
	r.MustRegister("boolean", resolveBoolean)
	r.MustRegister("duration", resolveDuration)
	r.MustRegister("enum", resolveEnum)
	r.MustRegister("channel", resolveChannel)
	r.MustRegister("user", resolveUser)
}

func resolveString(_ context.Context, _ *Context, raw string, _ Options) (any, error) {
	return raw, nil
}

func resolveInteger(_ context.Context, _ *Context, raw string, opts Options) (any, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, usage.ParseFailed("integerInvalid",
			fmt.Sprintf("'%s' is not a whole number", raw), "", raw)
	}
	if opts.Minimum != nil && float64(n) < *opts.Minimum {
		return nil, usage.ParseFailed("integerTooSmall",
			fmt.Sprintf("%d is smaller than the minimum of %v", n, *opts.Minimum), "", raw)
	}
	if opts.Maximum != nil && float64(n) > *opts.Maximum {
		return nil, usage.ParseFailed("integerTooLarge",
			fmt.Sprintf("%d is larger than the maximum of %v", n, *opts.Maximum), "", raw)
	}
	return n, nil
}

func resolveNumber(_ context.Context, _ *Context, raw string, opts Options) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, usage.ParseFailed("numberInvalid",
			fmt.Sprintf("'%s' is not a number", raw), "", raw)
	}
	if opts.Minimum != nil && f < *opts.Minimum {
		return nil, usage.ParseFailed("numberTooSmall",
			fmt.Sprintf("%v is smaller than the minimum of %v", f, *opts.Minimum), "", raw)
	}
	if opts.Maximum != nil && f > *opts.Maximum {
		return nil, usage.ParseFailed("numberTooLarge",
			fmt.Sprintf("%v is larger than the maximum of %v", f, *opts.Maximum), "", raw)
	}
	return f, nil
}

func resolveBoolean(_ context.Context, _ *Context, raw string, _ Options) (any, error) {
	switch strings.ToLower(raw) {
	case "true", "yes", "y", "on", "1":
		return true, nil
	case "false", "no", "n", "off", "0":
		return false, nil
	default:
		return nil, usage.ParseFailed("booleanInvalid",
			fmt.Sprintf("'%s' is not a yes/no value", raw), "", raw)
	}
}

func resolveDuration(_ context.Context, _ *Context, raw string, _ Options) (any, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, usage.ParseFailed("durationInvalid",
			fmt.Sprintf("'%s' is not a duration (e.g. 1h30m)", raw), "", raw)
	}
	return d, nil
}

func resolveEnum(_ context.Context, _ *Context, raw string, opts Options) (any, error) {
	for _, c := range opts.Choices {
		if strings.EqualFold(raw, c) {
			return c, nil
		}
	}
	return nil, usage.ParseFailed("enumInvalid",
		fmt.Sprintf("'%s' is not one of: %s", raw, strings.Join(opts.Choices, ", ")), "", raw)
}

// resolveChannel accepts a <#id> mention or a bare channel ID and resolves
// it through the invocation's channel resolver.
func resolveChannel(ctx context.Context, inv *Context, raw string, _ Options) (any, error) {
	if inv == nil || inv.Channels == nil {
		return nil, usage.ParseFailed("channelUnresolvable",
			"no channel resolver is available for this invocation", "", raw)
	}
	id := raw
	if strings.HasPrefix(raw, "<#") && strings.HasSuffix(raw, ">") {
		id = raw[2 : len(raw)-1]
	}
	ch, err := inv.Channels.ResolveChannel(ctx, id)
	if err != nil {
		return nil, usage.ParseFailed("channelInvalid",
			fmt.Sprintf("'%s' does not refer to a channel", raw), "", raw)
	}
	return ch, nil
}

// resolveUser accepts a <@id> or <@!id> mention, or a bare user ID.
func resolveUser(ctx context.Context, inv *Context, raw string, _ Options) (any, error) {
	if inv == nil || inv.Users == nil {
		return nil, usage.ParseFailed("userUnresolvable",
			"no user resolver is available for this invocation", "", raw)
	}
	id := raw
	if strings.HasPrefix(raw, "<@") && strings.HasSuffix(raw, ">") {
		id = strings.TrimPrefix(raw[2:len(raw)-1], "!")
	}
	u, err := inv.Users.ResolveUser(ctx, id)
	if err != nil {
		return nil, usage.ParseFailed("userInvalid",
			fmt.Sprintf("'%s' does not refer to a user", raw), "", raw)
	}
	return u, nil
}
