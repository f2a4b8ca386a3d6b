package args

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/herald-tools/herald/internal/domain"
	"github.com/herald-tools/herald/internal/token"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func testArgs(t *testing.T, tokens ...token.Token) *Args {
	t.Helper()
	inv := &Context{
		Message: &domain.Message{
			ID:      "m1",
			Author:  domain.User{ID: "u1", Name: "tester"},
			Channel: &domain.Channel{ID: "c1", Name: "general", Kind: domain.ChannelText},
		},
		Command: &domain.Command{Name: "test"},
	}
	return New(token.NewStream(tokens), testRegistry(t), inv)
}

func positionals(values ...string) []token.Token {
	out := make([]token.Token, len(values))
	for i, v := range values {
		out[i] = token.NewPositional(v)
	}
	return out
}

func TestArgs_PickScenario(t *testing.T) {
	a := testArgs(t,
		token.NewPositional("5"),
		token.NewFlag("verbose"),
		token.NewOption("tag", "a"),
		token.NewOption("tag", "b"),
	)

	v, err := a.Pick(context.Background(), "integer")
	require.NoError(t, err)
	require.Equal(t, int64(5), v)
	require.True(t, a.Finished(), "one positional token must be consumed")

	require.True(t, a.GetFlags("verbose"))
	require.Equal(t, []string{"a", "b"}, a.GetOptions("tag"))

	last, ok := a.GetOption("tag")
	require.True(t, ok)
	require.Equal(t, "b", last)
}

func TestArgs_PickEmptyStream(t *testing.T) {
	a := testArgs(t)

	res := a.PickResult(context.Background(), "integer")
	require.False(t, res.OK())
	require.Equal(t, "argumentMissing", res.Err.ID())
	require.True(t, a.Finished())
}

func TestArgs_PickResolverFailureDoesNotConsume(t *testing.T) {
	a := testArgs(t, positionals("five", "6")...)

	res := a.PickResult(context.Background(), "integer", Named("count"))
	require.False(t, res.OK())
	require.Equal(t, "integerInvalid", res.Err.ID())
	require.Equal(t, "count", res.Err.Parameter)
	require.Equal(t, "five", res.Err.Raw)

	// The failing token is still there.
	raw, ok := a.Next()
	require.True(t, ok)
	require.Equal(t, "five", raw)
}

func TestArgs_UnknownArgumentType(t *testing.T) {
	a := testArgs(t, positionals("x")...)

	res := a.PickResult(context.Background(), "nonsense")
	require.False(t, res.OK())
	require.Equal(t, "argumentUnknownType", res.Err.ID())
	require.True(t, res.Err.IsConfiguration())
}

func TestArgs_AdHocResolver(t *testing.T) {
	a := testArgs(t, positionals("LOUD")...)

	length := func(_ context.Context, _ *Context, raw string, _ Options) (any, error) {
		return len(raw), nil
	}
	v, err := a.PickWith(context.Background(), length)
	require.NoError(t, err)
	require.Equal(t, 4, v)
}

func TestArgs_Rest(t *testing.T) {
	t.Run("joins remaining tokens", func(t *testing.T) {
		a := testArgs(t, positionals("hello", "wide", "world")...)
		a.Next()

		v, err := a.Rest(context.Background(), "string")
		require.NoError(t, err)
		require.Equal(t, "wide world", v)
		require.True(t, a.Finished())
	})

	t.Run("exhausted stream errors", func(t *testing.T) {
		a := testArgs(t)
		res := a.RestResult(context.Background(), "string")
		require.False(t, res.OK())
		require.Equal(t, "argumentMissing", res.Err.ID())
	})

	t.Run("failure restores consumed tokens", func(t *testing.T) {
		a := testArgs(t, positionals("not", "a", "number")...)

		res := a.RestResult(context.Background(), "integer")
		require.False(t, res.OK())

		// A subsequent pick sees the same first remaining token as if the
		// rest had never run.
		raw, ok := a.Next()
		require.True(t, ok)
		require.Equal(t, "not", raw)
	})
}

func TestArgs_Repeat(t *testing.T) {
	t.Run("unbounded collects everything", func(t *testing.T) {
		a := testArgs(t, positionals("a", "b", "c")...)

		vs, err := a.Repeat(context.Background(), "string")
		require.NoError(t, err)
		if diff := cmp.Diff([]any{"a", "b", "c"}, vs); diff != "" {
			t.Fatalf("collected values mismatch (-want +got):\n%s", diff)
		}
		require.True(t, a.Finished())
	})

	t.Run("times bound is never exceeded", func(t *testing.T) {
		a := testArgs(t, positionals("1", "2", "3", "4")...)

		vs, err := a.Repeat(context.Background(), "integer", Times(2))
		require.NoError(t, err)
		require.Len(t, vs, 2)
		raw, _ := a.Next()
		require.Equal(t, "3", raw)
	})

	t.Run("later failure stops silently with fewer values", func(t *testing.T) {
		a := testArgs(t, positionals("1", "2", "x", "4")...)

		vs, err := a.Repeat(context.Background(), "integer", Times(4))
		require.NoError(t, err)
		require.Equal(t, []any{int64(1), int64(2)}, vs)

		// The failing token was not consumed.
		raw, _ := a.Next()
		require.Equal(t, "x", raw)
	})

	t.Run("first attempt failure errors", func(t *testing.T) {
		a := testArgs(t, positionals("x", "2")...)

		res := a.RepeatResult(context.Background(), "integer", Named("ids"))
		require.False(t, res.OK())
		require.Equal(t, "argumentRepeatEmpty", res.Err.ID())
		require.Equal(t, "ids", res.Err.Parameter)
	})

	t.Run("exhausted stream errors immediately", func(t *testing.T) {
		a := testArgs(t)

		res := a.RepeatResult(context.Background(), "integer")
		require.False(t, res.OK())
		require.Equal(t, "argumentMissing", res.Err.ID())
	})

	t.Run("zero times means unbounded", func(t *testing.T) {
		a := testArgs(t, positionals("1", "2", "3")...)

		vs, err := a.Repeat(context.Background(), "integer", Times(0))
		require.NoError(t, err)
		require.Len(t, vs, 3)
	})
}

func TestArgs_Peek(t *testing.T) {
	t.Run("never advances on success", func(t *testing.T) {
		a := testArgs(t, positionals("7", "8")...)

		v, err := a.Peek(context.Background(), "integer")
		require.NoError(t, err)
		require.Equal(t, int64(7), v)

		raw, _ := a.Next()
		require.Equal(t, "7", raw)
	})

	t.Run("never advances on failure", func(t *testing.T) {
		a := testArgs(t, positionals("oops")...)

		_, err := a.Peek(context.Background(), "integer")
		require.Error(t, err)

		raw, _ := a.Next()
		require.Equal(t, "oops", raw)
	})

	t.Run("alternative extraction runs under the checkpoint", func(t *testing.T) {
		a := testArgs(t, positionals("a", "b", "c")...)

		res := a.PeekResultOf(func() Result {
			return a.RepeatResult(context.Background(), "string")
		})
		require.True(t, res.OK())
		require.Len(t, res.Value.([]any), 3)

		// The nested repeat consumed everything, but peek restored it all.
		require.False(t, a.Finished())
		raw, _ := a.Next()
		require.Equal(t, "a", raw)
	})
}

func TestArgs_NextMap(t *testing.T) {
	a := testArgs(t, positionals("word")...)

	_, ok := a.NextMap(func(raw string) (any, bool) {
		return nil, false
	})
	require.False(t, ok)
	require.False(t, a.Finished(), "rejected token must stay in the stream")

	v, ok := a.NextMap(func(raw string) (any, bool) {
		return raw + "!", true
	})
	require.True(t, ok)
	require.Equal(t, "word!", v)
	require.True(t, a.Finished())
}

func TestArgs_SaveRestore(t *testing.T) {
	a := testArgs(t, positionals("a", "b", "c")...)

	a.Save()
	finishedBefore := a.Finished()

	a.Next()
	a.Next()
	a.Restore()

	require.Equal(t, finishedBefore, a.Finished())
	raw, _ := a.Next()
	require.Equal(t, "a", raw, "restore must rewind to the exact position")
}

func TestArgs_RestoreEmptyStackIsNoOp(t *testing.T) {
	a := testArgs(t, positionals("a", "b")...)
	a.Next()

	a.Restore()

	raw, _ := a.Next()
	require.Equal(t, "b", raw)
}

func TestArgs_Start(t *testing.T) {
	a := testArgs(t, positionals("a", "b")...)
	a.Save()
	a.Next()
	a.Next()

	a.Start()

	require.False(t, a.Finished())
	raw, _ := a.Next()
	require.Equal(t, "a", raw)

	// Start cleared the checkpoint stack, so Restore is a no-op.
	a.Restore()
	raw, _ = a.Next()
	require.Equal(t, "b", raw)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	noop := func(_ context.Context, _ *Context, raw string, _ Options) (any, error) {
		return raw, nil
	}

	require.NoError(t, r.Register("custom", noop))
	err := r.Register("custom", noop)
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	require.True(t, r.Has("custom"))
}

func TestResolvers_Builtins(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		typ     string
		raw     string
		opts    []Option
		want    any
		wantErr string
	}{
		{name: "integer", typ: "integer", raw: "42", want: int64(42)},
		{name: "integer below minimum", typ: "integer", raw: "2", opts: []Option{Minimum(5)}, wantErr: "integerTooSmall"},
		{name: "integer above maximum", typ: "integer", raw: "9", opts: []Option{Maximum(5)}, wantErr: "integerTooLarge"},
		{name: "number", typ: "number", raw: "3.5", want: 3.5},
		{name: "number invalid", typ: "number", raw: "pi", wantErr: "numberInvalid"},
		{name: "boolean yes", typ: "boolean", raw: "yes", want: true},
		{name: "boolean off", typ: "boolean", raw: "off", want: false},
		{name: "boolean invalid", typ: "boolean", raw: "maybe", wantErr: "booleanInvalid"},
		{name: "duration", typ: "duration", raw: "90m", want: 90 * time.Minute},
		{name: "duration invalid", typ: "duration", raw: "soon", wantErr: "durationInvalid"},
		{name: "enum match is canonical", typ: "enum", raw: "RED", opts: []Option{Choices("red", "blue")}, want: "red"},
		{name: "enum miss", typ: "enum", raw: "green", opts: []Option{Choices("red", "blue")}, wantErr: "enumInvalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testArgs(t, positionals(tt.raw)...)
			res := a.PickResult(ctx, tt.typ, tt.opts...)
			if tt.wantErr != "" {
				require.False(t, res.OK())
				require.Equal(t, tt.wantErr, res.Err.ID())
				return
			}
			require.True(t, res.OK(), "unexpected error: %v", res.Err)
			switch want := tt.want.(type) {
			case float64:
				require.InDelta(t, want, res.Value, 1e-9)
			default:
				require.EqualValues(t, tt.want, res.Value)
			}
		})
	}
}

type staticChannelResolver struct {
	channels map[string]*domain.Channel
}

func (r staticChannelResolver) ResolveChannel(_ context.Context, id string) (*domain.Channel, error) {
	if ch, ok := r.channels[id]; ok {
		return ch, nil
	}
	return nil, errors.New("channel not found")
}

func TestResolvers_ChannelMention(t *testing.T) {
	inv := &Context{
		Channels: staticChannelResolver{channels: map[string]*domain.Channel{
			"123": {ID: "123", Name: "general", Kind: domain.ChannelText},
		}},
	}
	a := New(token.NewStream(positionals("<#123>")), testRegistry(t), inv)

	v, err := a.Pick(context.Background(), "channel")
	require.NoError(t, err)
	ch := v.(*domain.Channel)
	require.Equal(t, "general", ch.Name)
}

func TestResolvers_ChannelUnknown(t *testing.T) {
	inv := &Context{Channels: staticChannelResolver{channels: map[string]*domain.Channel{}}}
	a := New(token.NewStream(positionals("<#999>")), testRegistry(t), inv)

	res := a.PickResult(context.Background(), "channel")
	require.False(t, res.OK())
	require.Equal(t, "channelInvalid", res.Err.ID())
}
