package token

import (
	"context"
	"errors"
)

// ErrNoToken is the sentinel returned by SingleParse when the positional
// cursor is already at the end of the stream.
var ErrNoToken = errors.New("no token available")

// Position is an opaque checkpoint of the stream cursor. Positions compare
// structurally and restoring one is an exact rewind.
type Position struct {
	cursor int
}

// Stream owns a mutable cursor over the positional tokens of one invocation.
// Flags and options are order-independent and queried without touching the
// cursor. A Stream must not be shared across concurrent command executions.
type Stream struct {
	positional []string
	flags      map[string]struct{}
	options    map[string][]string
	cursor     int
}

// NewStream builds a stream from tokenizer output. Option values for the
// same key keep their token order.
func NewStream(tokens []Token) *Stream {
	s := &Stream{
		flags:   make(map[string]struct{}),
		options: make(map[string][]string),
	}
	for _, t := range tokens {
		switch t.Kind {
		case KindPositional:
			s.positional = append(s.positional, t.Value)
		case KindFlag:
			s.flags[t.Key] = struct{}{}
		case KindOption:
			s.options[t.Key] = append(s.options[t.Key], t.Value)
		}
	}
	return s
}

// Reset moves the cursor to the start. Called once per command execution
// before parsing begins.
func (s *Stream) Reset() {
	s.cursor = 0
}

// Finished reports whether no positional tokens remain.
func (s *Stream) Finished() bool {
	return s.cursor >= len(s.positional)
}

// Remaining returns the count of unconsumed positional tokens.
func (s *Stream) Remaining() int {
	return len(s.positional) - s.cursor
}

// Single consumes exactly one positional token. Returns false without
// advancing when the stream is finished.
func (s *Stream) Single() (string, bool) {
	if s.Finished() {
		return "", false
	}
	v := s.positional[s.cursor]
	s.cursor++
	return v, true
}

// SingleMap consumes one positional token if the transform accepts it. When
// the transform rejects the token the cursor does not advance.
func (s *Stream) SingleMap(transform func(string) (any, bool)) (any, bool) {
	if s.Finished() {
		return nil, false
	}
	v, ok := transform(s.positional[s.cursor])
	if !ok {
		return nil, false
	}
	s.cursor++
	return v, true
}

// SingleParse consumes one positional token through a possibly-failing
// transform. The cursor advances only on overall success. An exhausted
// stream yields ErrNoToken; a transform failure propagates unchanged.
func (s *Stream) SingleParse(ctx context.Context, transform func(context.Context, string) (any, error)) (any, error) {
	if s.Finished() {
		return nil, ErrNoToken
	}
	v, err := transform(ctx, s.positional[s.cursor])
	if err != nil {
		return nil, err
	}
	s.cursor++
	return v, nil
}

// Peek returns the next positional token without consuming it.
func (s *Stream) Peek() (string, bool) {
	if s.Finished() {
		return "", false
	}
	return s.positional[s.cursor], true
}

// Many consumes all remaining positional tokens as an ordered sequence.
// Returns nil when none remain.
func (s *Stream) Many() []string {
	if s.Finished() {
		return nil
	}
	rest := s.positional[s.cursor:]
	s.cursor = len(s.positional)
	out := make([]string, len(rest))
	copy(out, rest)
	return out
}

// Flag reports whether any of the named boolean flags is present. The
// lookup never touches the positional cursor.
func (s *Stream) Flag(names ...string) bool {
	for _, n := range names {
		if _, ok := s.flags[n]; ok {
			return true
		}
	}
	return false
}

// Option returns the last value bound to any of the given option names.
func (s *Stream) Option(names ...string) (string, bool) {
	last := ""
	found := false
	for _, n := range names {
		if vs := s.options[n]; len(vs) > 0 {
			last = vs[len(vs)-1]
			found = true
		}
	}
	return last, found
}

// Options returns all values bound to any of the given option names, in
// token order per name.
func (s *Stream) Options(names ...string) []string {
	var out []string
	for _, n := range names {
		out = append(out, s.options[n]...)
	}
	return out
}

// Save captures the current cursor as an opaque checkpoint.
func (s *Stream) Save() Position {
	return Position{cursor: s.cursor}
}

// Restore rewinds the cursor to exactly the saved position.
func (s *Stream) Restore(p Position) {
	s.cursor = p.cursor
}
