// Package token models a tokenized command invocation: an ordered sequence
// of positional parameters plus order-independent flags and key/value
// options, with a mutable cursor that supports exact checkpoint/restore.
package token

// Kind classifies a token.
type Kind int

const (
	KindPositional Kind = iota
	KindFlag
	KindOption
)

// Token is one unit produced by tokenizing a raw invocation. Tokens are
// immutable once produced; the stream only ever moves its cursor.
type Token struct {
	Kind  Kind
	Key   string // flag or option name, empty for positionals
	Value string // positional text or option value
}

// NewPositional returns a positional parameter token.
func NewPositional(value string) Token {
	return Token{Kind: KindPositional, Value: value}
}

// NewFlag returns a boolean flag token.
func NewFlag(key string) Token {
	return Token{Kind: KindFlag, Key: key}
}

// NewOption returns a key/value option token.
func NewOption(key, value string) Token {
	return Token{Kind: KindOption, Key: key, Value: value}
}
