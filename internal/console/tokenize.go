package console

import (
	"strings"

	"github.com/herald-tools/herald/internal/token"
)

// Tokenize splits a raw invocation line into tokens. Double quotes group
// words into one positional; `--name` is a boolean flag; `--name=value` is
// a key/value option. A bare `--` ends flag recognition so later dashed
// words stay positional.
func Tokenize(line string) []token.Token {
	var out []token.Token
	literal := false

	for _, word := range splitWords(line) {
		switch {
		case word == "--" && !literal:
			literal = true
		case !literal && strings.HasPrefix(word, "--"):
			body := strings.TrimPrefix(word, "--")
			if body == "" {
				continue
			}
			if key, value, found := strings.Cut(body, "="); found {
				out = append(out, token.NewOption(key, value))
			} else {
				out = append(out, token.NewFlag(body))
			}
		default:
			out = append(out, token.NewPositional(word))
		}
	}
	return out
}

// splitWords splits on whitespace while keeping double-quoted runs intact.
// An unterminated quote swallows the remainder of the line.
func splitWords(line string) []string {
	var words []string
	var b strings.Builder
	inQuote := false
	started := false

	flush := func() {
		if started {
			words = append(words, b.String())
			b.Reset()
			started = false
		}
	}

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			flush()
		default:
			b.WriteRune(r)
			started = true
		}
	}
	flush()
	return words
}
