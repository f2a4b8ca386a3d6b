package console

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"echo", "", 4},
		{"", "echo", 4},
		{"echo", "echo", 0},
		{"echo", "ECHO", 0},
		{"echo", "ecoh", 2},
		{"roll", "role", 2},
		{"add", "announce", 7},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, levenshtein(tt.a, tt.b), "levenshtein(%q, %q)", tt.a, tt.b)
	}
}

func TestFindSimilar(t *testing.T) {
	names := []string{"add", "announce", "choose", "echo", "help", "join", "menu", "press", "roll", "wait", "where"}

	t.Run("close match first", func(t *testing.T) {
		got := findSimilar("ecoh", names, 3)
		require.NotEmpty(t, got)
		require.Equal(t, "echo", got[0])
	})

	t.Run("exact match is not suggested", func(t *testing.T) {
		require.NotContains(t, findSimilar("echo", names, 3), "echo")
	})

	t.Run("nothing within distance", func(t *testing.T) {
		require.Empty(t, findSimilar("supercalifragilistic", names, 3))
	})

	t.Run("respects max results", func(t *testing.T) {
		got := findSimilar("hel", names, 1)
		require.Len(t, got, 1)
	})
}
