package main

import (
	"reflect"
	"testing"
)

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFlags []string
		wantWords []string
	}{
		{
			name:      "empty",
			args:      []string{},
			wantFlags: nil,
			wantWords: nil,
		},
		{
			name:      "only binary flags",
			args:      []string{"--no-color", "--log-level=debug"},
			wantFlags: []string{"--no-color", "--log-level=debug"},
			wantWords: nil,
		},
		{
			name:      "only invocation",
			args:      []string{"add", "1", "2"},
			wantFlags: nil,
			wantWords: []string{"add", "1", "2"},
		},
		{
			name:      "binary flags before invocation",
			args:      []string{"--no-color", "roll", "20"},
			wantFlags: []string{"--no-color"},
			wantWords: []string{"roll", "20"},
		},
		{
			name:      "dashed words after the command stay in the invocation",
			args:      []string{"--log-level=info", "echo", "--upper", "hi"},
			wantFlags: []string{"--log-level=info"},
			wantWords: []string{"echo", "--upper", "hi"},
		},
		{
			name:      "short interactive flag",
			args:      []string{"-i"},
			wantFlags: []string{"-i"},
			wantWords: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotFlags, gotWords := splitArgs(tt.args)

			if !reflect.DeepEqual(gotFlags, tt.wantFlags) {
				t.Errorf("splitArgs() flags = %v, want %v", gotFlags, tt.wantFlags)
			}
			if !reflect.DeepEqual(gotWords, tt.wantWords) {
				t.Errorf("splitArgs() words = %v, want %v", gotWords, tt.wantWords)
			}
		})
	}
}

func TestParsedFlags(t *testing.T) {
	f := newParsedFlags([]string{"--no-color", "--log-level=debug", "-i"})

	if !f.Has("--no-color") {
		t.Error("Has(--no-color) = false, want true")
	}
	if !f.Has("-i") {
		t.Error("Has(-i) = false, want true")
	}
	if f.Has("--interactive") {
		t.Error("Has(--interactive) = true, want false")
	}

	if got := f.String("--log-level", "warn"); got != "debug" {
		t.Errorf("String(--log-level) = %q, want %q", got, "debug")
	}
	if got := f.String("--pager", "less"); got != "less" {
		t.Errorf("String(--pager) default = %q, want %q", got, "less")
	}
}
