package main

import (
	"testing"

	"github.com/fatih/color"
)

func TestLineDiff(t *testing.T) {
	defer func(v bool) { color.NoColor = v }(color.NoColor)
	color.NoColor = true

	tests := []struct {
		from, to, want string
	}{
		{"a\nb\n", "a\nb\n", ""},
		{"a\nb\n", "a\nc\n", " a\n-b\n+c\n"},
		{"a\n", "a\nb\n", " a\n+b\n"},
		{"a\n\nb\n", "b\n", "-a\n-\n b\n"},
	}
	for _, tt := range tests {
		if got := lineDiff(tt.from, tt.to); got != tt.want {
			t.Errorf("lineDiff(%q, %q) = %q, want %q", tt.from, tt.to, got, tt.want)
		}
	}
}
