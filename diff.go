package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff renders a line-based diff of from and to, unified-style: removed
// lines prefixed with "-" in red, added lines with "+" in green, and
// unchanged lines with a space. It returns "" when both are equal.
func lineDiff(from, to string) string {
	if from == to {
		return ""
	}
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		prefix, paint := " ", fmt.Sprintf
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix, paint = "+", color.GreenString
		case diffpatch.DiffDelete:
			prefix, paint = "-", color.RedString
		}
		for _, l := range splitLines(d.Text) {
			out.WriteString(paint("%s", prefix+l))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// splitLines splits text into lines without their terminator.
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
