package syntax

import (
	"fmt"
	"strings"
)

// Dump renders a green tree one element per line, indented by depth, with
// absolute offsets and quoted token text. name maps kinds to display names.
//
//	ROOT@0..12
//	  PARAGRAPH@0..12
//	    ENTRY@0..12
//	      KEY@0..6 "Source"
func Dump(e GreenElement, name func(Kind) string) string {
	var b strings.Builder
	dump(&b, e, name, 0, 0)
	return b.String()
}

func dump(b *strings.Builder, e GreenElement, name func(Kind) string, depth, off int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "%s@%d..%d", name(e.Kind()), off, off+e.Width())
	switch e := e.(type) {
	case *GreenToken:
		fmt.Fprintf(b, " %q\n", e.text)
	case *GreenNode:
		b.WriteByte('\n')
		for _, c := range e.children {
			dump(b, c, name, depth+1, off)
			off += c.Width()
		}
	}
}
