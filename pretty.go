// pretty.go — caret-snippet rendering for interactive diagnostics.
//
// Given the source text and a 1-based error line, Snippet renders the
// offending line with up to one line of context on each side and a caret row:
//
//	   2 | let x = (1 + 2
//	   3 |              );
//	     | ^
//	   4 | print(x);
//
// The REPL prints this after a runtime error's one-line diagnostic; file mode stays
// on the plain format. Output is plain text (no ANSI escapes) so it is safe
// for logs as well as terminals.
package fen

import (
	"fmt"
	"strings"
)

// Snippet renders a context window around line (1-based, clamped to the
// source). The caret is anchored at the start of the line: tokens do not carry
// columns, only lines.
func Snippet(src string, line int) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | ^\n")
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
