// errors.go — error kinds and the diagnostics sink.
//
// Three error families flow through here:
//   - scan/parse errors, reported immediately with a line (and token where one
//     exists) and accumulated into the HadError flag;
//   - resolve errors, same treatment as parse errors;
//   - runtime errors, carried as a *RuntimeError value that unwinds the
//     interpreter back to the driver, which reports it and sets
//     HadRuntimeError.
//
// Non-error non-local control flow (return/break/continue) never passes
// through the Reporter; it rides its own panic sentinels in interpreter.go so
// it can never be mistaken for a runtime error.
//
// Wire format (driver contract):
//
//	[line 3] Error at ')': Expect expression.
//	[Line 7] Operands must be numbers.
package fen

import (
	"fmt"
	"io"
)

// RuntimeError is a failure raised during evaluation. It carries the token the
// interpreter was looking at so the driver can report a line.
type RuntimeError struct {
	Token Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("[Line %d] %s", e.Token.Line, e.Msg)
}

// ParseError is the panic payload used inside the parser to unwind to the
// nearest synchronization point. It is reported before being thrown, so it
// never escapes the parser.
type ParseError struct {
	Token Token
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Msg)
}

// Reporter is the diagnostics sink shared by the scanner, parser, resolver and
// driver. It owns the had-error flags; the driver consults them to decide
// whether to execute and which exit code to use.
type Reporter struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// NewReporter builds a sink writing to out (stderr in the CLI).
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{Out: out}
}

// ErrorLine reports a compile-time error with no token context.
func (r *Reporter) ErrorLine(line int, msg string) {
	r.report(line, "", msg)
}

// ErrorToken reports a compile-time error at a specific token.
func (r *Reporter) ErrorToken(tok Token, msg string) {
	if tok.Type == EOF {
		r.report(tok.Line, " at end", msg)
	} else {
		r.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), msg)
	}
}

// Runtime reports a runtime error and sets HadRuntimeError.
func (r *Reporter) Runtime(err *RuntimeError) {
	fmt.Fprintf(r.Out, "[Line %d] %s\n", err.Token.Line, err.Msg)
	r.HadRuntimeError = true
}

// Reset clears the compile-time flag. The REPL calls this between lines so one
// bad input does not poison the session.
func (r *Reporter) Reset() {
	r.HadError = false
}

func (r *Reporter) report(line int, where, msg string) {
	fmt.Fprintf(r.Out, "[line %d] Error%s: %s\n", line, where, msg)
	r.HadError = true
}
