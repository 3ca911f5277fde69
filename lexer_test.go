package fen

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scan runs the lexer over src, returning the tokens and any diagnostics.
func scan(t *testing.T, src string) ([]Token, string) {
	t.Helper()
	var errOut strings.Builder
	rep := NewReporter(&errOut)
	tokens := NewLexer(src, rep).ScanTokens()
	return tokens, errOut.String()
}

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens, errs := scan(t, "(){},.-+;*/ ! != = == < <= > >=")
	if errs != "" {
		t.Fatalf("unexpected diagnostics: %s", errs)
	}
	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, SLASH,
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL, LESS, LESS_EQUAL,
		GREATER, GREATER_EQUAL, EOF,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	tokens, _ := scan(t, "and break class continue else false for fun if let nil or return super static this true while foo _bar x1")
	want := []TokenType{
		AND, BREAK, CLASS, CONTINUE, ELSE, FALSE, FOR, FUN, IF, LET, NIL,
		OR, RETURN, SUPER, STATIC, THIS, TRUE, WHILE,
		IDENTIFIER, IDENTIFIER, IDENTIFIER, EOF,
	}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

// `print` is not reserved: it scans as an identifier and resolves to the
// native function at run time.
func TestScanPrintIsAnIdentifier(t *testing.T) {
	tokens, _ := scan(t, "print")
	if tokens[0].Type != IDENTIFIER || tokens[0].Lexeme != "print" {
		t.Fatalf("want IDENTIFIER 'print', got %v %q", tokens[0].Type, tokens[0].Lexeme)
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"123", 123},
		{"1.5", 1.5},
		{"10.25", 10.25},
	}
	for _, tc := range cases {
		tokens, errs := scan(t, tc.src)
		if errs != "" {
			t.Fatalf("%q: unexpected diagnostics: %s", tc.src, errs)
		}
		if tokens[0].Type != NUMBER || tokens[0].Literal.(float64) != tc.want {
			t.Fatalf("%q: want NUMBER %v, got %v %v", tc.src, tc.want, tokens[0].Type, tokens[0].Literal)
		}
	}
}

// A bare trailing dot is not part of the number: `1.` is NUMBER then DOT.
func TestScanNumberTrailingDot(t *testing.T) {
	tokens, _ := scan(t, "1.")
	want := []TokenType{NUMBER, DOT, EOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestScanStringLiteral(t *testing.T) {
	tokens, errs := scan(t, `"hello world"`)
	if errs != "" {
		t.Fatalf("unexpected diagnostics: %s", errs)
	}
	if tokens[0].Type != STRING || tokens[0].Literal.(string) != "hello world" {
		t.Fatalf("want STRING hello world, got %v %v", tokens[0].Type, tokens[0].Literal)
	}
}

func TestScanStringSpansNewlines(t *testing.T) {
	tokens, errs := scan(t, "\"a\nb\"\nx")
	if errs != "" {
		t.Fatalf("unexpected diagnostics: %s", errs)
	}
	if tokens[0].Literal.(string) != "a\nb" {
		t.Fatalf("want literal a\\nb, got %q", tokens[0].Literal)
	}
	// The identifier after the string sits on line 3.
	if tokens[1].Type != IDENTIFIER || tokens[1].Line != 3 {
		t.Fatalf("want IDENTIFIER on line 3, got %v on line %d", tokens[1].Type, tokens[1].Line)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	tokens, errs := scan(t, "\"oops\nstill open")
	if !strings.Contains(errs, "Unterminated string.") {
		t.Fatalf("want unterminated-string diagnostic, got %q", errs)
	}
	// No STRING token is emitted; EOF still closes the stream.
	for _, tok := range tokens {
		if tok.Type == STRING {
			t.Fatalf("unterminated string must not produce a token")
		}
	}
	if tokens[len(tokens)-1].Type != EOF {
		t.Fatalf("stream must end in EOF")
	}
}

func TestScanUnexpectedCharacterContinues(t *testing.T) {
	tokens, errs := scan(t, "let x @ 1;")
	if !strings.Contains(errs, "Unexpected character.") {
		t.Fatalf("want unexpected-character diagnostic, got %q", errs)
	}
	want := []TokenType{LET, IDENTIFIER, NUMBER, SEMICOLON, EOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("scanning must continue past the bad character (-want +got):\n%s", diff)
	}
}

func TestScanCommentsAndLines(t *testing.T) {
	tokens, errs := scan(t, "// comment to eol\nlet x; // trailing\nx")
	if errs != "" {
		t.Fatalf("unexpected diagnostics: %s", errs)
	}
	want := []TokenType{LET, IDENTIFIER, SEMICOLON, IDENTIFIER, EOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("token kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[0].Line != 2 || tokens[3].Line != 3 {
		t.Fatalf("line tracking off: let on %d, x on %d", tokens[0].Line, tokens[3].Line)
	}
}

// Rescanning the lexemes of a token stream yields the same kinds — whitespace
// carries no information.
func TestScanRescanRoundTrip(t *testing.T) {
	src := `fun add(a, b) { return a + b; } print(add(1, 2.5) == "x");`
	first, errs := scan(t, src)
	if errs != "" {
		t.Fatalf("unexpected diagnostics: %s", errs)
	}

	var pretty strings.Builder
	for _, tok := range first {
		pretty.WriteString(tok.Lexeme)
		pretty.WriteByte(' ')
	}
	second, errs := scan(t, pretty.String())
	if errs != "" {
		t.Fatalf("rescan diagnostics: %s", errs)
	}
	if diff := cmp.Diff(kinds(first), kinds(second)); diff != "" {
		t.Fatalf("rescan changed token kinds (-first +second):\n%s", diff)
	}
}
