package lexer

import (
	"testing"

	"github.com/glim-lang/glim/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let x = 5;
	x = x + 10;`

	tests := []struct {
		expectedLiteral string
		expectedType    token.Type
	}{
		{"let", token.LET},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"5", token.NUMBER},
		{";", token.SEMICOLON},
		{"x", token.IDENT},
		{"=", token.ASSIGN},
		{"x", token.IDENT},
		{"+", token.PLUS},
		{"10", token.NUMBER},
		{";", token.SEMICOLON},
		{"", token.EOF},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.Next()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	input := `IF ELSE For While DEF Return Struct Class Print True False AND Or NOT Null Delete Parallel Input Let`

	want := []token.Type{
		token.IF, token.ELSE, token.FOR, token.WHILE, token.DEF, token.RETURN,
		token.STRUCT, token.CLASS, token.PRINT, token.TRUE, token.FALSE,
		token.AND, token.OR, token.NOT, token.NULL, token.DELETE,
		token.PARALLEL, token.INPUT, token.LET,
	}

	l := New(input)
	for i, w := range want {
		tok := l.Next()
		if tok.Type != w {
			t.Fatalf("tests[%d]: expected %s, got %s (literal=%q)", i, w, tok.Type, tok.Literal)
		}
	}
}

func TestIdentifiersPreserveCase(t *testing.T) {
	l := New("MyVar myVar MYVAR")
	for _, want := range []string{"MyVar", "myVar", "MYVAR"} {
		tok := l.Next()
		if tok.Type != token.IDENT || tok.Literal != want {
			t.Fatalf("expected IDENT %q, got %s %q", want, tok.Type, tok.Literal)
		}
	}
}

func TestNumberNormalization(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123", "123"},
		{".5", "0.5"},
		{"5.", "5.0"},
		{"3.14", "3.14"},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.Next()
		if tok.Literal != tt.want {
			t.Errorf("readNumber(%q) = %q, want %q", tt.input, tok.Literal, tt.want)
		}
	}
}

func TestMalformedNumberIsLexError(t *testing.T) {
	l := New("1.2.3")
	l.Next()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lex error for multiple '.' in a number")
	}
}

func TestStrings(t *testing.T) {
	l := New(`'hello' "world" 'a\nb'`)

	tok := l.Next()
	if tok.Type != token.STRING || tok.Literal != "hello" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
	tok = l.Next()
	if tok.Type != token.STRING || tok.Literal != "world" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
	// No escape processing: backslash-n stays literal.
	tok = l.Next()
	if tok.Type != token.STRING || tok.Literal != `a\nb` {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`'hello`)
	tok := l.Next()
	if tok.Type != token.STRING {
		t.Fatalf("got %s", tok.Type)
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected unterminated string error")
	}
	if l.Errors()[0].Pos.Column != 1 {
		t.Fatalf("expected error at the opening quote column 1, got %d", l.Errors()[0].Pos.Column)
	}
}

func TestCommentsBothForms(t *testing.T) {
	l := New("let x = 1; // a comment\n# another\nlet y = 2;")
	var lits []string
	for {
		tok := l.Next()
		if tok.Type == token.EOF {
			break
		}
		lits = append(lits, tok.Literal)
	}
	want := []string{"let", "x", "=", "1", ";", "let", "y", "=", "2", ";"}
	if len(lits) != len(want) {
		t.Fatalf("got %v, want %v", lits, want)
	}
	for i := range want {
		if lits[i] != want[i] {
			t.Fatalf("token %d: got %q, want %q", i, lits[i], want[i])
		}
	}
}

func TestLineNumbersMonotonic(t *testing.T) {
	l := New("let a = 1;\nlet b = 2;\nlet c = 3;")
	lastLine := 0
	for {
		tok := l.Next()
		if tok.Type == token.EOF {
			break
		}
		if tok.Pos.Line < lastLine {
			t.Fatalf("line number went backwards: %d after %d", tok.Pos.Line, lastLine)
		}
		lastLine = tok.Pos.Line
	}
}

func TestOperatorsAndPunctuation(t *testing.T) {
	input := "( ) { } , ; . -> + - * / ^ % = == != < > <= >="
	want := []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.SEMICOLON, token.DOT, token.ARROW, token.PLUS, token.MINUS,
		token.STAR, token.SLASH, token.CARET, token.PERCENT, token.ASSIGN,
		token.EQ, token.NEQ, token.LT, token.GT, token.LTE, token.GTE,
	}
	l := New(input)
	for i, w := range want {
		tok := l.Next()
		if tok.Type != w {
			t.Fatalf("tests[%d]: expected %s, got %s (literal %q)", i, w, tok.Type, tok.Literal)
		}
	}
}

func TestMinusThenDigitLexesSeparately(t *testing.T) {
	l := New("-5")
	tok := l.Next()
	if tok.Type != token.MINUS {
		t.Fatalf("expected MINUS, got %s", tok.Type)
	}
	tok = l.Next()
	if tok.Type != token.NUMBER || tok.Literal != "5" {
		t.Fatalf("expected NUMBER 5, got %s %q", tok.Type, tok.Literal)
	}
}
