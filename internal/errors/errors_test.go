package errors

import (
	"strings"
	"testing"

	"github.com/glim-lang/glim/internal/eval"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
	"github.com/glim-lang/glim/internal/token"
)

func TestFormatPlainIncludesGutterAndCaret(t *testing.T) {
	source := "let x = 1;\nprint(y);"
	err := New("undefined-variable", token.Position{Line: 2, Column: 7}, `undefined variable "y"`, source, "")

	out := err.Format(false)
	if !strings.Contains(out, "print(y);") {
		t.Fatalf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected caret in output, got %q", out)
	}
	if !strings.Contains(out, `undefined variable "y"`) {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestFormatWithFileNameUsesFileHeader(t *testing.T) {
	err := New("parse-error", token.Position{Line: 1, Column: 1}, "boom", "x", "script.glim")
	out := err.Format(false)
	if !strings.HasPrefix(out, "Error in script.glim:1:1") {
		t.Fatalf("expected file-qualified header, got %q", out)
	}
}

func TestErrorMethodMatchesPlainFormat(t *testing.T) {
	err := New("lex-error", token.Position{Line: 1, Column: 1}, "bad token", "x", "")
	if err.Error() != err.Format(false) {
		t.Fatalf("Error() should match Format(false)")
	}
}

func TestFormatAllEmpty(t *testing.T) {
	if got := FormatAll(nil, false); got != "" {
		t.Fatalf("expected empty string for no errors, got %q", got)
	}
}

func TestFormatAllMultipleNumbersErrors(t *testing.T) {
	errs := []*CompilerError{
		New("parse-error", token.Position{Line: 1, Column: 1}, "first", "", ""),
		New("parse-error", token.Position{Line: 2, Column: 1}, "second", "", ""),
	}
	out := FormatAll(errs, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Fatalf("expected error count header, got %q", out)
	}
	if !strings.Contains(out, "[Error 1 of 2]") || !strings.Contains(out, "[Error 2 of 2]") {
		t.Fatalf("expected both error headers, got %q", out)
	}
}

func TestFromLexErrorsCarriesKindAndPosition(t *testing.T) {
	l := lexer.New(`'unterminated`)
	l.Next()
	errs := FromLexErrors(l.Errors(), "'unterminated", "")
	if len(errs) == 0 {
		t.Fatal("expected at least one lex error")
	}
	if errs[0].Kind != "lex-error" {
		t.Fatalf("expected Kind=lex-error, got %q", errs[0].Kind)
	}
}

func TestFromParseErrorsCarriesKind(t *testing.T) {
	l := lexer.New(`let = 5;`)
	p := parser.New(l)
	p.ParseProgram()
	errs := FromParseErrors(p.Errors(), `let = 5;`, "")
	if len(errs) == 0 {
		t.Fatal("expected at least one parse error")
	}
	if errs[0].Kind != "parse-error" {
		t.Fatalf("expected Kind=parse-error, got %q", errs[0].Kind)
	}
}

func TestFromRuntimeErrorPassesKindThrough(t *testing.T) {
	runErr := &eval.RuntimeError{Kind: "division-by-zero", Message: "boom", Line: 3}
	ce := FromRuntimeError(runErr, "src", "file.glim")
	if ce.Kind != "division-by-zero" {
		t.Fatalf("expected Kind passed through, got %q", ce.Kind)
	}
	if ce.Pos.Line != 3 {
		t.Fatalf("expected line 3, got %d", ce.Pos.Line)
	}
}
