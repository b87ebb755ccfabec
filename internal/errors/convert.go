package errors

import (
	"github.com/glim-lang/glim/internal/eval"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
	"github.com/glim-lang/glim/internal/token"
)

// FromLexErrors converts lexer.Error values into CompilerErrors carrying
// the offending source and an optional file name for display.
func FromLexErrors(errs []lexer.Error, source, file string) []*CompilerError {
	out := make([]*CompilerError, len(errs))
	for i, e := range errs {
		out[i] = New("lex-error", e.Pos, e.Message, source, file)
	}
	return out
}

// FromParseErrors converts parser.Error values into CompilerErrors.
func FromParseErrors(errs []parser.Error, source, file string) []*CompilerError {
	out := make([]*CompilerError, len(errs))
	for i, e := range errs {
		out[i] = New("parse-error", e.Pos, e.Message, source, file)
	}
	return out
}

// FromRuntimeError converts an eval.RuntimeError into a CompilerError,
// carrying its Kind straight through.
func FromRuntimeError(err *eval.RuntimeError, source, file string) *CompilerError {
	return New(err.Kind, token.Position{Line: err.Line}, err.Message, source, file)
}
