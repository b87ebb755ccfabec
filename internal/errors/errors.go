// Package errors formats glim's compiler and runtime errors with source
// context, a line/column header, and a caret pointing at the offending
// column — the same presentation the teacher's go-dws internal/errors
// package builds, adapted to use fatih/color's terminal detection instead
// of hand-rolled ANSI escape sequences.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/glim-lang/glim/internal/token"
)

// CompilerError is a single static (lex/parse) or runtime failure. Kind is
// a short machine-matchable tag (spec §1's "Kind" requirement) so a host
// can branch on error class without string-matching Message.
type CompilerError struct {
	Kind    string
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New builds a CompilerError.
func New(kind string, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Message: message, Source: source, File: file, Pos: pos}
}

func (e *CompilerError) Error() string { return e.Format(false) }

var (
	errHeader = color.New(color.Bold)
	errCaret  = color.New(color.FgRed, color.Bold)
	errMsg    = color.New(color.Bold)
)

// Format renders the error with a 4-digit line-number gutter and a caret
// line under the offending column, matching the teacher's layout. When
// color is false (or the destination isn't a terminal, per fatih/color's
// own NoColor detection), output is plain text.
func (e *CompilerError) Format(useColor bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at line %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		gutter := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(gutter)
		sb.WriteString(line)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+e.Pos.Column-1))
		writeColored(&sb, useColor, errCaret, "^")
		sb.WriteString("\n")
	}

	writeColored(&sb, useColor, errMsg, e.Message)
	return sb.String()
}

func writeColored(sb *strings.Builder, useColor bool, c *color.Color, s string) {
	if useColor && !color.NoColor {
		sb.WriteString(c.Sprint(s))
		return
	}
	sb.WriteString(s)
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// FormatAll renders a batch of static parse errors the way the teacher's
// FormatErrors does for multi-error compile failures.
func FormatAll(errs []*CompilerError, useColor bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(useColor)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Compilation failed with %d error(s):\n\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&sb, "[Error %d of %d]\n", i+1, len(errs))
		sb.WriteString(e.Format(useColor))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
