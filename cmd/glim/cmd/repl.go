package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glim-lang/glim/internal/errors"
	"github.com/glim-lang/glim/internal/eval"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive glim REPL",
	Args:  cobra.NoArgs,
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runREPL reads source a line at a time, accumulating lines until braces
// balance, then submits the buffered source to a single long-lived
// Evaluator so `let`/`def` bindings persist across submissions (spec §6's
// CLI paragraph).
func runREPL(_ *cobra.Command, _ []string) error {
	in := bufio.NewScanner(os.Stdin)
	ev := eval.New(
		func(s string) { fmt.Println(s) },
		func(line int) (string, bool) {
			fmt.Print("input> ")
			if !in.Scan() {
				return "", false
			}
			return in.Text(), true
		},
	)

	var buf strings.Builder
	depth := 0
	fmt.Print("glim> ")
	for in.Scan() {
		line := in.Text()
		buf.WriteString(line)
		buf.WriteString("\n")
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if depth > 0 {
			fmt.Print("...  ")
			continue
		}

		source := buf.String()
		buf.Reset()
		depth = 0

		l := lexer.New(source)
		p := parser.New(l)
		program := p.ParseProgram()

		if lexErrs := l.Errors(); len(lexErrs) > 0 {
			fmt.Fprint(os.Stderr, errors.FormatAll(errors.FromLexErrors(lexErrs, source, "<repl>"), true))
		} else if parseErrs := p.Errors(); len(parseErrs) > 0 {
			fmt.Fprint(os.Stderr, errors.FormatAll(errors.FromParseErrors(parseErrs, source, "<repl>"), true))
		} else if v, runErr := ev.Run(program); runErr != nil {
			fmt.Fprintln(os.Stderr, errors.FromRuntimeError(runErr, source, "<repl>").Format(true))
		} else if v != nil {
			fmt.Println("=> " + v.String())
		}

		fmt.Print("glim> ")
	}
	fmt.Println()
	return nil
}
