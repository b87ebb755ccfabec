package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glim-lang/glim/internal/errors"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a glim file or expression and print its AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  parseScript,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errors.FromLexErrors(lexErrs, input, filename), true))
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errors.FromParseErrors(parseErrs, input, filename), true))
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	fmt.Println(program.String())
	return nil
}
