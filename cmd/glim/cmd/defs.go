package cmd

import (
	"fmt"
	"os"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/glim-lang/glim/internal/errors"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
)

// defsCmd is a supplemental debug command, grounded on the teacher's
// `--show-units` dependency listing: parse only, then list the function
// and record names the parser registered, naturally sorted so `func10`
// doesn't land before `func2` (spec_full §9).
var defsCmd = &cobra.Command{
	Use:   "defs [file]",
	Short: "List functions and records declared in a glim file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listDefs,
}

func init() {
	rootCmd.AddCommand(defsCmd)
	defsCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func listDefs(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	p.ParseProgram()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errors.FromLexErrors(lexErrs, input, filename), true))
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(errors.FromParseErrors(parseErrs, input, filename), true))
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	funcs := sortedNames(p.Funcs())
	records := sortedNames(p.Records())

	fmt.Printf("Functions (%d):\n", len(funcs))
	for _, name := range funcs {
		fmt.Printf("  %s\n", name)
	}
	fmt.Printf("Records (%d):\n", len(records))
	for _, name := range records {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func sortedNames(m map[string]bool) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	natural.Sort(names)
	return names
}
