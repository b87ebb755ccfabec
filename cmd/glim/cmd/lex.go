package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/token"
)

var (
	showPos  bool
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a glim file or expression",
	Long: `Tokenize (lex) a glim program and print the resulting tokens.

Examples:
  glim lex script.glim
  glim lex -e "let x = 5;" --show-type --show-pos`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token type names")
}

func lexScript(_ *cobra.Command, args []string) error {
	input, _, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(input)
	for {
		tok := l.Next()
		printToken(tok)
		if tok.Type == token.EOF {
			break
		}
	}

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		return fmt.Errorf("found %d lex error(s)", len(lexErrs))
	}
	return nil
}

func printToken(tok token.Token) {
	output := ""
	if showType {
		output = fmt.Sprintf("[%-12s]", tok.Type)
	}
	if tok.Literal == "" {
		output += fmt.Sprintf(" %s", tok.Type)
	} else {
		output += fmt.Sprintf(" %q", tok.Literal)
	}
	if showPos {
		output += fmt.Sprintf(" @%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	fmt.Println(output)
}
