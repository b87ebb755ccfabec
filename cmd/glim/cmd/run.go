package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glim-lang/glim/internal/errors"
	"github.com/glim-lang/glim/internal/eval"
	"github.com/glim-lang/glim/internal/lexer"
	"github.com/glim-lang/glim/internal/parser"
	"github.com/glim-lang/glim/host"
)

var (
	evalExpr   string
	dumpAST    bool
	trace      bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a glim file or expression",
	Long: `Execute a glim program from a file or inline expression.

Examples:
  # Run a script file
  glim run script.glim

  # Evaluate an inline expression
  glim run -e "print(3 + 4 * 2);"

  # Run with AST dump (for debugging)
  glim run --dump-ast script.glim

  # Run with a session config file
  glim run --config session.yaml script.glim`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
	runCmd.Flags().StringVar(&configPath, "config", "", "session config file (YAML)")
}

func readSource(args []string) (input, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}

func loadSessionConfig() (host.Config, error) {
	if configPath == "" {
		return host.Config{}, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return host.Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return host.LoadConfig(data)
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(args)
	if err != nil {
		return err
	}

	cfg, err := loadSessionConfig()
	if err != nil {
		return err
	}

	l := lexer.New(input)
	p := parser.New(l)
	program := p.ParseProgram()

	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		compilerErrors := errors.FromLexErrors(lexErrs, input, filename)
		fmt.Fprint(os.Stderr, errors.FormatAll(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("lexing failed with %d error(s)", len(lexErrs))
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		compilerErrors := errors.FromParseErrors(parseErrs, input, filename)
		fmt.Fprint(os.Stderr, errors.FormatAll(compilerErrors, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(parseErrs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	if trace && configPath == "" {
		cfg.Trace = true
	}
	if trace {
		fmt.Fprintf(os.Stderr, "[Trace mode enabled - executing %s]\n", filename)
	}

	stdin := bufio.NewScanner(os.Stdin)
	ev := eval.New(
		func(s string) { fmt.Println(s) },
		func(line int) (string, bool) {
			if trace {
				fmt.Fprintf(os.Stderr, "[input() at line %d]\n", line)
			}
			if !stdin.Scan() {
				return "", false
			}
			return stdin.Text(), true
		},
	)
	ev.ShortCircuit = cfg.ShortCircuit

	_, runErr := ev.Run(program)
	if runErr != nil {
		ce := errors.FromRuntimeError(runErr, input, filename)
		fmt.Fprint(os.Stderr, ce.Format(true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("execution failed")
	}
	return nil
}
