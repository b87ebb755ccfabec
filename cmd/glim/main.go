// Command glim is the command-line front end for the glim scripting
// language: lexing, parsing, AST dumping, execution and an interactive
// REPL, laid out the way the teacher's dwscript CLI is (cmd/<tool>/cmd
// package plus a thin main.go entrypoint).
package main

import cmd "github.com/glim-lang/glim/cmd/glim/cmd"

func main() {
	cmd.Execute()
}
