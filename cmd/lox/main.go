/*
File    : golox/cmd/lox/main.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Command lox is the interpreter's entry point: `lox` for the REPL,
// `lox <script>` to run a file once, and `lox watch <script>` to re-run
// a file on every save. Dispatch and exit-code handling follow the
// teacher's own main/main.go shape (flag-style dispatch, explicit
// os.Exit codes, a panic-recovery net around evaluation), rebuilt on
// cobra the way the rest of the example pack's CLIs are.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/eval"
	"github.com/akashmaji946/golox/file"
	"github.com/akashmaji946/golox/lexer"
	"github.com/akashmaji946/golox/parser"
	"github.com/akashmaji946/golox/repl"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	exitOK       = 0
	exitIOError  = 1
	exitUsageErr = 64
)

func main() {
	root := newRootCommand()
	root.AddCommand(newWatchCommand())
	if err := root.Execute(); err != nil {
		os.Exit(exitUsageErr)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "lox [script]",
		Short:                 "A tree-walking interpreter for Lox",
		Args:                  cobra.MaximumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				runREPL(cmd.OutOrStdout(), cmd.InOrStdin())
				return nil
			}
			os.Exit(runFile(args[0], cmd.OutOrStdout()))
			return nil
		},
	}
	cmd.SetArgs(os.Args[1:])
	return cmd
}

// newWatchCommand wires fsnotify into the CLI: re-running a script every
// time it's saved, which the teacher's own CLI has no equivalent of but
// fits naturally alongside file-mode execution.
func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <script>",
		Short: "Re-run a script every time it changes on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args[0], cmd.OutOrStdout())
		},
	}
}

// runFile executes a script once, returning the process exit code. A
// read failure is an I/O error (exit 1); a parse or runtime error is
// rendered to stdout but does not change the exit code, per the
// language's own error-handling contract.
func runFile(path string, out io.Writer) int {
	src, err := file.LoadScript(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}
	runSource(src, out)
	return exitOK
}

func runWatch(path string, out io.Writer) error {
	src, err := file.LoadScript(path)
	if err != nil {
		return err
	}
	color.New(color.FgCyan).Fprintf(out, "watching %s (Ctrl-C to stop)\n", path)
	runSource(src, out)

	watcher, err := file.NewWatcher(path)
	if err != nil {
		return err
	}
	defer watcher.Close()

	return watcher.Run(func(contents string) {
		color.New(color.FgCyan).Fprintf(out, "--- %s changed, re-running ---\n", path)
		runSource(contents, out)
	})
}

// runSource tokenizes, parses, and evaluates one program's worth of
// source against a fresh top-level environment, rendering any
// diagnostic it produces to out. It recovers from unexpected Go-level
// panics the same way the teacher's executeFileWithRecovery does, so a
// single malformed program can never crash the whole process.
func runSource(src string, out io.Writer) {
	defer func() {
		if recovered := recover(); recovered != nil {
			color.New(color.FgRed).Fprintf(out, "[internal error] %v\n", recovered)
		}
	}()

	tokens, lexErrs := lexer.New(src).Scan()
	if len(lexErrs) > 0 {
		renderAll(out, src, lexErrs)
		return
	}

	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		renderAll(out, src, parseErrs)
		return
	}

	evaluator := eval.New(out)
	if _, err := evaluator.Run(stmts, environment.Fresh()); err != nil {
		if d, ok := err.(diag.Diagnostic); ok {
			color.New(color.FgRed).Fprint(out, diag.Render(src, d))
			return
		}
		color.New(color.FgRed).Fprintf(out, "error: %v\n", err)
	}
}

func renderAll(out io.Writer, src string, diags []diag.Diagnostic) {
	red := color.New(color.FgRed)
	for _, d := range diags {
		red.Fprint(out, diag.Render(src, d))
	}
}

func runREPL(out io.Writer, in io.Reader) {
	session := repl.NewRepl(
		`   __
  / /___  _  __
 / / __ \| |/_/
/ / /_/ />  <
\_/\____/_/|_|  `,
		"0.1.0",
		"akashmaji946",
		"--------------------------------------------------",
		"MIT",
		"lox",
	)
	session.Start(in, out)
}
