/*
File    : golox/repl/repl.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package repl implements the Read-Eval-Print Loop for the Lox
interpreter. The REPL accepts one top-level program per line, echoes
`print` output immediately, and keeps a single environment alive across
inputs so variables and functions declared on one line are visible on
the next.
*/
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/akashmaji946/golox/diag"
	"github.com/akashmaji946/golox/environment"
	"github.com/akashmaji946/golox/eval"
	"github.com/akashmaji946/golox/lexer"
	"github.com/akashmaji946/golox/parser"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is a configured REPL session. Banner/Version/Author/Line/License
// are purely presentational, printed once at startup in the teacher's
// banner style; PromptBase is the prompt's fixed prefix, to which the
// running input count is appended (":N>> ").
type Repl struct {
	Banner     string
	Version    string
	Author     string
	Line       string
	License    string
	PromptBase string
}

// NewRepl creates a Repl with the given presentation fields.
func NewRepl(banner, version, author, line, license, promptBase string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, PromptBase: promptBase}
}

// PrintBannerInfo writes the startup banner, matching the teacher's
// color-coded layout.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type an expression or statement and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type ':env' to inspect the current top-level bindings.")
	cyanColor.Fprintf(writer, "%s\n", "Press Ctrl-D or Ctrl-C to exit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL until the user exits via Ctrl-D, Ctrl-C, or a
// readline-level error. Every accepted, non-empty input other than `:env`
// increments the prompt's counter, regardless of whether it succeeded.
func (r *Repl) Start(reader io.Reader, writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.prompt(1))
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	env := environment.Fresh()
	evaluator := eval.New(writer)
	count := 1

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		rl.SaveHistory(line)

		if line == ":env" {
			r.printEnv(writer, env)
			continue
		}

		r.executeWithRecovery(writer, line, evaluator, env)
		count++
		rl.SetPrompt(r.prompt(count))
	}
}

func (r *Repl) prompt(n int) string {
	return fmt.Sprintf("%s:%d>> ", r.PromptBase, n)
}

// executeWithRecovery parses and evaluates a single line, reporting
// lexer/parser/runtime diagnostics in red and recovering from any
// genuinely unexpected Go-level panic so a single bad input can never
// take down the session — mirroring the teacher's own REPL recovery.
func (r *Repl) executeWithRecovery(writer io.Writer, line string, evaluator *eval.Evaluator, env *environment.Environment) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[internal error] %v\n", recovered)
		}
	}()

	tokens, lexErrs := lexer.New(line).Scan()
	if len(lexErrs) > 0 {
		for _, d := range lexErrs {
			redColor.Fprint(writer, diag.Render(line, d))
		}
		return
	}

	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		for _, d := range parseErrs {
			redColor.Fprint(writer, diag.Render(line, d))
		}
		return
	}

	result, err := evaluator.Run(stmts, env)
	if err != nil {
		if d, ok := err.(diag.Diagnostic); ok {
			redColor.Fprint(writer, diag.Render(line, d))
			return
		}
		redColor.Fprintf(writer, "error: %v\n", err)
		return
	}
	if result != nil {
		yellowColor.Fprintf(writer, "%s\n", result.String())
	}
}

// printEnv lists the bindings declared directly in env's own scope,
// sorted by name — the SUPPLEMENTED introspection command. Bindings of
// enclosing scopes are not listed.
func (r *Repl) printEnv(writer io.Writer, env *environment.Environment) {
	names := env.Names()
	if len(names) == 0 {
		cyanColor.Fprintln(writer, "(no bindings)")
		return
	}
	for _, name := range names {
		v, res := env.Lookup(name)
		switch res {
		case environment.Found:
			yellowColor.Fprintf(writer, "%s = %s\n", name, v.String())
		case environment.Uninitialized:
			yellowColor.Fprintf(writer, "%s = <uninitialized>\n", name)
		}
	}
}
