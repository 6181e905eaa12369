// Command glox is the external collaborator described in spec.md §6: it
// owns the REPL line reader, the file reader, diagnostic terminal
// formatting, and the process exit code. The core pipeline (scanner,
// parser, resolver, evaluator) is oblivious to all of it.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/raspacee/lox/internal/ast"
	"github.com/raspacee/lox/internal/diag"
	"github.com/raspacee/lox/internal/interp"
	"github.com/raspacee/lox/internal/parser"
	"github.com/raspacee/lox/internal/resolver"
	"github.com/raspacee/lox/internal/scanner"
)

const (
	exitOK           = 0
	exitUsage        = 64
	exitStaticError  = 65
	exitRuntimeError = 70
)

var (
	verbose bool
	dumpAST bool
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		// cobra already printed the usage/error; match spec.md's usage exit code.
		os.Exit(exitUsage)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glox [script]",
		Short: "glox is a tree-walking interpreter for a small Lox-family language",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				// spec.md §6's exact usage contract, not cobra's generated form.
				fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", cmd.Name())
				os.Exit(exitUsage)
			}
			configureLogging()
			switch len(args) {
			case 0:
				runPrompt()
			case 1:
				runFile(args[0])
			}
			return nil
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging from every pipeline stage")
	cmd.Flags().BoolVar(&dumpAST, "ast", false, "print the parsed syntax tree before executing it")
	return cmd
}

func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}
}

// runFile reads the script at path, executes it once, and exits with the
// code spec.md §6 assigns to whichever error kind occurred first, if any.
func runFile(path string) {
	contents, err := os.ReadFile(path)
	if err != nil {
		staticErrColor().Fprintf(os.Stderr, "Can't open file at %q: %v\n", path, err)
		os.Exit(exitUsage)
	}

	switch exec(string(contents), os.Stdout) {
	case resultStaticError:
		os.Exit(exitStaticError)
	case resultRuntimeError:
		os.Exit(exitRuntimeError)
	}
}

// runPrompt is a simple REPL: each line is scanned, parsed, resolved and
// executed independently; errors reset between lines (spec.md §6). The
// sentinel line consisting solely of NUL ends the session.
func runPrompt() {
	rl, err := readline.New("> ")
	if err != nil {
		logrus.WithError(err).Fatal("failed to start REPL")
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			logrus.WithError(err).Warn("error reading line")
			return
		}
		if line == "\x00" {
			return
		}
		if line == "" {
			continue
		}
		exec(line, os.Stdout)
	}
}

type execResult int

const (
	resultOK execResult = iota
	resultStaticError
	resultRuntimeError
)

// exec drives the full scanner -> parser -> resolver -> evaluator pipeline
// over one source unit (spec.md §2 data flow).
func exec(source string, stdout io.Writer) execResult {
	sink := diag.NewSink()

	toks := scanner.New(source, sink).ScanTokens()
	stmts := parser.New(toks, sink).Parse()
	if sink.HadError() {
		reportStatic(sink)
		return resultStaticError
	}

	locals := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		reportStatic(sink)
		return resultStaticError
	}

	if dumpAST {
		fmt.Println(ast.PrintStmts(stmts))
	}

	if err := interp.New(locals, stdout).Interpret(stmts); err != nil {
		runtimeErrColor().Fprintln(os.Stderr, err.Error())
		return resultRuntimeError
	}
	return resultOK
}

func reportStatic(sink *diag.Sink) {
	for _, e := range sink.Errors() {
		staticErrColor().Fprintln(os.Stderr, e.Error())
	}
}

func staticErrColor() *color.Color  { return color.New(color.FgRed) }
func runtimeErrColor() *color.Color { return color.New(color.FgYellow) }
