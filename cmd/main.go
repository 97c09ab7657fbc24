package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.tally.dev/pkg"
)

// Exit codes, one per failure kind.
const (
	exitLexical       = 1
	exitSyntax        = 2
	exitUninitialized = 3
	exitIO            = 4
)

func main() {
	emitLLVM := flag.Bool("emit-llvm", false, "print the program as LLVM IR instead of evaluating it")
	flag.Parse()

	i := tally.NewInterpreter()

	if *emitLLVM {
		ir, err := compile(i, flag.Arg(0))
		if err != nil {
			fail(err)
		}

		fmt.Print(ir)
		return
	}

	stab, err := run(i, flag.Arg(0))
	if err != nil {
		fail(err)
	}

	fmt.Print(stab)
}

func run(i *tally.Interpreter, filename string) (*tally.SymbolTable, error) {
	if filename == "" || filename == "-" {
		return i.RunFromReader(os.Stdin)
	}

	return i.Run(filename)
}

func compile(i *tally.Interpreter, filename string) (tally.IR, error) {
	if filename == "" || filename == "-" {
		return i.CompileFromReader(os.Stdin)
	}

	return i.Compile(filename)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	var lexErr *tally.LexicalError
	if errors.As(err, &lexErr) {
		return exitLexical
	}

	var synErr *tally.SyntaxError
	if errors.As(err, &synErr) {
		return exitSyntax
	}

	var varErr *tally.UninitializedVariableError
	if errors.As(err, &varErr) {
		return exitUninitialized
	}

	return exitIO
}
