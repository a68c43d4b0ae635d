package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/bpl-lang/bplc/ast"
)

// astCmd parses (but does not resolve or type-check) a BPL source file
// and prints its AST as JSON, generalizing cmd_emit_bytecode.go's
// dump-artifact subcommand shape from a bytecode dump to an AST dump.
type astCmd struct{}

func (*astCmd) Name() string     { return "ast" }
func (*astCmd) Synopsis() string { return "Print a BPL source file's AST as JSON" }
func (*astCmd) Usage() string {
	return `ast <file.bpl>:
  Parse a BPL source file and print its AST as indented JSON.
`
}
func (*astCmd) SetFlags(f *flag.FlagSet) {}

func (*astCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: bpl ast <file.bpl>")
		return subcommands.ExitUsageError
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return subcommands.ExitFailure
	}
	decls, err := parseFile(path, string(data))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}
	if err := ast.Fprint(os.Stdout, decls); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
