package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// compileCmd implements the default "bpl <file.bpl> [file2.bpl …]"
// behavior: each file is lexed, parsed, resolved, type-checked, offset
// -assigned, and emitted to "<base>.s", then linked with the system C
// toolchain. Grounded on the teacher's runCmd/cmd_run.go skeleton
// (read-file, report errors to stderr, exit non-zero on failure),
// generalized from an interpreter run to a compile-and-link driver.
type compileCmd struct{}

func (*compileCmd) Name() string     { return "compile" }
func (*compileCmd) Synopsis() string { return "Compile one or more BPL source files to native executables" }
func (*compileCmd) Usage() string {
	return `compile <file.bpl> [file2.bpl ...]:
  Compile each BPL source file to "<base>.s" and link it with the system
  C toolchain into a native executable named "<base>".
`
}
func (*compileCmd) SetFlags(f *flag.FlagSet) {}

func (*compileCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "no input files")
		return subcommands.ExitUsageError
	}

	status := subcommands.ExitSuccess
	for _, path := range args {
		if err := compileOne(path); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			status = subcommands.ExitFailure
			continue
		}
	}
	return status
}

func compileOne(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	asmText, err := compileToAssembly(path, string(data))
	if err != nil {
		return err
	}
	return assembleAndLink(baseName(path), asmText)
}
