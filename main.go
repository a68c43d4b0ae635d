package main

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// knownVerbs are the subcommand names bplc recognizes explicitly.
// Anything else in os.Args[1] is treated as a source file, so
// "bpl foo.bpl" and "bpl compile foo.bpl" behave identically, matching
// spec.md §6's "bpl <file.bpl> [file2.bpl …]" bare invocation form.
var knownVerbs = map[string]bool{
	"compile": true, "ast": true, "repl": true,
	"help": true, "flags": true, "commands": true,
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&compileCmd{}, "")
	subcommands.Register(&astCmd{}, "")
	subcommands.Register(&replCmd{}, "")

	args := os.Args[1:]
	if len(args) > 0 && !knownVerbs[args[0]] && !strings.HasPrefix(args[0], "-") {
		args = append([]string{"compile"}, args...)
	}
	os.Args = append(os.Args[:1], args...)

	flag.Parse()
	ctx := context.Background()
	os.Exit(int(subcommands.Execute(ctx)))
}
