package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/bpl-lang/bplc/lexer"
	"github.com/bpl-lang/bplc/token"
)

// replCmd is a readline-backed loop that wraps each accepted snippet in
// "int main(void) { <snippet> return 0; }", compiles it, links it, runs
// it, and echoes its stdout and exit code back. Generalizes
// cmd_repl_compiled.go's multi-line buffering (isInputReady) from
// nilan's bytecode VM to BPL's compile-and-run pipeline.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive BPL REPL" }
func (*replCmd) Usage() string {
	return `repl:
  Read BPL statements, compile each snippet as the body of "main", run it,
  and print its output.
`
}
func (*replCmd) SetFlags(f *flag.FlagSet) {}

func (*replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New("bpl> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("BPL REPL — Ctrl-D to exit")

	var buffer strings.Builder
	snippetNum := 0
	for {
		prompt := "bpl> "
		if buffer.Len() > 0 {
			prompt = "...> "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return subcommands.ExitFailure
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)

		tokens, lexErr := lexer.Scan("<repl>", buffer.String())
		if lexErr != nil {
			// Could be a /* comment */ still open across lines; give the
			// user another chance rather than failing immediately.
			continue
		}
		if !bracesBalanced(tokens) {
			continue
		}

		snippet := buffer.String()
		buffer.Reset()
		snippetNum++
		runSnippet(fmt.Sprintf("repl_snippet_%d", snippetNum), snippet)
	}
}

func bracesBalanced(tokens []token.Token) bool {
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	return depth <= 0
}

func runSnippet(base, snippet string) {
	src := fmt.Sprintf("int main(void) {\n%s\nreturn 0;\n}\n", snippet)
	asmText, err := compileToAssembly(base+".bpl", src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	defer os.Remove(base + ".s")
	defer os.Remove(base)
	if err := assembleAndLink(base, asmText); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}
	cmd := exec.Command("./" + base)
	out, err := cmd.CombinedOutput()
	fmt.Print(string(out))
	if err != nil {
		fmt.Fprintf(os.Stderr, "exit: %v\n", err)
	}
}
