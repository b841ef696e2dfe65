// Command ciao drives an event-driven state machine from a fixed iteration
// budget or from operator input.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/roach88/ciao/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit status.
// Errors are reported once, on stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "ciao: %v\n", err)
	}
	return cli.GetExitCode(err)
}
