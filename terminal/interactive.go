package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// InteractiveRunner drives a session from a live line source: one line
// read, one dispatch, one response rendered, until exit or EOF.
type InteractiveRunner struct {
	terminal *Terminal
	in       io.Reader
	out      io.Writer
	errOut   io.Writer
}

// NewInteractiveRunner wires a runner to the standard streams.
func NewInteractiveRunner(t *Terminal) *InteractiveRunner {
	return &InteractiveRunner{terminal: t, in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
}

// NewInteractiveRunnerWithStreams is the testable constructor.
func NewInteractiveRunnerWithStreams(t *Terminal, in io.Reader, out, errOut io.Writer) *InteractiveRunner {
	return &InteractiveRunner{terminal: t, in: in, out: out, errOut: errOut}
}

// Run loops until the session terminates or the input source ends. A
// failed command is rendered and the loop continues; it never aborts the
// session.
func (r *InteractiveRunner) Run() error {
	scanner := bufio.NewScanner(r.in)
	for r.terminal.Running() {
		fmt.Fprint(r.out, r.terminal.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		out := r.terminal.Submit(scanner.Text())
		render(out, r.out, r.errOut)
		if out.Terminate {
			break
		}
	}
	return nil
}
