package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vshell/vsh"
	"github.com/vshell/vsh/internal/util"
)

// ScriptRunner drives a session from a script file: lines run in order,
// blank lines and '#' comments are skipped, and each command is echoed
// with the prompt before it runs. A failing line is reported with its
// number and does not halt the remaining lines; only a terminating
// command (or an unreadable script file) stops the run.
type ScriptRunner struct {
	terminal *Terminal
	out      io.Writer
	errOut   io.Writer
}

// NewScriptRunner wires a runner to the standard streams.
func NewScriptRunner(t *Terminal) *ScriptRunner {
	return &ScriptRunner{terminal: t, out: os.Stdout, errOut: os.Stderr}
}

// NewScriptRunnerWithStreams is the testable constructor.
func NewScriptRunnerWithStreams(t *Terminal, out, errOut io.Writer) *ScriptRunner {
	return &ScriptRunner{terminal: t, out: out, errOut: errOut}
}

// Run executes every runnable line of the script at path.
func (r *ScriptRunner) Run(path string) error {
	logger := util.GetLogger("script")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open script %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if !r.terminal.Running() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fmt.Fprintf(r.out, "%s%s\n", r.terminal.Prompt(), line)
		out := r.terminal.Submit(line)
		if out.Err != nil {
			fmt.Fprintf(r.errOut, "Error on line %d: %v\n", lineNum, out.Err)
			continue
		}
		render(out, r.out, r.errOut)
		if out.Terminate {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}
	logger.Debug().Str("script", path).Int("lines", lineNum).Msg("Script finished")
	return nil
}

// render writes one Output to the appropriate stream.
func render(out vsh.Output, w, errW io.Writer) {
	if out.Err != nil {
		fmt.Fprintln(errW, out.Err.Error())
		return
	}
	if out.Text != "" {
		fmt.Fprintln(w, out.Text)
	}
}
