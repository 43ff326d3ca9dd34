package bundle

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// RunOptions configures a single external tool invocation.
type RunOptions struct {
	Dir    string
	Env    []string
	Stderr io.Writer
}

// Runner executes external tools synchronously. Failure is signalled purely
// by the returned error; exit codes are recovered with exitCode.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) error
}

// CmdRunner runs commands as child processes.
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) error {
	cmd := exec.CommandContext(ctx, command, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = opts.Env
	} else {
		cmd.Env = os.Environ()
	}

	var stderrBuf bytes.Buffer
	stderr := io.Writer(&stderrBuf)
	if opts.Stderr != nil {
		stderr = io.MultiWriter(&stderrBuf, opts.Stderr)
	}
	cmd.Stderr = stderr
	cmd.Stdout = opts.Stderr

	return cmd.Run()
}

var _ Runner = CmdRunner{}

// exitCode extracts the child's exit code from a Runner error, -1 when the
// process never ran.
func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
