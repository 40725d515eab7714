// Package runner executes external commands for ironup. It is the only
// place the process boundary is crossed: package managers, the overlay
// client and the reboot command are all reached through here. Execution is
// synchronous and fail-fast; a non-zero exit aborts the current run.
package runner

import (
	"bytes"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"

	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/logging"
	"github.com/crofth/ironup/pkg/types"
	"github.com/crofth/ironup/pkg/ui"
)

// ExecRunner implements types.Runner on top of os/exec
type ExecRunner struct {
	console *ui.Console
	logger  zerolog.Logger
}

// New creates a runner that surfaces command output through console
func New(console *ui.Console) *ExecRunner {
	return &ExecRunner{
		console: console,
		logger:  logging.GetLogger("runner"),
	}
}

// Run executes argv and blocks until it completes. On success the captured
// standard output is printed to the user and returned. On failure the
// command text, captured standard error and a stack trace are logged, a
// short message is shown to the user, and the error is returned for the
// caller to abort with.
func (r *ExecRunner) Run(argv ...string) (string, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	return r.run(cmd, strings.Join(argv, " "))
}

// RunShell executes script through the shell, with Run's semantics.
// Used only for the overlay bootstrap pipeline, which needs pipes and
// conditional execution.
func (r *ExecRunner) RunShell(script string) (string, error) {
	cmd := exec.Command("/bin/sh", "-c", script)
	return r.run(cmd, script)
}

// LookPath reports whether name resolves to an executable on PATH
func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

func (r *ExecRunner) run(cmd *exec.Cmd, text string) (string, error) {
	r.logger.Debug().Str("command", text).Msg("Executing command")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		errText := strings.TrimSpace(stderr.String())
		r.logger.Error().
			Str("command", text).
			Str("stderr", errText).
			Str("stack", string(debug.Stack())).
			Msg("Command failed")
		r.console.Error(errText)
		return "", errors.Wrapf(err, errors.ErrCommandRun,
			"error running command '%s': %s", text, errText)
	}

	if stdout.Len() > 0 {
		r.console.Print(stdout.String())
	}
	return stdout.String(), nil
}

var _ types.Runner = (*ExecRunner)(nil)
