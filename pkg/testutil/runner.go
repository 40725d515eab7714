package testutil

import "strings"

// ScriptedResult is what a RecordingRunner returns for a matched command.
type ScriptedResult struct {
	Output string
	Err    error
}

// RecordingRunner implements types.Runner. It records every invocation
// and returns scripted results keyed by the full command text, so tests
// can assert on exactly which external commands a code path issued
// without touching real package managers.
type RecordingRunner struct {
	// Commands holds the text of every Run invocation, in order.
	Commands []string

	// Scripts holds the text of every RunShell invocation, in order.
	Scripts []string

	// Results maps command text to a scripted result. Unmatched
	// commands succeed with empty output.
	Results map[string]ScriptedResult

	// Present is consulted by LookPath; absent names report false.
	Present map[string]bool
}

// NewRecordingRunner creates a runner where every command succeeds with
// empty output until scripted otherwise.
func NewRecordingRunner() *RecordingRunner {
	return &RecordingRunner{
		Results: make(map[string]ScriptedResult),
		Present: make(map[string]bool),
	}
}

// Script registers a result for the given command text.
func (r *RecordingRunner) Script(command string, result ScriptedResult) {
	r.Results[command] = result
}

func (r *RecordingRunner) Run(argv ...string) (string, error) {
	command := strings.Join(argv, " ")
	r.Commands = append(r.Commands, command)
	res := r.Results[command]
	return res.Output, res.Err
}

func (r *RecordingRunner) RunShell(script string) (string, error) {
	r.Scripts = append(r.Scripts, script)
	res := r.Results[script]
	return res.Output, res.Err
}

func (r *RecordingRunner) LookPath(name string) bool {
	return r.Present[name]
}

// Ran reports whether a command with the given text was issued.
func (r *RecordingRunner) Ran(command string) bool {
	for _, c := range r.Commands {
		if c == command {
			return true
		}
	}
	return false
}
