// Package types defines the shared interfaces used across ironup.
package types

import "io/fs"

// FS abstracts filesystem operations for testing
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
}

// Runner executes external commands. It is the only boundary through
// which ironup reaches the package managers, the overlay client, and
// the reboot command, so tests can substitute a recording fake.
type Runner interface {
	// Run executes argv as a single command and returns its captured
	// standard output. A non-zero exit is returned as an error carrying
	// the command text and captured standard error.
	Run(argv ...string) (string, error)

	// RunShell executes script through the shell. Same output and
	// error semantics as Run.
	RunShell(script string) (string, error)

	// LookPath reports whether an executable with the given name is
	// reachable through PATH.
	LookPath(name string) bool
}
