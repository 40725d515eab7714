// Package gate implements the precondition checks that must pass before
// ironup touches the system or initializes logging. Gate failures are
// printed to the console only; nothing here writes a log entry.
package gate

import (
	"os"
	"strings"

	"github.com/crofth/ironup/pkg/config"
	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/types"
)

// Gate validates the host before any side effect
type Gate struct {
	cfg    config.Config
	fs     types.FS
	getenv func(string) string
}

// New creates a gate reading the real process environment
func New(cfg config.Config, fsys types.FS) *Gate {
	return &Gate{cfg: cfg, fs: fsys, getenv: os.Getenv}
}

// NewWithEnv creates a gate with an injected environment lookup, for tests
func NewWithEnv(cfg config.Config, fsys types.FS, getenv func(string) string) *Gate {
	return &Gate{cfg: cfg, fs: fsys, getenv: getenv}
}

// Check runs all precondition checks in order and returns the first failure
func (g *Gate) Check() error {
	if err := g.VerifyDirectory(); err != nil {
		return err
	}
	if err := g.VerifyHost(); err != nil {
		return err
	}
	return g.VerifySession()
}

// VerifyDirectory ensures the script directory's non-hidden entries are a
// subset of {the binary itself, the log directory name, the license file}.
// The log entry is matched by name only, not checked to be a directory.
func (g *Gate) VerifyDirectory() error {
	entries, err := g.fs.ReadDir(g.cfg.ScriptDir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirUnclean, "cannot list script directory %s", g.cfg.ScriptDir)
	}

	allowed := map[string]bool{
		g.cfg.ScriptName:  true,
		g.cfg.LogDirName:  true,
		g.cfg.LicenseFile: true,
	}

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !allowed[name] {
			return errors.Newf(errors.ErrDirUnclean,
				"the folder must contain only this program, %q and (optionally) a folder named %q; found %q",
				g.cfg.LicenseFile, g.cfg.LogDirName, name)
		}
	}
	return nil
}

// VerifyHost checks the os-release identity file against the required
// distribution ID and version. An unreadable or malformed file is a gate
// failure, not a crash.
func (g *Gate) VerifyHost() error {
	data, err := g.fs.ReadFile(g.cfg.OSReleasePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrHostInfoRead,
			"unable to read %s; this program requires %s %s",
			g.cfg.OSReleasePath, g.cfg.Host.ID, g.cfg.Host.VersionID)
	}

	info := parseOSRelease(data)
	if !strings.EqualFold(info["ID"], g.cfg.Host.ID) || info["VERSION_ID"] != g.cfg.Host.VersionID {
		return errors.Newf(errors.ErrHostMismatch,
			"this program must be run on %s %s", g.cfg.Host.ID, g.cfg.Host.VersionID)
	}
	return nil
}

// VerifySession checks that the reported desktop environment contains one
// of the required substrings.
func (g *Gate) VerifySession() error {
	desktop := g.getenv("XDG_CURRENT_DESKTOP")
	for _, want := range g.cfg.DesktopSubstrings {
		if strings.Contains(desktop, want) {
			return nil
		}
	}
	return errors.Newf(errors.ErrSessionMismatch,
		"this program must be run inside a %s desktop session",
		strings.Join(g.cfg.DesktopSubstrings, " or "))
}

// parseOSRelease extracts KEY=value pairs, stripping surrounding quotes.
// Lines without "=" are ignored.
func parseOSRelease(data []byte) map[string]string {
	info := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		info[key] = strings.Trim(val, `"`)
	}
	return info
}
