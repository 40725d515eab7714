package main

import (
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/crofth/ironup/pkg/config"
	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/filesystem"
	"github.com/crofth/ironup/pkg/gate"
	"github.com/crofth/ironup/pkg/license"
	"github.com/crofth/ironup/pkg/logging"
	"github.com/crofth/ironup/pkg/provision"
	"github.com/crofth/ironup/pkg/runner"
	"github.com/crofth/ironup/pkg/ui"
)

// runSetup is the whole control flow of a provisioning run: disclaimer,
// license bootstrap, precondition gate, log sink, then the state machine.
// Everything up to the log sink is "pre-log": failures there are printed
// to the console only and never logged.
func runSetup(cmd *cobra.Command, args []string) error {
	console := ui.New(os.Stdin, os.Stdout)

	console.Markdown(MsgDisclaimer)
	if err := console.Pause("Press Enter to continue..."); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		console.Error("cannot determine program location: " + err.Error())
		return err
	}

	fsys := filesystem.NewOS()

	cfg, err := config.Load(fsys, filepath.Dir(exe), filepath.Base(exe))
	if err != nil {
		console.Error(errors.Message(err))
		return err
	}

	if err := license.Ensure(fsys, http.DefaultClient, cfg, console); err != nil {
		console.Error(errors.Message(err))
		return err
	}

	if err := gate.New(cfg, fsys).Check(); err != nil {
		console.Error(errors.Message(err))
		return err
	}

	logPath, err := logging.Setup(fsys, filepath.Join(cfg.ScriptDir, cfg.LogDirName), verbosity)
	if err != nil {
		console.Error(errors.Message(err))
		return err
	}
	console.Info("Logging to: " + logPath)

	p := provision.New(cfg, fsys, runner.New(console), console)
	if err := p.Run(); err != nil {
		log.Error().
			Err(err).
			Str("stack", string(debug.Stack())).
			Msg("An unexpected error occurred")
		console.Error("An unexpected error occurred. Please check the log file for details.")
		return err
	}

	return nil
}
