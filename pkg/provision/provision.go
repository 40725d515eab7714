// Package provision holds the provisioning state machine. A persisted
// completion marker selects between the two terminal branches: the full
// first-run installation and the refresh-only update. All side effects on
// the system go through the injected types.Runner; all user interaction
// goes through the injected console.
package provision

import (
	"github.com/rs/zerolog"

	"github.com/crofth/ironup/pkg/config"
	"github.com/crofth/ironup/pkg/logging"
	"github.com/crofth/ironup/pkg/types"
	"github.com/crofth/ironup/pkg/ui"
)

// Provisioner drives a single provisioning run
type Provisioner struct {
	cfg     config.Config
	fs      types.FS
	runner  types.Runner
	console *ui.Console
	logger  zerolog.Logger
}

// New creates a provisioner for the given configuration and collaborators
func New(cfg config.Config, fsys types.FS, runner types.Runner, console *ui.Console) *Provisioner {
	return &Provisioner{
		cfg:     cfg,
		fs:      fsys,
		runner:  runner,
		console: console,
		logger:  logging.GetLogger("provision"),
	}
}

// Run selects the branch from the completion marker and executes it.
// The first error aborts the run; only the caller decides the exit code.
func (p *Provisioner) Run() error {
	if p.MarkerExists() {
		p.console.Info("Initial setup previously completed. Updating packages...")
		return p.UpdateSystem()
	}
	p.console.Info("Initial setup not detected. Proceeding with full installation.")
	return p.InitialSetup()
}

// InitialSetup performs the full first-run installation: apt packages,
// the Flathub remote and Flatpak applications, the overlay network
// bootstrap and join, the completion marker, and finally a reboot.
func (p *Provisioner) InitialSetup() error {
	if err := p.updateAndInstallPackages(p.MissingPackages()); err != nil {
		return err
	}
	if err := p.addFlathubRemote(); err != nil {
		return err
	}

	missing := MissingFlatpaks(p.installedFlatpakIDs(), p.cfg.FlatpakApps)
	if len(missing) > 0 {
		if err := p.installFlatpaks(missing); err != nil {
			return err
		}
	} else {
		p.console.Info("All required Flatpak apps are installed.")
	}

	if err := p.bootstrapOverlay(); err != nil {
		return err
	}
	if err := p.joinOverlayNetwork(); err != nil {
		return err
	}

	// Marker write failure is a warning: the machine is provisioned even
	// if the next run will redo the idempotent steps.
	p.writeMarker()

	if err := p.console.Pause("Initial setup complete. Press Enter to reboot..."); err != nil {
		return err
	}
	_, err := p.runner.Run("sudo", "reboot")
	return err
}

// UpdateSystem refreshes apt packages and Flatpak applications. It never
// touches the completion marker.
func (p *Provisioner) UpdateSystem() error {
	p.console.Info("Updating apt packages...")
	if _, err := p.runner.Run("sudo", "apt", "update"); err != nil {
		return err
	}
	if _, err := p.runner.Run("sudo", "apt", "upgrade", "-y"); err != nil {
		return err
	}

	p.console.Info("Updating Flatpak packages...")
	_, err := p.runner.Run("flatpak", "update", "-y")
	return err
}
