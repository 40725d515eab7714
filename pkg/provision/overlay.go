package provision

import (
	"fmt"

	"github.com/crofth/ironup/pkg/errors"
)

// bootstrapOverlay imports the overlay client's signing key and pipes the
// installer into a privileged shell, but only when the gpg-checked fetch
// produced output. The two steps have to run as one shell pipeline.
func (p *Provisioner) bootstrapOverlay() error {
	p.console.Info("Importing ZeroTier GPG key and installing ZeroTier...")
	script := fmt.Sprintf(
		"curl -s '%s' | gpg --import && "+
			`if z=$(curl -s '%s' | gpg); then echo "$z" | sudo bash; fi`,
		p.cfg.Overlay.KeyURL, p.cfg.Overlay.InstallerURL)
	_, err := p.runner.RunShell(script)
	return err
}

// joinOverlayNetwork prompts for a network ID and joins it. An empty ID
// aborts the run before any join command is issued.
func (p *Provisioner) joinOverlayNetwork() error {
	networkID, err := p.console.Ask("Enter the ZeroTier network ID to join: ")
	if err != nil {
		return err
	}
	if networkID == "" {
		p.console.Error("No ZeroTier network ID provided. Exiting.")
		return errors.New(errors.ErrEmptyNetworkID, "no ZeroTier network ID provided")
	}

	p.console.Info(fmt.Sprintf("Joining ZeroTier network '%s'...", networkID))
	_, err = p.runner.Run("sudo", "zerotier-cli", "join", networkID)
	return err
}
