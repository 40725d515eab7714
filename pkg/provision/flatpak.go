package provision

import (
	"fmt"
	"strings"

	"github.com/crofth/ironup/pkg/config"
)

// addFlathubRemote registers the application repository. The underlying
// command has if-not-exists semantics, so reruns are harmless.
func (p *Provisioner) addFlathubRemote() error {
	p.console.Info("Adding Flatpak Flathub repository (if not already added)...")
	_, err := p.runner.Run("flatpak", "remote-add", "--if-not-exists",
		p.cfg.FlathubRemote.Name, p.cfg.FlathubRemote.URL)
	return err
}

// installedFlatpakIDs queries the live set of installed application IDs.
// A query failure is logged and treated as an empty set, so every
// requirement is installed rather than aborting the run.
func (p *Provisioner) installedFlatpakIDs() map[string]bool {
	out, err := p.runner.Run("flatpak", "list", "--app", "--columns=application")
	if err != nil {
		p.logger.Error().Err(err).Msg("Error listing Flatpak apps")
		return map[string]bool{}
	}

	ids := make(map[string]bool)
	for _, id := range strings.Fields(out) {
		ids[id] = true
	}
	return ids
}

// MissingFlatpaks returns the requirements whose application ID is absent
// from installed, in requirement-table order.
func MissingFlatpaks(installed map[string]bool, reqs []config.FlatpakRequirement) []config.FlatpakRequirement {
	var missing []config.FlatpakRequirement
	for _, req := range reqs {
		if !installed[req.AppID] {
			missing = append(missing, req)
		}
	}
	return missing
}

// installFlatpaks installs each missing application individually, in
// table order.
func (p *Provisioner) installFlatpaks(apps []config.FlatpakRequirement) error {
	names := make([]string, 0, len(apps))
	for _, app := range apps {
		names = append(names, app.Name)
	}
	p.console.Info(fmt.Sprintf("Missing Flatpak apps: %s", strings.Join(names, ", ")))

	for _, app := range apps {
		p.console.Info(fmt.Sprintf("Installing Flatpak app: %s (%s)...", app.Name, app.AppID))
		if _, err := p.runner.Run("flatpak", "install", p.cfg.FlathubRemote.Name, app.AppID, "-y"); err != nil {
			return err
		}
	}
	return nil
}
