package provision

import (
	"fmt"
	"strings"
)

// MissingPackages returns the apt packages whose probe executable is not
// on PATH, in requirement-table order. Probing twice with no system change
// yields the same set.
func (p *Provisioner) MissingPackages() []string {
	var missing []string
	for _, req := range p.cfg.Packages {
		if !p.runner.LookPath(req.Probe) {
			missing = append(missing, req.Package)
		}
	}
	return missing
}

// updateAndInstallPackages refreshes the package index and upgrades
// unconditionally, then installs the missing subset in one invocation.
// The install sub-step is skipped when nothing is missing.
func (p *Provisioner) updateAndInstallPackages(missing []string) error {
	p.console.Info("Running 'sudo apt update'...")
	if _, err := p.runner.Run("sudo", "apt", "update"); err != nil {
		return err
	}

	p.console.Info("Running 'sudo apt upgrade -y'...")
	if _, err := p.runner.Run("sudo", "apt", "upgrade", "-y"); err != nil {
		return err
	}

	if len(missing) == 0 {
		p.console.Info("All required apt packages are installed.")
		return nil
	}

	p.console.Info(fmt.Sprintf("Installing missing apt packages: %s", strings.Join(missing, ", ")))
	argv := append([]string{"sudo", "apt", "install", "-y"}, missing...)
	_, err := p.runner.Run(argv...)
	return err
}
