package provision

import "path/filepath"

// markerContent is informational only; existence is the semantic signal.
const markerContent = "Setup completed successfully.\n"

func (p *Provisioner) markerPath() string {
	return filepath.Join(p.cfg.ScriptDir, p.cfg.MarkerFile)
}

// MarkerExists reports whether first-run provisioning has completed on
// this machine. The marker is never removed once written.
func (p *Provisioner) MarkerExists() bool {
	_, err := p.fs.Stat(p.markerPath())
	return err == nil
}

// writeMarker persists the completion marker. A write failure is reported
// as a warning and logged; the run continues.
func (p *Provisioner) writeMarker() {
	if err := p.fs.WriteFile(p.markerPath(), []byte(markerContent), 0644); err != nil {
		p.logger.Error().Err(err).Msg("Failed to create marker file")
		p.console.Warning("Unable to create marker file.")
	}
}
