// Package license makes sure the GPLv3 text ships next to the binary,
// downloading it on first run. This happens before the precondition gate
// so the hygiene check can treat the file as an allowed entry.
package license

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/crofth/ironup/pkg/config"
	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/types"
	"github.com/crofth/ironup/pkg/ui"
)

// Ensure checks that the license file exists in the script directory and
// downloads it from the configured URL when missing. A download failure is
// fatal to the run.
func Ensure(fsys types.FS, client *http.Client, cfg config.Config, console *ui.Console) error {
	path := filepath.Join(cfg.ScriptDir, cfg.LicenseFile)
	if _, err := fsys.Stat(path); err == nil {
		return nil
	}

	console.Info(fmt.Sprintf("%s not found. Downloading from %s ...", cfg.LicenseFile, cfg.LicenseURL))

	resp, err := client.Get(cfg.LicenseURL)
	if err != nil {
		return errors.Wrapf(err, errors.ErrLicenseFetch, "error downloading %s", cfg.LicenseFile)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrLicenseFetch,
			"error downloading %s: unexpected status %s", cfg.LicenseFile, resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, errors.ErrLicenseFetch, "error downloading %s", cfg.LicenseFile)
	}

	if err := fsys.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrLicenseFetch, "error saving %s", cfg.LicenseFile)
	}

	console.Info(fmt.Sprintf("Downloaded %s successfully.", cfg.LicenseFile))
	return nil
}
