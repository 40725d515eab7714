package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/types"
)

// Override file names, tried in order under the user config directory.
var overrideFiles = []string{"config.toml", "config.yaml"}

// fileConfig is the subset of Config a user override file may replace.
// Pointer and slice fields distinguish "absent" from "set to empty".
type fileConfig struct {
	Host              *HostRequirement     `toml:"host" yaml:"host"`
	DesktopSubstrings []string             `toml:"desktop_substrings" yaml:"desktop_substrings"`
	Packages          []PackageRequirement `toml:"packages" yaml:"packages"`
	FlatpakApps       []FlatpakRequirement `toml:"flatpak_apps" yaml:"flatpak_apps"`
	FlathubRemote     *Remote              `toml:"flathub_remote" yaml:"flathub_remote"`
	Overlay           *Overlay             `toml:"overlay" yaml:"overlay"`
}

// Load builds the runtime configuration: built-in defaults for a binary
// at dir/name, overridden by $XDG_CONFIG_HOME/ironup/config.toml or
// config.yaml when one exists. A missing override file is not an error;
// an unreadable or unparsable one is.
func Load(fsys types.FS, dir, name string) (Config, error) {
	cfg := Default(dir, name)

	for _, filename := range overrideFiles {
		path := filepath.Join(xdg.ConfigHome, "ironup", filename)
		data, err := fsys.ReadFile(path)
		if err != nil {
			continue
		}

		var fc fileConfig
		if filepath.Ext(path) == ".toml" {
			err = toml.Unmarshal(data, &fc)
		} else {
			err = yaml.Unmarshal(data, &fc)
		}
		if err != nil {
			return Config{}, errors.Wrapf(err, errors.ErrConfigParse, "cannot parse config file %s", path)
		}

		merge(&cfg, fc)
		break
	}

	return cfg, nil
}

// merge applies the fields present in fc onto cfg.
func merge(cfg *Config, fc fileConfig) {
	if fc.Host != nil {
		cfg.Host = *fc.Host
	}
	if fc.DesktopSubstrings != nil {
		cfg.DesktopSubstrings = fc.DesktopSubstrings
	}
	if fc.Packages != nil {
		cfg.Packages = fc.Packages
	}
	if fc.FlatpakApps != nil {
		cfg.FlatpakApps = fc.FlatpakApps
	}
	if fc.FlathubRemote != nil {
		cfg.FlathubRemote = *fc.FlathubRemote
	}
	if fc.Overlay != nil {
		cfg.Overlay = *fc.Overlay
	}
}
