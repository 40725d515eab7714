// Package config builds the immutable configuration value used by every
// ironup component. It is constructed once at process start from built-in
// defaults plus an optional user override file and passed down explicitly;
// nothing in this package is mutated after Load returns.
package config

// HostRequirement is the exact os-release identity the host must report.
type HostRequirement struct {
	ID        string `toml:"id" yaml:"id"`
	VersionID string `toml:"version_id" yaml:"version_id"`
}

// PackageRequirement pairs an apt package with the executable name whose
// presence on PATH marks the package as installed.
type PackageRequirement struct {
	Package string `toml:"package" yaml:"package"`
	Probe   string `toml:"probe" yaml:"probe"`
}

// FlatpakRequirement pairs a friendly application name with its Flatpak
// application ID.
type FlatpakRequirement struct {
	Name  string `toml:"name" yaml:"name"`
	AppID string `toml:"app_id" yaml:"app_id"`
}

// Remote identifies a Flatpak remote repository.
type Remote struct {
	Name string `toml:"name" yaml:"name"`
	URL  string `toml:"url" yaml:"url"`
}

// Overlay holds the URLs used to bootstrap the overlay network client.
type Overlay struct {
	KeyURL       string `toml:"key_url" yaml:"key_url"`
	InstallerURL string `toml:"installer_url" yaml:"installer_url"`
}

// Config is the complete, immutable runtime configuration.
type Config struct {
	// ScriptDir is the directory the binary runs from; the marker file,
	// log directory and license file all live here.
	ScriptDir string

	// ScriptName is the binary's own filename, allowed by the hygiene check.
	ScriptName string

	LogDirName  string
	LicenseFile string
	LicenseURL  string
	MarkerFile  string

	// OSReleasePath is the key-value identity file checked by the gate.
	OSReleasePath string

	Host HostRequirement

	// DesktopSubstrings are matched against XDG_CURRENT_DESKTOP; any one
	// match satisfies the session check.
	DesktopSubstrings []string

	Packages      []PackageRequirement
	FlatpakApps   []FlatpakRequirement
	FlathubRemote Remote
	Overlay       Overlay
}

// Default returns the built-in configuration for a binary located in dir
// with the given filename.
func Default(dir, name string) Config {
	return Config{
		ScriptDir:     dir,
		ScriptName:    name,
		LogDirName:    "log",
		LicenseFile:   "GPLv3.txt",
		LicenseURL:    "https://www.gnu.org/licenses/gpl-3.0.txt",
		MarkerFile:    ".setup_complete",
		OSReleasePath: "/etc/os-release",
		Host: HostRequirement{
			ID:        "debian",
			VersionID: "12",
		},
		DesktopSubstrings: []string{"KDE", "Plasma"},
		Packages: []PackageRequirement{
			{Package: "curl", Probe: "curl"},
			{Package: "gpg", Probe: "gpg"},
			// some systems install pip as "pip" or "pip3"
			{Package: "pip", Probe: "pip"},
			{Package: "python3-pylsp", Probe: "pylsp"},
			{Package: "virt-manager", Probe: "virt-manager"},
			{Package: "screenfetch", Probe: "screenfetch"},
			{Package: "flatpak", Probe: "flatpak"},
			{Package: "plasma-discover-backend-flatpak", Probe: "plasma-discover-backend-flatpak"},
		},
		FlatpakApps: []FlatpakRequirement{
			{Name: "Discord", AppID: "com.discordapp.Discord"},
			{Name: "VLC", AppID: "org.videolan.VLC"},
			{Name: "RetroArch", AppID: "org.libretro.RetroArch"},
			{Name: "Prism Launcher", AppID: "org.prismlauncher.PrismLauncher"},
			{Name: "qBittorrent", AppID: "org.qbittorrent.qBittorrent"},
			{Name: "Flatseal", AppID: "com.github.tchx84.Flatseal"},
		},
		FlathubRemote: Remote{
			Name: "flathub",
			URL:  "https://dl.flathub.org/repo/flathub.flatpakrepo",
		},
		Overlay: Overlay{
			KeyURL:       "https://raw.githubusercontent.com/zerotier/ZeroTierOne/main/doc/contact%40zerotier.com.gpg",
			InstallerURL: "https://install.zerotier.com/",
		},
	}
}
