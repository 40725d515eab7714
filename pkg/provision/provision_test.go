package provision_test

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crofth/ironup/pkg/config"
	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/provision"
	"github.com/crofth/ironup/pkg/testutil"
	"github.com/crofth/ironup/pkg/ui"
)

type fixture struct {
	cfg    config.Config
	fsys   *testutil.MemoryFS
	runner *testutil.RecordingRunner
	out    *bytes.Buffer
	p      *provision.Provisioner
}

// newFixture builds a provisioner over fakes. input feeds the interactive
// prompts: the network ID line and the pre-reboot Enter.
func newFixture(t *testing.T, input string) *fixture {
	t.Helper()

	cfg := config.Default("/setup", "ironup")
	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll("/setup", 0755))

	runner := testutil.NewRecordingRunner()
	// Everything installed by default; tests mark probes absent as needed.
	for _, req := range cfg.Packages {
		runner.Present[req.Probe] = true
	}

	out := &bytes.Buffer{}
	console := ui.New(strings.NewReader(input), out)

	return &fixture{
		cfg:    cfg,
		fsys:   fsys,
		runner: runner,
		out:    out,
		p:      provision.New(cfg, fsys, runner, console),
	}
}

func allInstalledOutput(cfg config.Config) string {
	var ids []string
	for _, app := range cfg.FlatpakApps {
		ids = append(ids, app.AppID)
	}
	return strings.Join(ids, "\n") + "\n"
}

func TestMissingPackages(t *testing.T) {
	f := newFixture(t, "")
	f.runner.Present["pylsp"] = false
	f.runner.Present["screenfetch"] = false

	missing := f.p.MissingPackages()
	assert.Equal(t, []string{"python3-pylsp", "screenfetch"}, missing)

	// Probing again with no state change yields the same set.
	assert.Equal(t, missing, f.p.MissingPackages())
}

func TestMissingFlatpaks(t *testing.T) {
	cfg := config.Default("/setup", "ironup")

	t.Run("superset installed means nothing missing", func(t *testing.T) {
		installed := map[string]bool{"org.extra.App": true}
		for _, app := range cfg.FlatpakApps {
			installed[app.AppID] = true
		}
		assert.Empty(t, provision.MissingFlatpaks(installed, cfg.FlatpakApps))
	})

	t.Run("absent ids are missing in table order", func(t *testing.T) {
		installed := map[string]bool{
			"com.discordapp.Discord": true,
			"org.videolan.VLC":       true,
		}
		missing := provision.MissingFlatpaks(installed, cfg.FlatpakApps)
		require.Len(t, missing, 4)
		assert.Equal(t, "RetroArch", missing[0].Name)
		assert.Equal(t, "Flatseal", missing[3].Name)
	})

	t.Run("empty installed set means everything missing", func(t *testing.T) {
		missing := provision.MissingFlatpaks(map[string]bool{}, cfg.FlatpakApps)
		assert.Len(t, missing, len(cfg.FlatpakApps))
	})
}

func TestRunSelectsUpdateWhenMarkerPresent(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, f.fsys.WriteFile("/setup/.setup_complete", []byte("done\n"), 0644))

	require.NoError(t, f.p.Run())

	assert.Equal(t, []string{
		"sudo apt update",
		"sudo apt upgrade -y",
		"flatpak update -y",
	}, f.runner.Commands)
	assert.Empty(t, f.runner.Scripts, "update branch never uses the shell")
}

func TestRunSelectsInitialSetupWhenMarkerAbsent(t *testing.T) {
	f := newFixture(t, "8056c2e21c000001\n\n")
	f.runner.Script("flatpak list --app --columns=application",
		testutil.ScriptedResult{Output: allInstalledOutput(f.cfg)})

	require.NoError(t, f.p.Run())

	// The refresh happens unconditionally, the install sub-step is skipped.
	assert.Equal(t, []string{
		"sudo apt update",
		"sudo apt upgrade -y",
		"flatpak remote-add --if-not-exists flathub https://dl.flathub.org/repo/flathub.flatpakrepo",
		"flatpak list --app --columns=application",
		"sudo zerotier-cli join 8056c2e21c000001",
		"sudo reboot",
	}, f.runner.Commands)

	require.Len(t, f.runner.Scripts, 1)
	assert.Contains(t, f.runner.Scripts[0], "gpg --import")
	assert.Contains(t, f.runner.Scripts[0], "sudo bash")

	// Marker written: the next run selects the update branch.
	assert.True(t, f.p.MarkerExists())
	assert.Contains(t, f.out.String(), "All required Flatpak apps are installed.")
}

func TestInitialSetupInstallsMissingSubsets(t *testing.T) {
	f := newFixture(t, "8056c2e21c000001\n\n")
	f.runner.Present["pylsp"] = false
	f.runner.Present["virt-manager"] = false
	f.runner.Script("flatpak list --app --columns=application",
		testutil.ScriptedResult{Output: "com.discordapp.Discord\norg.videolan.VLC\norg.libretro.RetroArch\norg.prismlauncher.PrismLauncher\norg.qbittorrent.qBittorrent\n"})

	require.NoError(t, f.p.InitialSetup())

	assert.True(t, f.runner.Ran("sudo apt install -y python3-pylsp virt-manager"))
	assert.True(t, f.runner.Ran("flatpak install flathub com.github.tchx84.Flatseal -y"))
	assert.False(t, f.runner.Ran("flatpak install flathub org.videolan.VLC -y"))
	assert.Contains(t, f.out.String(), "Missing Flatpak apps: Flatseal")
}

func TestCommandFailureAbortsImmediately(t *testing.T) {
	f := newFixture(t, "8056c2e21c000001\n\n")
	f.runner.Script("sudo apt update", testutil.ScriptedResult{
		Err: errors.Newf(errors.ErrCommandRun, "error running command 'sudo apt update': disk full"),
	})

	err := f.p.InitialSetup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// Nothing after the failing command executed.
	assert.Equal(t, []string{"sudo apt update"}, f.runner.Commands)
	assert.Empty(t, f.runner.Scripts)
	assert.False(t, f.p.MarkerExists())
}

func TestEmptyNetworkIDAborts(t *testing.T) {
	f := newFixture(t, "\n\n")
	f.runner.Script("flatpak list --app --columns=application",
		testutil.ScriptedResult{Output: allInstalledOutput(f.cfg)})

	err := f.p.InitialSetup()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyNetworkID))

	for _, cmd := range f.runner.Commands {
		assert.NotContains(t, cmd, "zerotier-cli join")
	}
	assert.False(t, f.runner.Ran("sudo reboot"))
	assert.False(t, f.p.MarkerExists())
}

func TestMarkerWriteFailureIsNonFatal(t *testing.T) {
	f := newFixture(t, "8056c2e21c000001\n\n")
	f.runner.Script("flatpak list --app --columns=application",
		testutil.ScriptedResult{Output: allInstalledOutput(f.cfg)})
	f.fsys.WithError("/setup/.setup_complete", fs.ErrPermission)

	require.NoError(t, f.p.InitialSetup())

	assert.True(t, f.runner.Ran("sudo reboot"), "run continues past the marker failure")
	assert.Contains(t, f.out.String(), "Unable to create marker file.")
}

func TestFlatpakListFailureTreatedAsEmptySet(t *testing.T) {
	f := newFixture(t, "8056c2e21c000001\n\n")
	f.runner.Script("flatpak list --app --columns=application", testutil.ScriptedResult{
		Err: errors.Newf(errors.ErrCommandRun, "error running command"),
	})

	require.NoError(t, f.p.InitialSetup())

	// With the installed set unknown, every requirement is (re)installed.
	for _, app := range f.cfg.FlatpakApps {
		assert.True(t, f.runner.Ran("flatpak install flathub "+app.AppID+" -y"), app.Name)
	}
}
