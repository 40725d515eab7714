package license_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crofth/ironup/pkg/config"
	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/license"
	"github.com/crofth/ironup/pkg/testutil"
	"github.com/crofth/ironup/pkg/ui"
)

func setup(t *testing.T, status int, body string) (config.Config, *testutil.MemoryFS, *ui.Console, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := config.Default("/setup", "ironup")
	cfg.LicenseURL = server.URL

	fsys := testutil.NewMemoryFS()
	require.NoError(t, fsys.MkdirAll("/setup", 0755))

	var out bytes.Buffer
	return cfg, fsys, ui.New(strings.NewReader(""), &out), &out
}

func TestEnsureDownloadsWhenMissing(t *testing.T) {
	cfg, fsys, console, out := setup(t, http.StatusOK, "GNU GENERAL PUBLIC LICENSE")

	require.NoError(t, license.Ensure(fsys, http.DefaultClient, cfg, console))

	data, err := fsys.ReadFile("/setup/GPLv3.txt")
	require.NoError(t, err)
	assert.Equal(t, "GNU GENERAL PUBLIC LICENSE", string(data))
	assert.Contains(t, out.String(), "Downloading")
}

func TestEnsureSkipsWhenPresent(t *testing.T) {
	cfg, fsys, console, out := setup(t, http.StatusOK, "should not be fetched")
	require.NoError(t, fsys.WriteFile("/setup/GPLv3.txt", []byte("existing"), 0644))

	require.NoError(t, license.Ensure(fsys, http.DefaultClient, cfg, console))

	data, err := fsys.ReadFile("/setup/GPLv3.txt")
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
	assert.Empty(t, out.String())
}

func TestEnsureFailsOnBadStatus(t *testing.T) {
	cfg, fsys, console, _ := setup(t, http.StatusNotFound, "")

	err := license.Ensure(fsys, http.DefaultClient, cfg, console)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLicenseFetch))

	_, statErr := fsys.Stat("/setup/GPLv3.txt")
	assert.Error(t, statErr, "no file should be written on failure")
}
