package logging_test

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crofth/ironup/pkg/filesystem"
	"github.com/crofth/ironup/pkg/logging"
	"github.com/crofth/ironup/pkg/testutil"
)

func writeLogs(t *testing.T, fsys *testutil.MemoryFS, dir string, names ...string) {
	t.Helper()
	require.NoError(t, fsys.MkdirAll(dir, 0755))
	// Spread modification times one minute apart, oldest first.
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, fsys.WriteFile(path, []byte("log"), 0644))
		fsys.SetModTime(path, base.Add(time.Duration(i)*time.Minute))
	}
}

func listNames(t *testing.T, fsys *testutil.MemoryFS, dir string) []string {
	t.Helper()
	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestRotate(t *testing.T) {
	t.Run("below bound removes nothing", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()
		writeLogs(t, fsys, "/setup/log", "a.log", "b.log")

		evicted, err := logging.Rotate(fsys, "/setup/log")
		require.NoError(t, err)
		assert.Empty(t, evicted)
		assert.Len(t, listNames(t, fsys, "/setup/log"), 2)
	})

	t.Run("at bound removes the oldest by mtime", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()
		writeLogs(t, fsys, "/setup/log", "oldest.log", "middle.log", "newest.log")

		evicted, err := logging.Rotate(fsys, "/setup/log")
		require.NoError(t, err)
		assert.Equal(t, "/setup/log/oldest.log", evicted)
		assert.ElementsMatch(t, []string{"middle.log", "newest.log"}, listNames(t, fsys, "/setup/log"))
	})

	t.Run("non-log entries are ignored", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()
		writeLogs(t, fsys, "/setup/log", "a.log", "b.log")
		require.NoError(t, fsys.WriteFile("/setup/log/README", []byte("x"), 0644))

		evicted, err := logging.Rotate(fsys, "/setup/log")
		require.NoError(t, err)
		assert.Empty(t, evicted)
	})

	t.Run("removal failure is returned, not fatal", func(t *testing.T) {
		fsys := testutil.NewMemoryFS()
		writeLogs(t, fsys, "/setup/log", "a.log", "b.log", "c.log")
		fsys.WithError("/setup/log/a.log", fs.ErrPermission)

		evicted, err := logging.Rotate(fsys, "/setup/log")
		assert.Empty(t, evicted)
		assert.Error(t, err)
	})
}

// TestRetentionInvariant simulates N runs and checks the directory never
// holds more than MaxLogFiles files, always the most recent ones.
func TestRetentionInvariant(t *testing.T) {
	fsys := testutil.NewMemoryFS()
	dir := "/setup/log"
	require.NoError(t, fsys.MkdirAll(dir, 0755))

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for n := 1; n <= 6; n++ {
		_, err := logging.Rotate(fsys, dir)
		require.NoError(t, err)

		name := fmt.Sprintf("run%d.log", n)
		path := filepath.Join(dir, name)
		require.NoError(t, fsys.WriteFile(path, []byte("log"), 0644))
		fsys.SetModTime(path, base.Add(time.Duration(n)*time.Minute))

		names := listNames(t, fsys, dir)
		want := n
		if want > logging.MaxLogFiles {
			want = logging.MaxLogFiles
		}
		assert.Len(t, names, want, "after run %d", n)
		assert.Contains(t, names, name, "newest file must survive run %d", n)
	}

	// After six runs only the three most recent remain.
	assert.ElementsMatch(t, []string{"run4.log", "run5.log", "run6.log"}, listNames(t, fsys, dir))
}

func TestSetup(t *testing.T) {
	// Setup opens a real file handle for the sink, so it runs against a
	// temp dir on the OS filesystem rather than the memory FS.
	logDir := filepath.Join(t.TempDir(), "log")

	logPath, err := logging.Setup(filesystem.NewOS(), logDir, 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(logPath, logDir))
	assert.True(t, strings.HasSuffix(logPath, ".log"))

	logger := logging.GetLogger("test")
	logger.Debug().Msg("hello from the test")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "- DEBUG -")
	assert.Contains(t, content, "hello from the test")
}
