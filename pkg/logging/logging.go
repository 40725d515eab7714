// Package logging configures ironup's log sink. A timestamp-named file in
// the log directory receives every record at debug level in the fixed
// format "{timestamp} - {LEVEL} - {message}"; the console receives records
// at a verbosity-controlled level. At most three log files are retained:
// the oldest by modification time is evicted before a new one is created.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/crofth/ironup/pkg/errors"
	"github.com/crofth/ironup/pkg/types"
)

const (
	// MaxLogFiles is the retention bound for the log directory
	MaxLogFiles = 3

	// fileNameFormat names new log files at second granularity
	fileNameFormat = "20060102_150405"

	// lineTimeFormat is the timestamp rendering inside log lines
	lineTimeFormat = "2006-01-02 15:04:05"
)

// Setup rotates the log directory, creates a new timestamp-named log file
// and configures the global logger to write there at debug level, plus a
// pretty console writer on stderr at the verbosity-mapped level.
// It returns the path of the new log file for display to the user.
// A failure to evict an old log file is downgraded to a logged warning.
func Setup(fsys types.FS, logDir string, verbosity int) (string, error) {
	if err := fsys.MkdirAll(logDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrLogCreate, "failed to create log directory %s", logDir)
	}

	evicted, evictErr := Rotate(fsys, logDir)

	logPath := filepath.Join(logDir, time.Now().Format(fileNameFormat)+".log")
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrLogCreate, "failed to create log file %s", logPath)
	}

	fileWriter := zerolog.ConsoleWriter{
		Out:        file,
		NoColor:    true,
		TimeFormat: lineTimeFormat,
		FormatLevel: func(i interface{}) string {
			return fmt.Sprintf("- %s -", strings.ToUpper(fmt.Sprint(i)))
		},
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    false,
	}

	// The file sink always records at debug; the console only shows what
	// the verbosity asks for.
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	if verbosity > 2 {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	sinks := zerolog.MultiLevelWriter(
		zerolog.LevelWriterAdapter{Writer: fileWriter},
		&minLevelWriter{
			w:   zerolog.LevelWriterAdapter{Writer: consoleWriter},
			min: consoleLevel(verbosity),
		},
	)
	log.Logger = zerolog.New(sinks).With().Timestamp().Logger()

	if evictErr != nil {
		log.Warn().Err(evictErr).Msg("Could not remove old log file")
	}
	if evicted != "" {
		log.Debug().Str("evicted", evicted).Msg("Old log file removed")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logPath).Msg("Logger initialized")

	return logPath, nil
}

// Rotate enforces the retention bound on dir: when it already holds
// MaxLogFiles or more *.log files, the oldest by modification time is
// removed. It returns the evicted filename, if any; a removal failure is
// returned for the caller to downgrade to a warning.
func Rotate(fsys types.FS, dir string) (string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return "", err
	}

	type logFile struct {
		name    string
		modTime time.Time
	}
	var files []logFile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{name: entry.Name(), modTime: info.ModTime()})
	}

	if len(files) < MaxLogFiles {
		return "", nil
	}

	sort.Slice(files, func(i, j int) bool { return files[i].modTime.Before(files[j].modTime) })
	oldest := filepath.Join(dir, files[0].name)
	if err := fsys.Remove(oldest); err != nil {
		return "", err
	}
	return oldest, nil
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// consoleLevel maps the -v count to the console sink's minimum level
func consoleLevel(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// minLevelWriter drops records below min before they reach the wrapped sink
type minLevelWriter struct {
	w   zerolog.LevelWriter
	min zerolog.Level
}

func (w *minLevelWriter) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

func (w *minLevelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.min {
		return len(p), nil
	}
	return w.w.WriteLevel(level, p)
}
