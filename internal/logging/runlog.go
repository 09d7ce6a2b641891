package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// runLogPermissions is the file mode for run log files.
const runLogPermissions = 0644

// NewRunLogger creates a logger that writes to stderr and, when path is
// non-empty, mirrors every record to an append-only log file with
// timestamps. The returned closer owns the file; callers close it when
// the run ends. With an empty path it behaves like New and the closer is
// a no-op.
func NewRunLogger(level, path string) (*log.Logger, io.Closer, error) {
	if path == "" {
		return New(level), nopCloser{}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, runLogPermissions)
	if err != nil {
		return nil, nil, fmt.Errorf("open run log: %w", err)
	}

	logger := log.NewWithOptions(io.MultiWriter(os.Stderr, file), log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	setLoggerLevel(logger, strings.ToLower(level))

	return logger, file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
