// Package commit materializes pending files on disk. It is the effectful
// half of the extraction pipeline: the scan package decides what to write,
// this package writes it, isolating per-file failures so one unwritable
// target never loses the rest of a multi-file extraction.
package commit

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/unfence/pkg/extract"
)

// Failure records one file that could not be committed.
type Failure struct {
	Path string
	Err  error
}

// Result summarizes one commit pass.
type Result struct {
	// Written lists the full paths committed, in input order.
	Written []string

	// Failures lists files that could not be committed.
	Failures []Failure
}

// Ok reports whether every pending file was committed.
func (r Result) Ok() bool {
	return len(r.Failures) == 0
}

// Committer writes pending files through an FS.
type Committer struct {
	fs     FS
	logger *log.Logger
}

// New creates a Committer. A nil logger disables logging.
func New(fs FS, logger *log.Logger) *Committer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Committer{fs: fs, logger: logger}
}

// CommitAll writes every pending file, creating target directories as
// needed. Later entries for the same path overwrite earlier ones
// (last-write-wins). A directory or write failure is logged and recorded,
// and the remaining files are still committed; only context cancellation
// aborts the pass.
func (c *Committer) CommitAll(ctx context.Context, files []extract.PendingFile) Result {
	var result Result

	for _, f := range files {
		select {
		case <-ctx.Done():
			result.Failures = append(result.Failures, Failure{Path: f.Path.FullPath(), Err: ctx.Err()})
			return result
		default:
		}

		if err := c.commit(ctx, f); err != nil {
			c.logger.Error("commit failed", "path", f.Path.FullPath(), "error", err)
			result.Failures = append(result.Failures, Failure{Path: f.Path.FullPath(), Err: err})
			continue
		}

		full := f.Path.FullPath()
		c.logger.Info("file written", "path", full, "bytes", len(f.Content))
		result.Written = append(result.Written, full)
	}

	return result
}

// commit writes one pending file.
func (c *Committer) commit(ctx context.Context, f extract.PendingFile) error {
	if err := c.fs.MkdirAll(f.Path.Dir); err != nil {
		return err
	}
	return c.fs.WriteFile(ctx, f.Path.FullPath(), []byte(f.Content))
}
