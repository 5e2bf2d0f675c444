// Package transfer executes planned file copies and moves with cooperative
// cancellation and best-effort undo.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// ErrCopyFailed indicates a file copy operation failed.
	ErrCopyFailed = errors.New("failed to copy file")

	// ErrMoveFailed indicates a file move operation failed.
	ErrMoveFailed = errors.New("failed to move file")

	// ErrDestinationExists indicates the destination file already exists.
	ErrDestinationExists = errors.New("destination file already exists")
)

// Mode selects whether sources are preserved or consumed.
type Mode int

const (
	// Copy leaves source files in place.
	Copy Mode = iota
	// Move deletes source files after they reach the destination.
	Move
)

type item struct {
	from string
	to   string
}

// Engine runs registered transfers in order. It is single-use: register
// transfers with Add, run them once with Run, and optionally revert with
// Undo. Not safe for concurrent use.
type Engine struct {
	mode  Mode
	items []item
	done  []item // transfers that reached the destination, in order
	log   *slog.Logger
}

// New creates an engine. A nil logger falls back to slog.Default.
func New(mode Mode, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{mode: mode, log: log}
}

// Add registers a transfer. Transfers run in registration order.
func (e *Engine) Add(from, to string) {
	e.items = append(e.items, item{from: from, to: to})
}

// Written returns how many files have reached the destination so far.
func (e *Engine) Written() int {
	return len(e.done)
}

// Run executes the registered transfers sequentially. The context is
// checked between files; a cancelled context stops before the next file
// and returns the context error. Files already written stay on disk for
// the caller to undo or keep.
func (e *Engine) Run(ctx context.Context) error {
	for _, it := range e.items {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		if e.mode == Move {
			err = moveFile(it.from, it.to)
		} else {
			_, err = CopyFile(it.from, it.to)
		}
		if err != nil {
			return err
		}

		e.done = append(e.done, it)
		e.log.Debug("file transferred", "from", it.from, "to", it.to)
	}
	return nil
}

// Undo reverts completed transfers in reverse order: copied files are
// removed, moved files are moved back to their source. Best effort;
// returns false if any revert failed.
func (e *Engine) Undo() bool {
	ok := true
	for i := len(e.done) - 1; i >= 0; i-- {
		it := e.done[i]
		var err error
		if e.mode == Move {
			err = moveFile(it.to, it.from)
		} else {
			err = os.Remove(it.to)
		}
		if err != nil {
			e.log.Warn("undo failed", "path", it.to, "error", err)
			ok = false
		}
	}
	e.done = nil
	return ok
}

// CopyFile copies a file from src to dst, creating the destination
// directory if needed. Returns ErrDestinationExists if dst already exists.
func CopyFile(src, dst string) (int64, error) {
	if _, err := os.Stat(dst); err == nil {
		return 0, ErrDestinationExists
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory: %v", ErrCopyFailed, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: open source: %v", ErrCopyFailed, err)
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("%w: create destination: %v", ErrCopyFailed, err)
	}
	defer func() { _ = dstFile.Close() }()

	size, err := io.Copy(dstFile, srcFile)
	if err != nil {
		// Clean up partial file on error
		_ = os.Remove(dst)
		return 0, fmt.Errorf("%w: copy content: %v", ErrCopyFailed, err)
	}

	if err := dstFile.Sync(); err != nil {
		return 0, fmt.Errorf("%w: sync: %v", ErrCopyFailed, err)
	}

	return size, nil
}

// moveFile renames src to dst, falling back to copy-and-remove when rename
// fails (cross-device moves).
func moveFile(src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		return ErrDestinationExists
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("%w: create directory: %v", ErrMoveFailed, err)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	if _, err := CopyFile(src, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMoveFailed, err)
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("%w: remove source: %v", ErrMoveFailed, err)
	}
	return nil
}
