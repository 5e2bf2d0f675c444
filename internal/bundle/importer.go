// Package bundle imports loose multi-file disc images into self-contained
// bundle directories.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vmunix/cdbundle/internal/textenc"
)

// Engine is the transfer engine the importer drives. It performs the actual
// byte copies/moves; the importer only plans and supervises them.
type Engine interface {
	// Add registers a transfer. Transfers run in registration order.
	Add(from, to string)

	// Run executes registered transfers, checking the context between files.
	Run(ctx context.Context) error

	// Undo reverts whatever Run has written so far. Best effort.
	Undo() bool

	// Written returns how many files have reached the destination.
	Written() int
}

// Result describes a completed import.
type Result struct {
	BundlePath  string
	CuePath     string // path of the finalized cue sheet inside the bundle
	Files       int
	Rewritten   int          // references whose text changed
	Suggestions []Suggestion // diagnostics for referenced files not found on disk
}

// Importer runs one import operation. It is single-use: construct, call
// Run once, discard. Cancellation is cooperative via the context passed to
// Run, polled before parsing, before transfer registration, before
// execution, and by the engine between files.
type Importer struct {
	req    Request
	engine Engine
	log    *slog.Logger

	// set before execution so rollback can tell a bundle directory this
	// attempt created apart from one that was already there
	bundleExisted bool
}

// New creates an importer for one request. A nil logger falls back to
// slog.Default.
func New(req Request, engine Engine, log *slog.Logger) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{req: req, engine: engine, log: log}
}

// Run executes the import: parse the cue sheet, build the transfer plan,
// execute transfers, rewrite and finalize the cue. Any failure or
// cancellation rolls back the partially written bundle before Run returns,
// so the caller never observes a failure with a half-built bundle on disk
// (copy mode; move mode relies on the engine's move semantics to protect
// the only copy of the source data).
func (i *Importer) Run(ctx context.Context) (*Result, error) {
	bundlePath := ImportedPath(i.req)
	if bundlePath == "" {
		return nil, fmt.Errorf("import request missing cue path or destination parent")
	}
	if !ValidLetter(i.req.Drive.Letter) {
		return nil, fmt.Errorf("drive letter must be a single character, got %q", i.req.Drive.Letter)
	}

	i.log.Info("import started",
		"drive", i.req.Drive.Title,
		"cue", i.req.Drive.CuePath,
		"bundle", bundlePath,
		"copy", i.req.CopyFiles)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cueText, err := i.readCue()
	if err != nil {
		return nil, err
	}

	plan, err := BuildPlan(cueText, filepath.Dir(i.req.Drive.CuePath), bundlePath)
	if err != nil {
		if errors.Is(err, ErrCueParse) {
			return nil, fmt.Errorf("%w: %q contains no usable file references; it may be in an unsupported format", ErrCueParse, i.req.Drive.Title)
		}
		return nil, err
	}
	i.log.Debug("plan built", "files", len(plan.Transfers), "rewrites", len(plan.Rewrites))

	suggestions := i.checkSources(plan)

	_, statErr := os.Lstat(bundlePath)
	i.bundleExisted = statErr == nil

	// Poll points are a contract: once past here the engine may write.
	if err := ctx.Err(); err != nil {
		return nil, i.failed(bundlePath, err)
	}
	for _, tr := range plan.Transfers {
		i.engine.Add(tr.Source, tr.Dest)
	}

	if err := ctx.Err(); err != nil {
		return nil, i.failed(bundlePath, err)
	}
	if err := i.engine.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, i.failed(bundlePath, ctx.Err())
		}
		return nil, i.failed(bundlePath, fmt.Errorf("%w: %w", ErrTransferFailed, err))
	}

	if err := i.finalize(cueText, plan, bundlePath); err != nil {
		return nil, i.failed(bundlePath, err)
	}

	i.log.Info("import complete", "bundle", bundlePath, "files", len(plan.Transfers))

	return &Result{
		BundlePath:  bundlePath,
		CuePath:     filepath.Join(bundlePath, CueFileName),
		Files:       len(plan.Transfers),
		Rewritten:   len(plan.Rewrites),
		Suggestions: suggestions,
	}, nil
}

// readCue loads and decodes the source cue sheet.
func (i *Importer) readCue() (string, error) {
	text, err := textenc.ReadFile(i.req.Drive.CuePath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	return text, nil
}

// checkSources logs a fuzzy-match suggestion for every planned source that
// does not exist. The plan is never altered; the engine surfaces the real
// error during execution.
func (i *Importer) checkSources(plan *TransferPlan) []Suggestion {
	var suggestions []Suggestion
	for _, tr := range plan.Transfers {
		if _, err := os.Stat(tr.Source); err == nil {
			continue
		}
		s, ok := SuggestName(filepath.Base(tr.Source), filepath.Dir(tr.Source))
		if !ok {
			continue
		}
		suggestions = append(suggestions, s)
		i.log.Warn("referenced file not found",
			"missing", s.Missing,
			"closest", s.Candidate,
			"score", s.Score)
	}
	return suggestions
}

// finalize rewrites the cue references to the flattened layout, persists
// the result as the bundle's canonical cue file, and in move mode deletes
// the original. A bundle without its cue sheet is unusable, so a write
// failure is fatal; failing to delete the original is not.
func (i *Importer) finalize(cueText string, plan *TransferPlan, bundlePath string) error {
	rewritten := plan.RewriteCue(cueText)

	dest := filepath.Join(bundlePath, CueFileName)
	if err := os.MkdirAll(bundlePath, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrCueWrite, err)
	}
	if err := os.WriteFile(dest, []byte(rewritten), 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrCueWrite, err)
	}

	if !i.req.CopyFiles {
		if err := os.Remove(i.req.Drive.CuePath); err != nil {
			i.log.Warn("could not remove original cue sheet", "path", i.req.Drive.CuePath, "error", err)
		}
	}
	return nil
}

// failed rolls back the destination bundle and passes the terminal error
// through, so cleanup always runs before the caller observes failure.
func (i *Importer) failed(bundlePath string, err error) error {
	i.rollback(bundlePath)
	return err
}

// rollback removes the partially created bundle. Only copy mode cleans the
// destination: in move mode the bundle may hold the only remaining copy of
// the source data, so it is left in place. The bundle directory is removed
// whenever this attempt wrote into it or created it, so a failure before
// the first completed write still leaves no empty bundle behind. Deletion
// failures are swallowed to avoid masking the original error.
func (i *Importer) rollback(bundlePath string) bool {
	if !i.req.CopyFiles {
		return false
	}

	wrote := i.engine.Written() > 0
	if wrote {
		i.engine.Undo()
	}
	if !wrote && i.bundleExisted {
		return false
	}
	if _, err := os.Lstat(bundlePath); err != nil {
		return false
	}

	if err := os.RemoveAll(bundlePath); err != nil {
		i.log.Warn("rollback incomplete", "bundle", bundlePath, "error", err)
		return false
	}
	i.log.Info("rolled back partial bundle", "bundle", bundlePath)
	return true
}
