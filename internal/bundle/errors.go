// internal/bundle/errors.go
package bundle

import "errors"

var (
	// ErrSourceRead indicates the cue sheet could not be read or decoded.
	ErrSourceRead = errors.New("failed to read cue sheet")

	// ErrCueParse indicates the cue sheet referenced no data files.
	ErrCueParse = errors.New("no data files referenced")

	// ErrDuplicateDest indicates two referenced files flatten to the same
	// destination filename.
	ErrDuplicateDest = errors.New("duplicate destination filename")

	// ErrTransferFailed indicates the transfer engine reported an error.
	ErrTransferFailed = errors.New("file transfer failed")

	// ErrCueWrite indicates the rewritten cue sheet could not be persisted.
	ErrCueWrite = errors.New("failed to write cue sheet")
)
