package bundle

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// BundleExt is the extension of every bundle directory. Other tooling
// locates bundles by it, so it is part of the on-disk contract.
const BundleExt = ".cdmedia"

// CueFileName is the canonical name of the rewritten cue sheet inside a
// bundle. Fixed so other tooling can find it without globbing.
const CueFileName = "tracks.cue"

// SourceDrive describes the disc image to import. Immutable for the
// duration of an import.
type SourceDrive struct {
	// CuePath is the absolute path to the image's cue sheet.
	CuePath string

	// Letter is an optional single-character drive-letter label.
	Letter string

	// Title is a human-readable name used in error messages.
	Title string
}

// Request configures one import operation.
type Request struct {
	Drive      SourceDrive
	DestParent string

	// CopyFiles selects copy semantics (preserve originals) over move
	// semantics (delete originals after a successful import).
	CopyFiles bool
}

// ValidLetter reports whether s is a usable drive-letter label: empty
// (no label) or exactly one character.
func ValidLetter(s string) bool {
	return s == "" || utf8.RuneCountInString(s) == 1
}

// BundleName derives the destination folder name for a drive:
// "[<letter> ]<cue-basename-without-extension>.cdmedia". Pure function.
func BundleName(d SourceDrive) string {
	base := filepath.Base(d.CuePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if d.Letter != "" {
		base = d.Letter + " " + base
	}
	return base + BundleExt
}

// ImportedPath returns the full destination bundle path for a request,
// or "" when the cue path or destination parent is absent.
func ImportedPath(req Request) string {
	if req.Drive.CuePath == "" || req.DestParent == "" {
		return ""
	}
	return filepath.Join(req.DestParent, BundleName(req.Drive))
}
