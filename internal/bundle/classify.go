package bundle

import (
	"path/filepath"
	"strings"

	"github.com/vmunix/cdbundle/internal/textenc"
	"github.com/vmunix/cdbundle/pkg/cue"
)

// CueTypeID identifies the cue sheet file type to a TypeIdentifier.
const CueTypeID = "com.cdbundle.cue-sheet"

// TypeIdentifier reports whether a path matches any of the given file type
// identifiers.
type TypeIdentifier interface {
	MatchesType(path string, typeIDs ...string) bool
}

// ExtIdentifier identifies file types by extension.
type ExtIdentifier struct{}

// MatchesType reports whether the path's extension matches a known type.
func (ExtIdentifier) MatchesType(path string, typeIDs ...string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, id := range typeIDs {
		if id == CueTypeID && ext == ".cue" {
			return true
		}
	}
	return false
}

// Suitable reports whether a drive is a candidate for this importer: its
// type is recognized as a cue sheet, or its contents sniff as one (a cue
// sheet renamed with a non-standard extension). Pure query, no side effects.
func Suitable(ident TypeIdentifier, drive SourceDrive) bool {
	if ident != nil && ident.MatchesType(drive.CuePath, CueTypeID) {
		return true
	}
	return IsCueSheet(drive.CuePath)
}

// IsCueSheet reads the file at path and reports whether it parses as a cue
// sheet. Unreadable or undecodable files are not cue sheets.
func IsCueSheet(path string) bool {
	text, err := textenc.ReadFile(path)
	if err != nil {
		return false
	}
	return cue.Sniff(text)
}
