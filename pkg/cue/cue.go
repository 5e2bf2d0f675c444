// Package cue parses cue sheets to extract the data files they reference.
package cue

import (
	"strings"
	"unicode"
)

// FileRef is a single FILE reference found in a cue sheet.
type FileRef struct {
	Path string // reference text exactly as it appears in the sheet
	Type string // declared file type (BINARY, WAVE, MP3, ...), may be empty

	// Start and End are the byte offsets of Path within the sheet text,
	// excluding surrounding quotes. They allow rewriting a reference in
	// place without searching for its text.
	Start int
	End   int
}

// References returns the FILE references in a cue sheet, in the order they
// appear. Returns nil when the text contains no parseable references.
func References(text string) []FileRef {
	var refs []FileRef

	off := 0
	for off < len(text) {
		end := strings.IndexByte(text[off:], '\n')
		var line string
		if end < 0 {
			line = text[off:]
			end = len(text) - off
		} else {
			line = text[off : off+end]
		}

		if ref, ok := parseFileLine(line, off); ok {
			refs = append(refs, ref)
		}

		off += end + 1
	}

	return refs
}

// Sniff reports whether the text looks like a cue sheet. A sheet is
// recognized when it contains at least one FILE reference; this tolerates
// files renamed with non-standard extensions.
func Sniff(text string) bool {
	return len(References(text)) > 0
}

// parseFileLine extracts a FILE reference from a single line.
// lineOff is the byte offset of the line within the whole sheet.
func parseFileLine(line string, lineOff int) (FileRef, bool) {
	i := indexNonSpace(line, 0)
	if i < 0 {
		return FileRef{}, false
	}

	const keyword = "FILE"
	if len(line)-i < len(keyword) || !strings.EqualFold(line[i:i+len(keyword)], keyword) {
		return FileRef{}, false
	}
	i += len(keyword)

	// Keyword must be followed by whitespace.
	if i >= len(line) || !isSpace(line[i]) {
		return FileRef{}, false
	}

	i = indexNonSpace(line, i)
	if i < 0 {
		return FileRef{}, false
	}

	var path string
	var start, end int
	if line[i] == '"' {
		closing := strings.IndexByte(line[i+1:], '"')
		if closing < 0 {
			return FileRef{}, false
		}
		start = i + 1
		end = start + closing
		path = line[start:end]
		i = end + 1
	} else {
		start = i
		for i < len(line) && !isSpace(line[i]) {
			i++
		}
		end = i
		path = line[start:end]
	}

	if path == "" {
		return FileRef{}, false
	}

	fileType := strings.TrimFunc(line[i:], unicode.IsSpace)

	return FileRef{
		Path:  path,
		Type:  fileType,
		Start: lineOff + start,
		End:   lineOff + end,
	}, true
}

func indexNonSpace(s string, from int) int {
	for i := from; i < len(s); i++ {
		if !isSpace(s[i]) {
			return i
		}
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
