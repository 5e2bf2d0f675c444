// Package textenc decodes text files of unknown encoding to UTF-8.
package textenc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUndecodable indicates the file contents could not be interpreted as text.
var ErrUndecodable = errors.New("could not determine text encoding")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts raw file contents to a UTF-8 string.
// Detection order: BOM, valid UTF-8, heuristic UTF-16, Latin-1 fallback.
func Decode(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), nil
	case bytes.HasPrefix(data, bomUTF16LE):
		return decodeUTF16(data, unicode.LittleEndian)
	case bytes.HasPrefix(data, bomUTF16BE):
		return decodeUTF16(data, unicode.BigEndian)
	}

	// UTF-16 without a BOM shows up as NUL bytes on every other position.
	// Checked before UTF-8 because ASCII-heavy UTF-16 is also valid UTF-8.
	if endian, ok := sniffUTF16(data); ok {
		return decodeUTF16(data, endian)
	}

	if utf8.Valid(data) {
		if bytes.IndexByte(data, 0) >= 0 {
			return "", ErrUndecodable
		}
		return string(data), nil
	}

	// Latin-1 maps every byte, so reject contents that decode to control
	// garbage rather than text.
	if !looksLikeText(data) {
		return "", ErrUndecodable
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(out), nil
}

// ReadFile reads a file and decodes it to UTF-8.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

func decodeUTF16(data []byte, endian unicode.Endianness) (string, error) {
	dec := unicode.UTF16(endian, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return string(out), nil
}

// sniffUTF16 detects BOM-less UTF-16 by counting NUL bytes at even and odd
// offsets. ASCII-heavy UTF-16 text has NULs on one side almost exclusively.
func sniffUTF16(data []byte) (unicode.Endianness, bool) {
	if len(data) < 4 || len(data)%2 != 0 {
		return unicode.LittleEndian, false
	}
	var evenNul, oddNul int
	for i, b := range data {
		if b != 0 {
			continue
		}
		if i%2 == 0 {
			evenNul++
		} else {
			oddNul++
		}
	}
	pairs := len(data) / 2
	if oddNul > pairs/2 && evenNul == 0 {
		return unicode.LittleEndian, true
	}
	if evenNul > pairs/2 && oddNul == 0 {
		return unicode.BigEndian, true
	}
	return unicode.LittleEndian, false
}

// looksLikeText reports whether the bytes resemble single-byte text:
// no NULs and mostly printable or common whitespace.
func looksLikeText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	var control int
	for _, b := range data {
		switch {
		case b == 0:
			return false
		case b < 0x20 && b != '\t' && b != '\n' && b != '\r':
			control++
		}
	}
	return control*10 < len(data)
}
