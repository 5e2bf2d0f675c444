package textenc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf16le(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFF, 0xFE)
	}
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func utf16be(s string, bom bool) []byte {
	var out []byte
	if bom {
		out = append(out, 0xFE, 0xFF)
	}
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain utf8", []byte("FILE \"A.BIN\" BINARY\n"), "FILE \"A.BIN\" BINARY\n"},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("FILE")...), "FILE"},
		{"utf16le bom", utf16le("FILE \"A.BIN\"", true), "FILE \"A.BIN\""},
		{"utf16be bom", utf16be("FILE \"A.BIN\"", true), "FILE \"A.BIN\""},
		{"utf16le no bom", utf16le("FILE \"TRACK01.BIN\" BINARY", false), "FILE \"TRACK01.BIN\" BINARY"},
		{"utf16be no bom", utf16be("FILE \"TRACK01.BIN\" BINARY", false), "FILE \"TRACK01.BIN\" BINARY"},
		{"latin1", []byte{'C', 0xE9, 'd', 'r', 'o', 'm'}, "Cédrom"},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_Undecodable(t *testing.T) {
	// NUL-riddled binary data that is neither UTF-16 nor text.
	data := []byte{0x00, 0x01, 0x02, 0x00, 0xFF, 0x00, 0x03, 0x00, 0x00}
	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestDecode_ControlGarbage(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0xFE}
	_, err := Decode(data)
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracks.cue")
	require.NoError(t, os.WriteFile(path, utf16le("FILE \"A.BIN\" BINARY", true), 0644))

	text, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FILE \"A.BIN\" BINARY", text)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.cue"))
	assert.Error(t, err)
}
