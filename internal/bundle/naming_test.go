package bundle

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBundleName(t *testing.T) {
	tests := []struct {
		name  string
		drive SourceDrive
		want  string
	}{
		{
			name:  "plain",
			drive: SourceDrive{CuePath: "/images/Quake.cue"},
			want:  "Quake.cdmedia",
		},
		{
			name:  "with drive letter",
			drive: SourceDrive{CuePath: "/images/Quake.cue", Letter: "D"},
			want:  "D Quake.cdmedia",
		},
		{
			name:  "non-standard extension",
			drive: SourceDrive{CuePath: "/images/game.txt"},
			want:  "game.cdmedia",
		},
		{
			name:  "no extension",
			drive: SourceDrive{CuePath: "/images/game"},
			want:  "game.cdmedia",
		},
		{
			name:  "spaces in name",
			drive: SourceDrive{CuePath: "/images/My Game (USA).cue", Letter: "E"},
			want:  "E My Game (USA).cdmedia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BundleName(tt.drive))
		})
	}
}

func TestBundleName_Pure(t *testing.T) {
	drive := SourceDrive{CuePath: "/images/Quake.cue", Letter: "D"}
	assert.Equal(t, BundleName(drive), BundleName(drive))
}

func TestValidLetter(t *testing.T) {
	assert.True(t, ValidLetter(""))
	assert.True(t, ValidLetter("D"))
	assert.True(t, ValidLetter("é"), "one rune, not one byte")
	assert.False(t, ValidLetter("DISC"))
	assert.False(t, ValidLetter("D "))
}

func TestImportedPath(t *testing.T) {
	req := Request{
		Drive:      SourceDrive{CuePath: "/images/Quake.cue", Letter: "D"},
		DestParent: "/media",
	}
	assert.Equal(t, filepath.Join("/media", "D Quake.cdmedia"), ImportedPath(req))
}

func TestImportedPath_MissingParts(t *testing.T) {
	assert.Empty(t, ImportedPath(Request{Drive: SourceDrive{CuePath: "/images/a.cue"}}))
	assert.Empty(t, ImportedPath(Request{DestParent: "/media"}))
	assert.Empty(t, ImportedPath(Request{}))
}
